package model

// 注文時点のカート行スナップショット（orders.items にJSONで保存）
type OrderItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Unit     string  `json:"unit"`
}

// SnapshotCart はカートを注文明細に変換する
func SnapshotCart(cart []CartItem) []OrderItem {
	items := make([]OrderItem, 0, len(cart))
	for _, it := range cart {
		items = append(items, OrderItem{
			ID:       it.Product.ID,
			Name:     it.Product.Name,
			Price:    it.Product.Price,
			Quantity: it.Quantity,
			Unit:     it.Product.Unit,
		})
	}
	return items
}
