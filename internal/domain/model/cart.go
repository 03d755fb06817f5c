package model

// カートの1行。数量は常に1以上（0以下になった行は削除される）。
type CartItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// Subtotal は price × quantity
func (c CartItem) Subtotal() float64 {
	return c.Product.Price * float64(c.Quantity)
}
