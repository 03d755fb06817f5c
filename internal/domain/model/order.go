package model

import "time"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
)

// 作成後は変更しない（ステータス遷移は未実装）
type Order struct {
	ID              string      `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID          string      `gorm:"type:varchar(36);not null;index" json:"user_id"`
	FarmerID        string      `gorm:"type:varchar(36);index" json:"farmer_id"`
	Items           []OrderItem `gorm:"serializer:json;type:text" json:"items"`
	Total           float64     `gorm:"not null" json:"total"`
	Status          OrderStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	DeliveryAddress string      `gorm:"type:text" json:"delivery_address"`
	PaymentMethod   string      `gorm:"type:varchar(64)" json:"payment_method"`
	OrderDate       time.Time   `gorm:"column:created_at;not null;autoCreateTime" json:"order_date"`
	UpdatedAt       time.Time   `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
