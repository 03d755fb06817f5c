package model

import "time"

const (
	CategoryVegetables = "Vegetables"
	CategoryFruits     = "Fruits"
	CategoryGrains     = "Grains"
	CategoryDairy      = "Dairy"
)

// Categories は出品で選べるカテゴリ
var Categories = []string{CategoryVegetables, CategoryFruits, CategoryGrains, CategoryDairy}

type Product struct {
	ID          string    `gorm:"primaryKey;type:varchar(36)" json:"id" yaml:"id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name" yaml:"name"`
	Price       float64   `gorm:"not null" json:"price" yaml:"price"`
	Unit        string    `gorm:"type:varchar(20);not null" json:"unit" yaml:"unit"`
	Quantity    int       `gorm:"not null" json:"quantity" yaml:"quantity"`
	Location    string    `gorm:"type:varchar(255)" json:"location" yaml:"location"`
	Image       string    `gorm:"type:text" json:"image" yaml:"image"`
	FarmerID    string    `gorm:"type:varchar(36);not null;index" json:"farmer_id" yaml:"farmer_id"`
	FarmerName  string    `gorm:"type:varchar(255)" json:"farmer_name" yaml:"farmer_name"`
	Rating      float64   `json:"rating" yaml:"rating"`
	Description string    `gorm:"type:text" json:"description" yaml:"description"`
	Category    string    `gorm:"type:varchar(50);index" json:"category" yaml:"category"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime" json:"created_at" yaml:"-"`
	UpdatedAt   time.Time `gorm:"not null;autoUpdateTime" json:"updated_at" yaml:"-"`
}
