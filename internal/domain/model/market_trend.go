package model

import "time"

type Level string

const (
	LevelLow    Level = "low"
	LevelMedium Level = "medium"
	LevelHigh   Level = "high"
)

type Recommendation string

const (
	RecommendSell Recommendation = "sell"
	RecommendHold Recommendation = "hold"
	RecommendWait Recommendation = "wait"
)

type PricePoint struct {
	Date  string  `json:"date" yaml:"date"`
	Price float64 `json:"price" yaml:"price"`
}

type MarketTrend struct {
	ID             string         `gorm:"primaryKey;type:varchar(36)" json:"id" yaml:"id"`
	CropName       string         `gorm:"type:varchar(100);not null;index" json:"crop_name" yaml:"crop_name"`
	CurrentPrice   float64        `json:"current_price" yaml:"current_price"`
	PredictedPrice float64        `json:"predicted_price" yaml:"predicted_price"`
	PriceChange    float64        `json:"price_change" yaml:"price_change"`
	DemandLevel    Level          `gorm:"type:varchar(10)" json:"demand_level" yaml:"demand_level"`
	SupplyLevel    Level          `gorm:"type:varchar(10)" json:"supply_level" yaml:"supply_level"`
	Recommendation Recommendation `gorm:"type:varchar(10)" json:"recommendation" yaml:"recommendation"`
	Confidence     int            `json:"confidence" yaml:"confidence"`
	Factors        []string       `gorm:"serializer:json;type:text" json:"factors" yaml:"factors"`
	HistoricalData []PricePoint   `gorm:"serializer:json;type:text" json:"historical_data" yaml:"historical_data"`
	Date           time.Time      `json:"date" yaml:"-"`
}
