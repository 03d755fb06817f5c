package model

// 農家ダッシュボードの「Quick Price Check」表示用（固定データ）
type PricePrediction struct {
	Crop           string         `json:"crop"`
	CurrentPrice   float64        `json:"current_price"`
	PredictedPrice float64        `json:"predicted_price"`
	Recommendation Recommendation `json:"recommendation"`
	Confidence     int            `json:"confidence"`
	Reasons        []string       `json:"reasons"`
}

type CropHealthReport struct {
	Status       string   `json:"status"`
	Capabilities []string `json:"capabilities"`
}
