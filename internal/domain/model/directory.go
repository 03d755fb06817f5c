package model

// 以下はバックエンドに持たないデモ用の読み取り専用データ

type Farmer struct {
	ID                string   `json:"id" yaml:"id"`
	Name              string   `json:"name" yaml:"name"`
	Location          string   `json:"location" yaml:"location"`
	Rating            float64  `json:"rating" yaml:"rating"`
	Image             string   `json:"image" yaml:"image"`
	Crops             []string `json:"crops" yaml:"crops"`
	Experience        int      `json:"experience" yaml:"experience"`
	Description       string   `json:"description" yaml:"description"`
	Sponsored         bool     `json:"sponsored" yaml:"sponsored"`
	SponsorshipAmount float64  `json:"sponsorship_amount" yaml:"sponsorship_amount"`
}

// NGO.State が "All India" のものは全州で表示する
type NGO struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	State       string `json:"state" yaml:"state"`
	Website     string `json:"website,omitempty" yaml:"website"`
	Contact     string `json:"contact" yaml:"contact"`
}

const AllIndia = "All India"

type NewsArticle struct {
	ID            string   `json:"id" yaml:"id"`
	Title         string   `json:"title" yaml:"title"`
	Summary       string   `json:"summary" yaml:"summary"`
	Content       string   `json:"content" yaml:"content"`
	Author        string   `json:"author" yaml:"author"`
	PublishedDate string   `json:"published_date" yaml:"published_date"`
	Category      string   `json:"category" yaml:"category"`
	Image         string   `json:"image" yaml:"image"`
	ReadTime      int      `json:"read_time" yaml:"read_time"`
	Tags          []string `json:"tags" yaml:"tags"`
}
