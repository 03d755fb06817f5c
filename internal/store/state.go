package store

import "github.com/i-m-samarth-cs/kisan-connect/internal/domain/model"

const DefaultLanguage = "en"

// State はセッション1つ分のグローバル状態。
// Reduce 以外から書き換えないこと（スライスは前の状態と共有される）。
type State struct {
	User            *model.User          `json:"user"`
	Products        []model.Product      `json:"products"`
	Cart            []model.CartItem     `json:"cart"`
	Farmers         []model.Farmer       `json:"farmers"`
	NGOs            []model.NGO          `json:"ngos"`
	MarketTrends    []model.MarketTrend  `json:"market_trends"`
	NewsArticles    []model.NewsArticle  `json:"news_articles"`
	Orders          []model.Order        `json:"orders"`
	IsDarkMode      bool                 `json:"is_dark_mode"`
	CurrentLanguage string               `json:"current_language"`
	IsChatOpen      bool                 `json:"is_chat_open"`
	ShowCheckout    bool                 `json:"show_checkout"`
	Notifications   []model.Notification `json:"notifications"`
}

func InitialState() *State {
	return &State{
		Products:        []model.Product{},
		Cart:            []model.CartItem{},
		Farmers:         []model.Farmer{},
		NGOs:            []model.NGO{},
		MarketTrends:    []model.MarketTrend{},
		NewsArticles:    []model.NewsArticle{},
		Orders:          []model.Order{},
		CurrentLanguage: DefaultLanguage,
		Notifications:   []model.Notification{},
	}
}
