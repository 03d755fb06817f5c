package store

import (
	"time"

	"github.com/i-m-samarth-cs/kisan-connect/internal/domain/model"
)

type ActionType string

const (
	TypeSetUser             ActionType = "SET_USER"
	TypeSetProducts         ActionType = "SET_PRODUCTS"
	TypeAddToCart           ActionType = "ADD_TO_CART"
	TypeRemoveFromCart      ActionType = "REMOVE_FROM_CART"
	TypeUpdateCartQuantity  ActionType = "UPDATE_CART_QUANTITY"
	TypeClearCart           ActionType = "CLEAR_CART"
	TypeAddOrder            ActionType = "ADD_ORDER"
	TypeUpdateProduct       ActionType = "UPDATE_PRODUCT"
	TypeAddProduct          ActionType = "ADD_PRODUCT"
	TypeSponsorFarmer       ActionType = "SPONSOR_FARMER"
	TypeToggleDarkMode      ActionType = "TOGGLE_DARK_MODE"
	TypeSetLanguage         ActionType = "SET_LANGUAGE"
	TypeToggleChat          ActionType = "TOGGLE_CHAT"
	TypeToggleCheckout      ActionType = "TOGGLE_CHECKOUT"
	TypeSetFarmers          ActionType = "SET_FARMERS"
	TypeSetNGOs             ActionType = "SET_NGOS"
	TypeSetMarketTrends     ActionType = "SET_MARKET_TRENDS"
	TypeSetNewsArticles     ActionType = "SET_NEWS_ARTICLES"
	TypeNotify              ActionType = "NOTIFY"
	TypeDismissNotification ActionType = "DISMISS_NOTIFICATION"
	TypeExpireNotifications ActionType = "EXPIRE_NOTIFICATIONS"
)

// Action は Reduce に渡すイベント。
type Action interface {
	Type() ActionType
}

// User=nil でログアウト状態
type SetUser struct{ User *model.User }
type SetProducts struct{ Products []model.Product }
type AddToCart struct{ Product model.Product }
type RemoveFromCart struct{ ProductID string }
type UpdateCartQuantity struct {
	ProductID string
	Quantity  int
}
type ClearCart struct{}
type AddOrder struct{ Order model.Order }
type UpdateProduct struct{ Product model.Product }
type AddProduct struct{ Product model.Product }
type SponsorFarmer struct{ FarmerID string }
type ToggleDarkMode struct{}
type SetLanguage struct{ Language string }
type ToggleChat struct{}
type ToggleCheckout struct{}
type SetFarmers struct{ Farmers []model.Farmer }
type SetNGOs struct{ NGOs []model.NGO }
type SetMarketTrends struct{ Trends []model.MarketTrend }
type SetNewsArticles struct{ Articles []model.NewsArticle }
type Notify struct{ Notification model.Notification }
type DismissNotification struct{ ID string }

// Now 時点で期限切れの通知を落とす
type ExpireNotifications struct{ Now time.Time }

// Unknown は未定義のアクション。Reduce は状態をそのまま返す。
type Unknown struct{ Name string }

func (SetUser) Type() ActionType             { return TypeSetUser }
func (SetProducts) Type() ActionType         { return TypeSetProducts }
func (AddToCart) Type() ActionType           { return TypeAddToCart }
func (RemoveFromCart) Type() ActionType      { return TypeRemoveFromCart }
func (UpdateCartQuantity) Type() ActionType  { return TypeUpdateCartQuantity }
func (ClearCart) Type() ActionType           { return TypeClearCart }
func (AddOrder) Type() ActionType            { return TypeAddOrder }
func (UpdateProduct) Type() ActionType       { return TypeUpdateProduct }
func (AddProduct) Type() ActionType          { return TypeAddProduct }
func (SponsorFarmer) Type() ActionType       { return TypeSponsorFarmer }
func (ToggleDarkMode) Type() ActionType      { return TypeToggleDarkMode }
func (SetLanguage) Type() ActionType         { return TypeSetLanguage }
func (ToggleChat) Type() ActionType          { return TypeToggleChat }
func (ToggleCheckout) Type() ActionType      { return TypeToggleCheckout }
func (SetFarmers) Type() ActionType          { return TypeSetFarmers }
func (SetNGOs) Type() ActionType             { return TypeSetNGOs }
func (SetMarketTrends) Type() ActionType     { return TypeSetMarketTrends }
func (SetNewsArticles) Type() ActionType     { return TypeSetNewsArticles }
func (Notify) Type() ActionType              { return TypeNotify }
func (DismissNotification) Type() ActionType { return TypeDismissNotification }
func (ExpireNotifications) Type() ActionType { return TypeExpireNotifications }
func (u Unknown) Type() ActionType           { return ActionType(u.Name) }
