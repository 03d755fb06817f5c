package usecase

import (
	"context"
	"time"

	"github.com/i-m-samarth-cs/kisan-connect/internal/domain/model"
	"github.com/i-m-samarth-cs/kisan-connect/internal/gateway"
	repo "github.com/i-m-samarth-cs/kisan-connect/internal/repository"
)

// Gateway はバックエンド操作の約束（*gateway.Gateway が実装）
type Gateway interface {
	Configured() bool
	TestConnection(ctx context.Context) bool

	SignUp(ctx context.Context, in gateway.SignUpInput) (*model.User, error)
	SignIn(ctx context.Context, email string, password string) (gateway.Session, error)
	SignOut(ctx context.Context, token string) error
	CurrentUser(ctx context.Context, token string) *model.User
	UpdateProfile(ctx context.Context, userID string, in repo.ProfileUpdate) (*model.User, error)

	AddProduct(ctx context.Context, p model.Product) (model.Product, error)
	ListProducts(ctx context.Context, q repo.ProductListQuery) ([]model.Product, error)
	ListFarmerProducts(ctx context.Context, farmerID string) ([]model.Product, error)

	CreateOrder(ctx context.Context, o model.Order) (model.Order, error)
	ListFarmerOrders(ctx context.Context, farmerID string) ([]model.Order, error)
	ListConsumerOrders(ctx context.Context, userID string) ([]model.Order, error)

	ListMarketTrends(ctx context.Context) ([]model.MarketTrend, error)
}

// 新規注文の配信先（websocket）
type OrderPublisher interface {
	PublishOrder(o model.Order)
}

// UUID 等のIDを作る約束
type IDGenerator interface {
	NewID() string
}

// 現在の時間
type Clock interface {
	Now() time.Time
}

type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

type IDFunc func() string

func (f IDFunc) NewID() string { return f() }

type nopPublisher struct{}

func (nopPublisher) PublishOrder(model.Order) {}
