package usecase

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/i-m-samarth-cs/kisan-connect/internal/domain/model"
	"github.com/i-m-samarth-cs/kisan-connect/internal/gateway"
	"github.com/i-m-samarth-cs/kisan-connect/internal/i18n"
	repo "github.com/i-m-samarth-cs/kisan-connect/internal/repository"
	"github.com/i-m-samarth-cs/kisan-connect/internal/session"
	"github.com/i-m-samarth-cs/kisan-connect/internal/store"
)

// =====================
// Gateway mock
// =====================

type GatewayMock struct{ mock.Mock }

func (m *GatewayMock) Configured() bool {
	return m.Called().Bool(0)
}

func (m *GatewayMock) TestConnection(ctx context.Context) bool {
	return m.Called(ctx).Bool(0)
}

func (m *GatewayMock) SignUp(ctx context.Context, in gateway.SignUpInput) (*model.User, error) {
	args := m.Called(ctx, in)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *GatewayMock) SignIn(ctx context.Context, email string, password string) (gateway.Session, error) {
	args := m.Called(ctx, email, password)
	s, _ := args.Get(0).(gateway.Session)
	return s, args.Error(1)
}

func (m *GatewayMock) SignOut(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

func (m *GatewayMock) CurrentUser(ctx context.Context, token string) *model.User {
	u, _ := m.Called(ctx, token).Get(0).(*model.User)
	return u
}

func (m *GatewayMock) UpdateProfile(ctx context.Context, userID string, in repo.ProfileUpdate) (*model.User, error) {
	args := m.Called(ctx, userID, in)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *GatewayMock) AddProduct(ctx context.Context, p model.Product) (model.Product, error) {
	args := m.Called(ctx, p)
	out, _ := args.Get(0).(model.Product)
	return out, args.Error(1)
}

func (m *GatewayMock) ListProducts(ctx context.Context, q repo.ProductListQuery) ([]model.Product, error) {
	args := m.Called(ctx, q)
	out, _ := args.Get(0).([]model.Product)
	return out, args.Error(1)
}

func (m *GatewayMock) ListFarmerProducts(ctx context.Context, farmerID string) ([]model.Product, error) {
	args := m.Called(ctx, farmerID)
	out, _ := args.Get(0).([]model.Product)
	return out, args.Error(1)
}

func (m *GatewayMock) CreateOrder(ctx context.Context, o model.Order) (model.Order, error) {
	args := m.Called(ctx, o)
	out, _ := args.Get(0).(model.Order)
	return out, args.Error(1)
}

func (m *GatewayMock) ListFarmerOrders(ctx context.Context, farmerID string) ([]model.Order, error) {
	args := m.Called(ctx, farmerID)
	out, _ := args.Get(0).([]model.Order)
	return out, args.Error(1)
}

func (m *GatewayMock) ListConsumerOrders(ctx context.Context, userID string) ([]model.Order, error) {
	args := m.Called(ctx, userID)
	out, _ := args.Get(0).([]model.Order)
	return out, args.Error(1)
}

func (m *GatewayMock) ListMarketTrends(ctx context.Context) ([]model.MarketTrend, error) {
	args := m.Called(ctx)
	out, _ := args.Get(0).([]model.MarketTrend)
	return out, args.Error(1)
}

type PublisherMock struct{ mock.Mock }

func (m *PublisherMock) PublishOrder(o model.Order) {
	m.Called(o)
}

// 保存失敗を切り替えられる言語設定
type memPrefs struct {
	mu   sync.Mutex
	lang string
	err  error
}

func (p *memPrefs) Language() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.lang == "" {
		return store.DefaultLanguage
	}
	return p.lang
}

func (p *memPrefs) SetLanguage(lang string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.lang = lang
	return nil
}

// =====================
// helpers
// =====================

var testNow = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func newTestNotifier() *Notifier {
	var (
		mu sync.Mutex
		n  int
	)
	ids := IDFunc(func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("n-%d", n)
	})
	tr := i18n.NewTranslator(map[string]map[string]string{
		"hi": {MsgOrderConfirmed: "ऑर्डर की पुष्टि हो गई!"},
	})
	return NewNotifier(ClockFunc(func() time.Time { return testNow }), ids, tr)
}

func newTestSession(t *testing.T) *session.Session {
	t.Helper()
	reg := session.NewRegistry(time.Hour, 0)
	sess, created := reg.GetOrCreate("test-session")
	require.True(t, created)
	return sess
}

func loginAs(sess *session.Session, role model.Role) *model.User {
	u := &model.User{ID: "user-1", Email: "ravi@example.com", Name: "Ravi", Role: role}
	sess.Store.Dispatch(store.SetUser{User: u})
	return u
}

func sampleProducts() []model.Product {
	return []model.Product{
		{ID: "p1", Name: "Fresh Tomatoes", Price: 60, Unit: "kg", Category: model.CategoryVegetables, FarmerID: "f1", FarmerName: "Rajesh"},
		{ID: "p2", Name: "Basmati Rice", Price: 170, Unit: "kg", Category: model.CategoryGrains, FarmerID: "f2", FarmerName: "Sunita"},
		{ID: "p3", Name: "Alphonso Mangoes", Price: 400, Unit: "dozen", Category: model.CategoryFruits, FarmerID: "f3", FarmerName: "Vijay"},
	}
}

func lastNotification(sess *session.Session) model.Notification {
	ns := sess.Store.State().Notifications
	if len(ns) == 0 {
		return model.Notification{}
	}
	return ns[len(ns)-1]
}

func nopLogger() *zap.Logger { return zap.NewNop() }
