package gateway

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/i-m-samarth-cs/kisan-connect/internal/domain/model"
	"github.com/i-m-samarth-cs/kisan-connect/internal/infra/db"
	infraRepo "github.com/i-m-samarth-cs/kisan-connect/internal/infra/repository"
	repo "github.com/i-m-samarth-cs/kisan-connect/internal/repository"
)

func newTestGateway(t *testing.T) *Gateway {
	t.Helper()
	gdb, err := db.OpenMemory()
	require.NoError(t, err)

	trends := infraRepo.NewMarketTrendGormRepository(gdb)
	return New(Deps{
		Users:    infraRepo.NewUserGormRepository(gdb),
		Products: infraRepo.NewProductGormRepository(gdb),
		Orders:   infraRepo.NewOrderGormRepository(gdb),
		Trends:   trends,
		Health:   trends,
		Hasher:   NewBcryptPasswordHasher(bcrypt.MinCost),
		Tokens:   NewJWTIssuer("test-secret", time.Hour),
	})
}

func signUpConsumer(t *testing.T, g *Gateway, email string) *model.User {
	t.Helper()
	u, err := g.SignUp(context.Background(), SignUpInput{
		Email:    email,
		Password: "secret1",
		Name:     "Asha",
		Role:     model.RoleConsumer,
		Location: "Pune",
	})
	require.NoError(t, err)
	return u
}

func TestOffline_ReadsEmptyWritesNotConfigured(t *testing.T) {
	ctx := context.Background()
	g := NewOffline(nil)

	assert.False(t, g.Configured())
	assert.False(t, g.TestConnection(ctx))

	products, err := g.ListProducts(ctx, repo.ProductListQuery{})
	require.NoError(t, err)
	assert.Empty(t, products)

	trends, err := g.ListMarketTrends(ctx)
	require.NoError(t, err)
	assert.Empty(t, trends)

	orders, err := g.ListConsumerOrders(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, orders)

	assert.Nil(t, g.CurrentUser(ctx, "anything"))
	assert.NoError(t, g.SignOut(ctx, "anything"))

	_, err = g.SignUp(ctx, SignUpInput{Email: "a@b.c", Password: "secret1", Name: "A", Role: model.RoleConsumer})
	assert.ErrorIs(t, err, ErrNotConfigured)
	_, err = g.SignIn(ctx, "a@b.c", "secret1")
	assert.ErrorIs(t, err, ErrNotConfigured)
	_, err = g.AddProduct(ctx, model.Product{Name: "x", Price: 1, FarmerID: "f"})
	assert.ErrorIs(t, err, ErrNotConfigured)
	_, err = g.CreateOrder(ctx, model.Order{UserID: "u"})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestSignUpSignInCurrentUserSignOut(t *testing.T) {
	ctx := context.Background()
	g := newTestGateway(t)
	assert.True(t, g.TestConnection(ctx))

	u := signUpConsumer(t, g, "Asha@Example.com")
	assert.Equal(t, "asha@example.com", u.Email)
	assert.NotEqual(t, "secret1", u.PasswordHash)

	sess, err := g.SignIn(ctx, "asha@example.com", "secret1")
	require.NoError(t, err)
	require.NotEmpty(t, sess.Token)

	current := g.CurrentUser(ctx, sess.Token)
	require.NotNil(t, current)
	assert.Equal(t, u.ID, current.ID)
	assert.Equal(t, model.RoleConsumer, current.Role)

	require.NoError(t, g.SignOut(ctx, sess.Token))
	assert.Nil(t, g.CurrentUser(ctx, sess.Token))
}

func TestSignUp_ValidationErrors(t *testing.T) {
	ctx := context.Background()
	g := newTestGateway(t)
	signUpConsumer(t, g, "taken@example.com")

	cases := []struct {
		in   SignUpInput
		want error
	}{
		{SignUpInput{Email: "not-an-email", Password: "secret1", Name: "A", Role: model.RoleConsumer}, ErrInvalidEmail},
		{SignUpInput{Email: "a@example.com", Password: "12345", Name: "A", Role: model.RoleConsumer}, ErrPasswordTooShort},
		{SignUpInput{Email: "a@example.com", Password: "secret1", Name: "A", Role: "admin"}, ErrInvalidRole},
		{SignUpInput{Email: "taken@example.com", Password: "secret1", Name: "A", Role: model.RoleFarmer}, ErrEmailTaken},
	}
	for _, tc := range cases {
		_, err := g.SignUp(ctx, tc.in)
		assert.ErrorIs(t, err, tc.want)
		assert.True(t, IsOperationError(err))
	}
}

func TestSignIn_InvalidCredentials(t *testing.T) {
	ctx := context.Background()
	g := newTestGateway(t)
	signUpConsumer(t, g, "asha@example.com")

	_, err := g.SignIn(ctx, "asha@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = g.SignIn(ctx, "nobody@example.com", "secret1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestCurrentUser_InvalidToken(t *testing.T) {
	g := newTestGateway(t)
	assert.Nil(t, g.CurrentUser(context.Background(), "garbage"))
	assert.Nil(t, g.CurrentUser(context.Background(), ""))
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()
	g := newTestGateway(t)
	u := signUpConsumer(t, g, "asha@example.com")

	updated, err := g.UpdateProfile(ctx, u.ID, repo.ProfileUpdate{Name: "Asha K", Location: "Nashik", Phone: "99"})
	require.NoError(t, err)
	assert.Equal(t, "Asha K", updated.Name)
	assert.Equal(t, "Nashik", updated.Location)

	_, err = g.UpdateProfile(ctx, "missing", repo.ProfileUpdate{Name: "x"})
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func TestProductsAndOrders(t *testing.T) {
	ctx := context.Background()
	g := newTestGateway(t)

	p1, err := g.AddProduct(ctx, model.Product{Name: "Tomato", Price: 60, Unit: "kg", Quantity: 10, FarmerID: "f1", Category: model.CategoryVegetables})
	require.NoError(t, err)
	assert.NotEmpty(t, p1.ID)
	_, err = g.AddProduct(ctx, model.Product{Name: "Apple", Price: 125, Unit: "kg", Quantity: 5, FarmerID: "f2", Category: model.CategoryFruits})
	require.NoError(t, err)

	_, err = g.AddProduct(ctx, model.Product{Name: "", Price: 1, FarmerID: "f1"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	all, err := g.ListProducts(ctx, repo.ProductListQuery{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	veg, err := g.ListProducts(ctx, repo.ProductListQuery{Q: "TOM", Category: model.CategoryVegetables})
	require.NoError(t, err)
	require.Len(t, veg, 1)
	assert.Equal(t, "Tomato", veg[0].Name)

	mine, err := g.ListFarmerProducts(ctx, "f1")
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	order, err := g.CreateOrder(ctx, model.Order{
		UserID:   "u1",
		FarmerID: "f1",
		Items:    []model.OrderItem{{ID: p1.ID, Name: "Tomato", Price: 60, Quantity: 2, Unit: "kg"}},
		Total:    170,
	})
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusPending, order.Status)

	// 同じ内容を再送すると別の注文になる
	_, err = g.CreateOrder(ctx, model.Order{UserID: "u1", FarmerID: "f1", Items: order.Items, Total: 170})
	require.NoError(t, err)

	byFarmer, err := g.ListFarmerOrders(ctx, "f1")
	require.NoError(t, err)
	assert.Len(t, byFarmer, 2)
	assert.Equal(t, 2, byFarmer[0].Items[0].Quantity)

	byUser, err := g.ListConsumerOrders(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, byUser, 2)

	_, err = g.CreateOrder(ctx, model.Order{UserID: "u1"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestMarketTrends_SaveAndList(t *testing.T) {
	ctx := context.Background()
	g := newTestGateway(t)

	trends := []model.MarketTrend{{
		ID: "1", CropName: "Tomato", CurrentPrice: 60, PredictedPrice: 75,
		Recommendation: model.RecommendSell, Factors: []string{"festival"},
		HistoricalData: []model.PricePoint{{Date: "2024-01-01", Price: 45}},
	}}
	require.NoError(t, g.SaveMarketTrends(ctx, trends))
	// 同じIDは上書き
	trends[0].CurrentPrice = 61
	require.NoError(t, g.SaveMarketTrends(ctx, trends))

	got, err := g.ListMarketTrends(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, float64(61), got[0].CurrentPrice)
	assert.Equal(t, []string{"festival"}, got[0].Factors)
}

type failingTrends struct{}

func (failingTrends) List(ctx context.Context) ([]model.MarketTrend, error) {
	return nil, errors.New("connection refused")
}
func (failingTrends) Save(ctx context.Context, trends []model.MarketTrend) error { return nil }

func TestOperationError_WrapsBackendFailure(t *testing.T) {
	g := New(Deps{Trends: failingTrends{}})

	assert.False(t, g.TestConnection(context.Background()))

	_, err := g.ListMarketTrends(context.Background())
	require.Error(t, err)
	assert.True(t, IsOperationError(err))
	assert.Contains(t, err.Error(), "market_trends.list")
}

func TestJWTIssuer_RejectsOtherSecret(t *testing.T) {
	now := time.Now()
	tok, _, err := NewJWTIssuer("a", time.Hour).Issue("u1", model.RoleFarmer, "jti", now)
	require.NoError(t, err)

	_, err = NewJWTIssuer("b", time.Hour).Parse(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)

	c, err := NewJWTIssuer("a", time.Hour).Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "u1", c.UserID)
	assert.Equal(t, model.RoleFarmer, c.Role)
}
