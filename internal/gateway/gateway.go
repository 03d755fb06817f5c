package gateway

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/i-m-samarth-cs/kisan-connect/internal/domain/model"
	repo "github.com/i-m-samarth-cs/kisan-connect/internal/repository"
	"github.com/i-m-samarth-cs/kisan-connect/internal/telemetry"
)

// Deps はバックエンド接続時の部品
type Deps struct {
	Users    repo.UserRepository
	Products repo.ProductRepository
	Orders   repo.OrderRepository
	Trends   repo.MarketTrendRepository
	Health   repo.HealthChecker
	Hasher   PasswordHasher
	Tokens   TokenIssuer
	Now      func() time.Time
	NewID    func() string
	Log      *zap.Logger
}

// Gateway はバックエンド（profiles/products/orders/market_trends）への窓口。
// 未設定のときは読み取りが空、書き込みが ErrNotConfigured になる。
// リトライもべき等キーも持たない（再送すれば注文は重複する）。
type Gateway struct {
	configured bool
	d          Deps
	revoked    *revocations
}

// DI
func New(d Deps) *Gateway {
	g := &Gateway{configured: true, d: d, revoked: newRevocations()}
	g.fillDefaults()
	return g
}

// NewOffline はバックエンド未設定のゲートウェイ（デモモード）
func NewOffline(log *zap.Logger) *Gateway {
	g := &Gateway{configured: false, d: Deps{Log: log}, revoked: newRevocations()}
	g.fillDefaults()
	return g
}

func (g *Gateway) fillDefaults() {
	if g.d.Now == nil {
		g.d.Now = time.Now
	}
	if g.d.NewID == nil {
		g.d.NewID = uuid.NewString
	}
	if g.d.Log == nil {
		g.d.Log = zap.NewNop()
	}
}

func (g *Gateway) Configured() bool {
	return g.configured
}

// TestConnection は設定済みかつ market_trends が読めるときだけ true
func (g *Gateway) TestConnection(ctx context.Context) bool {
	if !g.configured {
		return false
	}
	ctx, span := telemetry.Start(ctx, "gateway.test_connection")
	var err error
	defer func() { telemetry.End(span, err) }()

	if g.d.Health != nil {
		if err = g.d.Health.Ping(ctx); err != nil {
			g.d.Log.Warn("backend ping failed", zap.Error(err))
			return false
		}
	}
	if _, err = g.d.Trends.List(ctx); err != nil {
		g.d.Log.Warn("backend connection test failed", zap.Error(err))
		return false
	}
	return true
}

type SignUpInput struct {
	Email    string
	Password string
	Name     string
	Role     model.Role
	Location string
	Phone    string
}

// Session はサインイン結果
type Session struct {
	User      *model.User `json:"user"`
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
}

// SignUp は認証ユーザーを作り、続けてprofilesに行を作る
func (g *Gateway) SignUp(ctx context.Context, in SignUpInput) (*model.User, error) {
	const op = "auth.sign_up"
	if !g.configured {
		return nil, ErrNotConfigured
	}
	ctx, span := telemetry.Start(ctx, op)
	var err error
	defer func() { telemetry.End(span, err) }()

	email := strings.ToLower(strings.TrimSpace(in.Email))
	if err = validateEmail(email); err != nil {
		return nil, opErr(op, err)
	}
	if err = validatePassword(in.Password); err != nil {
		return nil, opErr(op, err)
	}
	if !in.Role.Valid() {
		err = ErrInvalidRole
		return nil, opErr(op, err)
	}
	if strings.TrimSpace(in.Name) == "" {
		err = ErrInvalidInput
		return nil, opErr(op, err)
	}

	// email重複チェック
	_, findErr := g.d.Users.FindByEmail(ctx, email)
	if findErr == nil {
		err = ErrEmailTaken
		return nil, opErr(op, err)
	}
	if !errors.Is(findErr, repo.ErrNotFound) {
		err = findErr
		return nil, g.fail(op, err)
	}

	hashed, err := g.d.Hasher.Hash(in.Password)
	if err != nil {
		return nil, g.fail(op, err)
	}

	user := &model.User{
		ID:           g.d.NewID(),
		Email:        email,
		PasswordHash: hashed,
		Name:         strings.TrimSpace(in.Name),
		Role:         in.Role,
		Location:     strings.TrimSpace(in.Location),
		Phone:        strings.TrimSpace(in.Phone),
	}
	if err = g.d.Users.Create(ctx, user); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			err = ErrEmailTaken
			return nil, opErr(op, err)
		}
		return nil, g.fail(op, err)
	}

	g.d.Log.Info("profile created", zap.String("user_id", user.ID), zap.String("role", string(user.Role)))
	return user, nil
}

// SignIn はメールとパスワードを照合してセッショントークンを発行する
func (g *Gateway) SignIn(ctx context.Context, email string, password string) (Session, error) {
	const op = "auth.sign_in"
	if !g.configured {
		return Session{}, ErrNotConfigured
	}
	ctx, span := telemetry.Start(ctx, op)
	var err error
	defer func() { telemetry.End(span, err) }()

	email = strings.ToLower(strings.TrimSpace(email))
	if err = validateEmail(email); err != nil {
		return Session{}, opErr(op, err)
	}

	user, err := g.d.Users.FindByEmail(ctx, email)
	if errors.Is(err, repo.ErrNotFound) {
		err = ErrInvalidCredentials
		return Session{}, opErr(op, err)
	}
	if err != nil {
		return Session{}, g.fail(op, err)
	}

	if !g.d.Hasher.Verify(password, user.PasswordHash) {
		err = ErrInvalidCredentials
		return Session{}, opErr(op, err)
	}

	token, exp, err := g.d.Tokens.Issue(user.ID, user.Role, g.d.NewID(), g.d.Now())
	if err != nil {
		return Session{}, g.fail(op, err)
	}
	return Session{User: user, Token: token, ExpiresAt: exp}, nil
}

// SignOut はトークンを失効させる。未設定・空トークンは何もしない。
func (g *Gateway) SignOut(ctx context.Context, token string) error {
	if !g.configured || token == "" {
		return nil
	}
	claims, err := g.d.Tokens.Parse(token)
	if err != nil {
		// 期限切れ等はすでにサインアウト済みとみなす
		return nil
	}
	g.revoked.revoke(claims.TokenID, claims.ExpiresAt, g.d.Now())
	return nil
}

// CurrentUser はトークンからプロフィールを復元する。
// 未設定・無効トークン・取得失敗はすべて nil（エラーにしない）。
func (g *Gateway) CurrentUser(ctx context.Context, token string) *model.User {
	if !g.configured || token == "" {
		return nil
	}
	ctx, span := telemetry.Start(ctx, "auth.current_user")
	var err error
	defer func() { telemetry.End(span, err) }()

	claims, err := g.d.Tokens.Parse(token)
	if err != nil {
		return nil
	}
	if g.revoked.isRevoked(claims.TokenID) {
		return nil
	}
	user, err := g.d.Users.FindByID(ctx, claims.UserID)
	if err != nil {
		if !errors.Is(err, repo.ErrNotFound) {
			g.d.Log.Warn("profile fetch failed", zap.Error(err))
		}
		return nil
	}
	return user
}

// UpdateProfile はプロフィール項目を更新する
func (g *Gateway) UpdateProfile(ctx context.Context, userID string, in repo.ProfileUpdate) (*model.User, error) {
	const op = "profiles.update"
	if !g.configured {
		return nil, ErrNotConfigured
	}
	ctx, span := telemetry.Start(ctx, op)
	var err error
	defer func() { telemetry.End(span, err) }()

	if strings.TrimSpace(in.Name) == "" {
		err = ErrInvalidInput
		return nil, opErr(op, err)
	}
	user, err := g.d.Users.UpdateProfile(ctx, userID, in)
	if err != nil {
		return nil, g.fail(op, err)
	}
	return user, nil
}

// AddProduct は出品を作成する（ID・作成日時はここで付与）
func (g *Gateway) AddProduct(ctx context.Context, p model.Product) (model.Product, error) {
	const op = "products.add"
	if !g.configured {
		return model.Product{}, ErrNotConfigured
	}
	ctx, span := telemetry.Start(ctx, op)
	var err error
	defer func() { telemetry.End(span, err) }()

	if strings.TrimSpace(p.Name) == "" || p.Price <= 0 || p.Quantity < 0 || p.FarmerID == "" {
		err = ErrInvalidInput
		return model.Product{}, opErr(op, err)
	}
	p.ID = g.d.NewID()
	created, err := g.d.Products.Create(ctx, p)
	if err != nil {
		return model.Product{}, g.fail(op, err)
	}
	return created, nil
}

// ListProducts は新しい順の商品一覧
func (g *Gateway) ListProducts(ctx context.Context, q repo.ProductListQuery) ([]model.Product, error) {
	const op = "products.list"
	if !g.configured {
		return []model.Product{}, nil
	}
	ctx, span := telemetry.Start(ctx, op)
	var err error
	defer func() { telemetry.End(span, err) }()

	products, err := g.d.Products.List(ctx, q)
	if err != nil {
		return []model.Product{}, g.fail(op, err)
	}
	return products, nil
}

func (g *Gateway) ListFarmerProducts(ctx context.Context, farmerID string) ([]model.Product, error) {
	const op = "products.list_by_farmer"
	if !g.configured {
		return []model.Product{}, nil
	}
	ctx, span := telemetry.Start(ctx, op)
	var err error
	defer func() { telemetry.End(span, err) }()

	products, err := g.d.Products.ListByFarmer(ctx, farmerID)
	if err != nil {
		return []model.Product{}, g.fail(op, err)
	}
	return products, nil
}

// CreateOrder は注文を pending で保存する
func (g *Gateway) CreateOrder(ctx context.Context, o model.Order) (model.Order, error) {
	const op = "orders.create"
	if !g.configured {
		return model.Order{}, ErrNotConfigured
	}
	ctx, span := telemetry.Start(ctx, op)
	var err error
	defer func() { telemetry.End(span, err) }()

	if o.UserID == "" || len(o.Items) == 0 {
		err = ErrInvalidInput
		return model.Order{}, opErr(op, err)
	}
	o.ID = g.d.NewID()
	o.Status = model.OrderStatusPending
	o.OrderDate = g.d.Now()

	created, err := g.d.Orders.Create(ctx, o)
	if err != nil {
		return model.Order{}, g.fail(op, err)
	}
	g.d.Log.Info("order created", zap.String("order_id", created.ID), zap.Float64("total", created.Total))
	return created, nil
}

func (g *Gateway) ListFarmerOrders(ctx context.Context, farmerID string) ([]model.Order, error) {
	const op = "orders.list_by_farmer"
	if !g.configured {
		return []model.Order{}, nil
	}
	ctx, span := telemetry.Start(ctx, op)
	var err error
	defer func() { telemetry.End(span, err) }()

	orders, err := g.d.Orders.ListByFarmer(ctx, farmerID)
	if err != nil {
		return []model.Order{}, g.fail(op, err)
	}
	return orders, nil
}

func (g *Gateway) ListConsumerOrders(ctx context.Context, userID string) ([]model.Order, error) {
	const op = "orders.list_by_user"
	if !g.configured {
		return []model.Order{}, nil
	}
	ctx, span := telemetry.Start(ctx, op)
	var err error
	defer func() { telemetry.End(span, err) }()

	orders, err := g.d.Orders.ListByUser(ctx, userID)
	if err != nil {
		return []model.Order{}, g.fail(op, err)
	}
	return orders, nil
}

func (g *Gateway) ListMarketTrends(ctx context.Context) ([]model.MarketTrend, error) {
	const op = "market_trends.list"
	if !g.configured {
		return []model.MarketTrend{}, nil
	}
	ctx, span := telemetry.Start(ctx, op)
	var err error
	defer func() { telemetry.End(span, err) }()

	trends, err := g.d.Trends.List(ctx)
	if err != nil {
		return []model.MarketTrend{}, g.fail(op, err)
	}
	return trends, nil
}

// SaveMarketTrends は seed 用
func (g *Gateway) SaveMarketTrends(ctx context.Context, trends []model.MarketTrend) error {
	const op = "market_trends.save"
	if !g.configured {
		return ErrNotConfigured
	}
	if err := g.d.Trends.Save(ctx, trends); err != nil {
		return g.fail(op, err)
	}
	return nil
}

// fail はバックエンド側の失敗をログに残して OperationError にする
func (g *Gateway) fail(op string, err error) error {
	g.d.Log.Warn("backend operation failed", zap.String("op", op), zap.Error(err))
	return opErr(op, err)
}
