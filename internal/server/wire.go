package server

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/i-m-samarth-cs/kisan-connect/internal/config"
	"github.com/i-m-samarth-cs/kisan-connect/internal/gateway"
	"github.com/i-m-samarth-cs/kisan-connect/internal/handler"
	"github.com/i-m-samarth-cs/kisan-connect/internal/i18n"
	"github.com/i-m-samarth-cs/kisan-connect/internal/infra/cache"
	"github.com/i-m-samarth-cs/kisan-connect/internal/infra/db"
	infraRepo "github.com/i-m-samarth-cs/kisan-connect/internal/infra/repository"
	repo "github.com/i-m-samarth-cs/kisan-connect/internal/repository"
	"github.com/i-m-samarth-cs/kisan-connect/internal/realtime"
	"github.com/i-m-samarth-cs/kisan-connect/internal/session"
	"github.com/i-m-samarth-cs/kisan-connect/internal/usecase"
)

const productCacheTTL = 5 * time.Minute

// App は組み立て済みのサーバー部品
type App struct {
	Echo     *echo.Echo
	Hub      *realtime.Hub
	Sessions *session.Registry
	Gateway  *gateway.Gateway

	closers []func() error
}

// Build は設定から全部品を組み立てる。
// バックエンド未設定ならデモモード（オフラインゲートウェイ）で動く。
func Build(ctx context.Context, cfg config.Config, log *zap.Logger) (*App, error) {
	app := &App{}

	tr, err := i18n.Load()
	if err != nil {
		return nil, err
	}
	prefs, err := i18n.NewPreferenceStore(cfg.PrefsPath)
	if err != nil {
		return nil, err
	}

	gw, err := app.buildGateway(ctx, cfg, log)
	if err != nil {
		_ = app.Close()
		return nil, err
	}
	app.Gateway = gw

	//usecaseに渡す部品
	clock := usecase.ClockFunc(time.Now)
	idGen := usecase.IDFunc(uuid.NewString)

	app.Hub = realtime.NewHub(cfg.FEURL, log)
	app.closers = append(app.closers, func() error { app.Hub.Close(); return nil })
	app.Sessions = session.NewRegistry(cfg.SessionTTL, cfg.ChatDelay).WithLimit(cfg.MaxSessions)

	notifier := usecase.NewNotifier(clock, idGen, tr)
	productUC := usecase.NewProductUsecase()
	cartUC := usecase.NewCartUsecase(notifier)
	farmerUC := usecase.NewFarmerUsecase(gw, notifier, log)
	directoryUC := usecase.NewDirectoryUsecase(notifier)
	trendUC := usecase.NewTrendUsecase()
	bootUC := usecase.NewBootstrapUsecase(gw, prefs, log)

	langDelay := usecase.DefaultLanguageSwitchDelay
	if cfg.GoEnv == "test" {
		langDelay = 0
	}

	h := Handlers{
		App: handler.NewAppHandler(
			usecase.NewStateUsecase(notifier),
			usecase.NewPageUsecase(productUC, cartUC, farmerUC, directoryUC, trendUC),
			usecase.NewPreferenceUsecase(prefs, tr, langDelay, log),
			usecase.NewChatUsecase(),
			gw,
		),
		Auth:      handler.NewAuthHandler(usecase.NewAuthUsecase(gw, notifier, log)),
		Products:  handler.NewProductHandler(productUC),
		Cart:      handler.NewCartHandler(cartUC),
		Orders:    handler.NewOrderHandler(usecase.NewCheckoutUsecase(gw, app.Hub, notifier, log)),
		Farmer:    handler.NewFarmerHandler(farmerUC, app.Hub),
		Directory: handler.NewDirectoryHandler(directoryUC, trendUC),
	}

	app.Echo = NewApp(log, cfg.FEURL)
	apiKey := ""
	if cfg.IsBackendConfigured() {
		apiKey = cfg.BackendKey
	}
	RegisterRoutes(app.Echo, h, RouteOptions{
		Sessions:     app.Sessions,
		SessionTTL:   cfg.SessionTTL,
		CookieSecure: cfg.IsProd(),
		APIKey:       apiKey,
		Boot:         bootUC,
	})
	return app, nil
}

// OpenGateway はゲートウェイだけを組み立てる（CLI用）。返す関数で接続を閉じる。
func OpenGateway(ctx context.Context, cfg config.Config, log *zap.Logger) (*gateway.Gateway, func() error, error) {
	a := &App{}
	gw, err := a.buildGateway(ctx, cfg, log)
	if err != nil {
		_ = a.Close()
		return nil, nil, err
	}
	return gw, a.Close, nil
}

func (a *App) buildGateway(ctx context.Context, cfg config.Config, log *zap.Logger) (*gateway.Gateway, error) {
	if !cfg.IsBackendConfigured() {
		log.Warn("backend not configured, running with demo data")
		return gateway.NewOffline(log), nil
	}

	//DB接続
	gdb, err := db.Connect(cfg.BackendURL)
	if err != nil {
		return nil, err
	}
	if sqlDB, err := gdb.DB(); err == nil {
		a.closers = append(a.closers, sqlDB.Close)
	}
	if err := db.Migrate(gdb); err != nil {
		return nil, err
	}

	//Repository（GORM実装）生成
	trends := infraRepo.NewMarketTrendGormRepository(gdb)
	var products repo.ProductRepository = infraRepo.NewProductGormRepository(gdb)

	// 商品一覧のキャッシュ（Redisが無ければ直読み）
	if cfg.RedisAddr != "" {
		client, err := cache.NewRedisClient(ctx, cfg.RedisAddr)
		if err != nil {
			log.Warn("redis unavailable, product cache disabled", zap.Error(err))
		} else {
			a.closers = append(a.closers, client.Close)
			products = cache.NewCachedProductRepository(products, cache.NewRedisProductStore(client, productCacheTTL), log)
		}
	}

	cost := bcrypt.DefaultCost
	if cfg.GoEnv == "test" {
		cost = bcrypt.MinCost
	}

	return gateway.New(gateway.Deps{
		Users:    infraRepo.NewUserGormRepository(gdb),
		Products: products,
		Orders:   infraRepo.NewOrderGormRepository(gdb),
		Trends:   trends,
		Health:   trends,
		Hasher:   gateway.NewBcryptPasswordHasher(cost),
		Tokens:   gateway.NewJWTIssuer(cfg.JWTSecret, cfg.SessionTTL),
		Log:      log,
	}), nil
}

// Close は開いた接続を逆順に閉じる
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
