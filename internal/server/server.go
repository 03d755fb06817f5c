package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/i-m-samarth-cs/kisan-connect/internal/middleware"
)

const shutdownTimeout = 10 * time.Second

// NewApp は共通ミドルウェア付きの echo を作る
func NewApp(log *zap.Logger, allowOrigin string) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(middleware.RequestLogger(log))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     []string{allowOrigin},
		AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAuthorization, middleware.APIKeyHeader, middleware.SessionHeader},
		ExposeHeaders:    []string{middleware.SessionHeader},
		AllowCredentials: true,
	}))
	return e
}

// Handler は otel の計測を挟んだ http.Handler
func Handler(e *echo.Echo) http.Handler {
	return otelhttp.NewHandler(e, "kisanconnect", otelhttp.WithFilter(func(r *http.Request) bool {
		return r.URL.Path != "/healthz"
	}))
}

// Start は ctx が終わるまで待ち受け、終わったら接続を閉じて戻る
func Start(ctx context.Context, addr string, e *echo.Echo, log *zap.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           Handler(e),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	log.Info("server shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
