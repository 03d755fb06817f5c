package middleware

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/i-m-samarth-cs/kisan-connect/internal/session"
)

// Booter はセッション初回の読み込み
type Booter interface {
	Boot(ctx context.Context, sess *session.Session) error
}

// Bootstrap はセッションごとに一度だけ初期データを読み込む
func Bootstrap(b Booter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess, ok := SessionFrom(c)
			if !ok {
				return c.JSON(http.StatusInternalServerError, errorJSON("session missing"))
			}
			if err := b.Boot(c.Request().Context(), sess); err != nil {
				return c.JSON(http.StatusInternalServerError, errorJSON("initialization failed"))
			}
			return next(c)
		}
	}
}
