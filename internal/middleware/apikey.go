package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/labstack/echo/v4"
)

const APIKeyHeader = "apikey"

// APIKey は公開キーを apikey ヘッダーで要求する。key が空なら検査しない（デモモード）。
func APIKey(key string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if key == "" {
				return next(c)
			}
			got := c.Request().Header.Get(APIKeyHeader)
			if subtle.ConstantTimeCompare([]byte(got), []byte(key)) != 1 {
				return c.JSON(http.StatusUnauthorized, errorJSON("Invalid or missing API key"))
			}
			return next(c)
		}
	}
}
