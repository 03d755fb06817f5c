package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/i-m-samarth-cs/kisan-connect/internal/session"
)

const (
	CtxSessionKey = "session" // *session.Session

	SessionCookie = "sid"
	SessionHeader = "X-Session-ID"
)

// Session はクッキー（またはヘッダー）のIDからセッションを引き当てる。
// 無い・期限切れなら新しく作ってクッキーを返す。
func Session(reg *session.Registry, ttl time.Duration, secure bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Request().Header.Get(SessionHeader)
			if ck, err := c.Cookie(SessionCookie); err == nil && ck.Value != "" {
				id = ck.Value
			}

			sess, created := reg.GetOrCreate(id)
			if created {
				c.SetCookie(&http.Cookie{
					Name:     SessionCookie,
					Value:    sess.ID,
					Path:     "/",
					HttpOnly: true,
					Secure:   secure,
					SameSite: http.SameSiteLaxMode,
					MaxAge:   int(ttl.Seconds()),
				})
			}
			c.Response().Header().Set(SessionHeader, sess.ID)

			// Bearerトークンはサインイン済みの別クライアントからの引き継ぎ用
			if sess.Token() == "" {
				if tok := bearerToken(c.Request().Header.Get("Authorization")); tok != "" {
					sess.SetToken(tok)
				}
			}

			c.Set(CtxSessionKey, sess)
			return next(c)
		}
	}
}

// SessionFrom は Session ミドルウェアが入れたセッションを返す
func SessionFrom(c echo.Context) (*session.Session, bool) {
	s, ok := c.Get(CtxSessionKey).(*session.Session)
	return s, ok && s != nil
}

func bearerToken(authz string) string {
	parts := strings.SplitN(authz, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

type errorResponse struct {
	Error string `json:"error"`
}

func errorJSON(msg string) errorResponse {
	return errorResponse{Error: msg}
}
