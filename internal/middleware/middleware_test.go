package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/i-m-samarth-cs/kisan-connect/internal/domain/model"
	"github.com/i-m-samarth-cs/kisan-connect/internal/session"
	"github.com/i-m-samarth-cs/kisan-connect/internal/store"
)

// =====================
// レスポンス確認用
// =====================

type mwErrorResponse struct {
	Error string `json:"error"`
}

type mwOKResponse struct {
	SessionID string `json:"session_id"`
	Token     string `json:"token"`
}

func okHandler(c echo.Context) error {
	sess, ok := SessionFrom(c)
	if !ok {
		return c.JSON(http.StatusInternalServerError, errorJSON("no session"))
	}
	return c.JSON(http.StatusOK, mwOKResponse{SessionID: sess.ID, Token: sess.Token()})
}

func newMWEcho(reg *session.Registry, mws ...echo.MiddlewareFunc) *echo.Echo {
	e := echo.New()
	e.Use(Session(reg, time.Hour, false))
	e.GET("/x", okHandler, mws...)
	return e
}

func decodeOK(t *testing.T, rec *httptest.ResponseRecorder) mwOKResponse {
	t.Helper()
	var out mwOKResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestSession_CreatesAndReuses(t *testing.T) {
	reg := session.NewRegistry(time.Hour, 0)
	e := newMWEcho(reg)

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	first := decodeOK(t, rec)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, SessionCookie, cookies[0].Name)
	assert.Equal(t, first.SessionID, cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)

	// 同じクッキーなら同じセッション、クッキーは再発行しない
	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.AddCookie(cookies[0])
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, first.SessionID, decodeOK(t, rec).SessionID)
	assert.Empty(t, rec.Result().Cookies())
	assert.Equal(t, 1, reg.Len())

	// ヘッダーでも引き当てられる
	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(SessionHeader, first.SessionID)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, first.SessionID, decodeOK(t, rec).SessionID)
}

func TestSession_UnknownIDGetsNewSession(t *testing.T) {
	reg := session.NewRegistry(time.Hour, 0)
	e := newMWEcho(reg)

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "expired"})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	out := decodeOK(t, rec)
	assert.NotEqual(t, "expired", out.SessionID)
	assert.Len(t, rec.Result().Cookies(), 1)
}

func TestSession_CookielessRequestsBounded(t *testing.T) {
	reg := session.NewRegistry(time.Hour, 0).WithLimit(3)
	e := newMWEcho(reg)

	for i := 0; i < 20; i++ {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))
		require.Equal(t, http.StatusOK, rec.Code)
	}
	assert.Equal(t, 3, reg.Len())
}

func TestSession_BearerToken(t *testing.T) {
	reg := session.NewRegistry(time.Hour, 0)
	e := newMWEcho(reg)

	tests := []struct {
		name  string
		authz string
		want  string
	}{
		{"bearer", "Bearer abc.def", "abc.def"},
		{"case insensitive", "bearer abc", "abc"},
		{"basic ignored", "Basic xyz", ""},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/x", nil)
			if tt.authz != "" {
				req.Header.Set("Authorization", tt.authz)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)
			assert.Equal(t, tt.want, decodeOK(t, rec).Token)
		})
	}
}

func TestRequireRole(t *testing.T) {
	reg := session.NewRegistry(time.Hour, 0)
	e := newMWEcho(reg, RequireRole(model.RoleFarmer))
	sess, _ := reg.GetOrCreate("")

	do := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.Header.Set(SessionHeader, sess.ID)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec
	}

	rec := do()
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	sess.Store.Dispatch(store.SetUser{User: &model.User{ID: "c1", Role: model.RoleConsumer}})
	rec = do()
	assert.Equal(t, http.StatusForbidden, rec.Code)
	var body mwErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "farmer only", body.Error)

	sess.Store.Dispatch(store.SetUser{User: &model.User{ID: "f1", Role: model.RoleFarmer}})
	assert.Equal(t, http.StatusOK, do().Code)
}

func TestRequireUser(t *testing.T) {
	reg := session.NewRegistry(time.Hour, 0)
	e := newMWEcho(reg, RequireUser())

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAPIKey(t *testing.T) {
	e := echo.New()
	e.GET("/open", func(c echo.Context) error { return c.NoContent(http.StatusOK) }, APIKey(""))
	e.GET("/locked", func(c echo.Context) error { return c.NoContent(http.StatusOK) }, APIKey("anon-key"))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/open", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/locked", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/locked", nil)
	req.Header.Set(APIKeyHeader, "anon-key")
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

type bootFunc func(ctx context.Context, sess *session.Session) error

func (f bootFunc) Boot(ctx context.Context, sess *session.Session) error { return f(ctx, sess) }

func TestBootstrap(t *testing.T) {
	reg := session.NewRegistry(time.Hour, 0)

	calls := 0
	e := newMWEcho(reg, Bootstrap(bootFunc(func(ctx context.Context, sess *session.Session) error {
		calls++
		return nil
	})))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, calls)

	e = newMWEcho(reg, Bootstrap(bootFunc(func(ctx context.Context, sess *session.Session) error {
		return errors.New("seed broken")
	})))
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestRequestLogger(t *testing.T) {
	e := echo.New()
	e.Use(RequestLogger(zap.NewNop()))
	e.GET("/ping", func(c echo.Context) error { return c.String(http.StatusOK, "pong") })

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
