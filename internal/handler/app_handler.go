package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/i-m-samarth-cs/kisan-connect/internal/session"
	"github.com/i-m-samarth-cs/kisan-connect/internal/usecase"
)

// 接続確認（バックエンド）
type ConnectionTester interface {
	Configured() bool
	TestConnection(ctx context.Context) bool
}

// 状態・通知・ページ・言語・チャットなど画面全体にかかわるAPI
type AppHandler struct {
	state  *usecase.StateUsecase
	pages  *usecase.PageUsecase
	prefs  *usecase.PreferenceUsecase
	chat   *usecase.ChatUsecase
	health ConnectionTester
}

// DI
func NewAppHandler(state *usecase.StateUsecase, pages *usecase.PageUsecase, prefs *usecase.PreferenceUsecase, chat *usecase.ChatUsecase, health ConnectionTester) *AppHandler {
	return &AppHandler{state: state, pages: pages, prefs: prefs, chat: chat, health: health}
}

type actionRequest struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type languageRequest struct {
	Language string `json:"language"`
}

type translateRequest struct {
	Texts []string `json:"texts"`
}

type chatRequest struct {
	Message string `json:"message"`
}

type darkModeResponse struct {
	IsDarkMode bool `json:"is_dark_mode"`
}

type healthResponse struct {
	Status     string `json:"status"`
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
}

// ヘルスチェックはセッション不要
func (h *AppHandler) RegisterHealth(e *echo.Echo) {
	e.GET("/healthz", h.healthz)
}

func (h *AppHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/state", withSession(h.snapshot))
	g.POST("/state/actions", withSession(h.dispatch))

	g.GET("/notifications", withSession(h.notifications))
	g.DELETE("/notifications/:id", withSession(h.dismiss))

	g.GET("/pages/:page", withSession(h.page))

	g.GET("/preferences/language", withSession(h.language))
	g.PUT("/preferences/language", withSession(h.setLanguage))
	g.POST("/preferences/dark-mode", withSession(h.toggleDarkMode))
	g.POST("/translate", withSession(h.translate))

	g.GET("/chat", withSession(h.chatView))
	g.POST("/chat/toggle", withSession(h.chatToggle))
	g.POST("/chat/messages", withSession(h.chatSend))
}

func (h *AppHandler) healthz(c echo.Context) error {
	configured := h.health.Configured()
	connected := configured && h.health.TestConnection(c.Request().Context())
	status := "ok"
	if configured && !connected {
		status = "degraded"
	}
	return c.JSON(http.StatusOK, healthResponse{Status: status, Configured: configured, Connected: connected})
}

func (h *AppHandler) snapshot(c echo.Context, sess *session.Session) error {
	return c.JSON(http.StatusOK, h.state.Snapshot(sess))
}

// UI系アクションのみ（TOGGLE_DARK_MODE など）
func (h *AppHandler) dispatch(c echo.Context, sess *session.Session) error {
	var req actionRequest
	if err := c.Bind(&req); err != nil || req.Type == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	out, err := h.state.Dispatch(sess, req.Type, req.Payload)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AppHandler) notifications(c echo.Context, sess *session.Session) error {
	return c.JSON(http.StatusOK, h.state.Notifications(sess))
}

func (h *AppHandler) dismiss(c echo.Context, sess *session.Session) error {
	h.state.Dismiss(sess, c.Param("id"))
	return c.NoContent(http.StatusNoContent)
}

// 未知のページはホーム
func (h *AppHandler) page(c echo.Context, sess *session.Session) error {
	v, err := h.pages.Render(c.Request().Context(), sess, c.Param("page"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, v)
}

func (h *AppHandler) language(c echo.Context, sess *session.Session) error {
	return c.JSON(http.StatusOK, h.prefs.Language(sess))
}

func (h *AppHandler) setLanguage(c echo.Context, sess *session.Session) error {
	var req languageRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	out, err := h.prefs.SetLanguage(c.Request().Context(), sess, req.Language)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AppHandler) toggleDarkMode(c echo.Context, sess *session.Session) error {
	return c.JSON(http.StatusOK, darkModeResponse{IsDarkMode: h.prefs.ToggleDarkMode(sess)})
}

func (h *AppHandler) translate(c echo.Context, sess *session.Session) error {
	var req translateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	return c.JSON(http.StatusOK, h.prefs.Translate(sess, req.Texts))
}

func (h *AppHandler) chatView(c echo.Context, sess *session.Session) error {
	return c.JSON(http.StatusOK, h.chat.View(sess))
}

func (h *AppHandler) chatToggle(c echo.Context, sess *session.Session) error {
	return c.JSON(http.StatusOK, h.chat.Toggle(sess))
}

// 返信までブロックする
func (h *AppHandler) chatSend(c echo.Context, sess *session.Session) error {
	var req chatRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	reply, err := h.chat.Send(c.Request().Context(), sess, req.Message)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, reply)
}
