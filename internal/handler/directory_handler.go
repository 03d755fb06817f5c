package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/i-m-samarth-cs/kisan-connect/internal/session"
	"github.com/i-m-samarth-cs/kisan-connect/internal/usecase"
)

// 農家・NGO・ニュース・市況
type DirectoryHandler struct {
	uc     *usecase.DirectoryUsecase
	trends *usecase.TrendUsecase
}

// DI
func NewDirectoryHandler(uc *usecase.DirectoryUsecase, trends *usecase.TrendUsecase) *DirectoryHandler {
	return &DirectoryHandler{uc: uc, trends: trends}
}

func (h *DirectoryHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/farmers", withSession(h.farmers))
	g.POST("/farmers/:id/sponsor", withSession(h.sponsor))
	g.GET("/ngos", withSession(h.ngos))
	g.GET("/news", withSession(h.news))
	g.GET("/news/:id", withSession(h.article))
	g.GET("/market-trends", withSession(h.marketTrends))
}

func (h *DirectoryHandler) farmers(c echo.Context, sess *session.Session) error {
	return c.JSON(http.StatusOK, h.uc.Farmers(sess))
}

func (h *DirectoryHandler) sponsor(c echo.Context, sess *session.Session) error {
	f, err := h.uc.Sponsor(sess, c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, f)
}

// ?state=Punjab（未指定は All India）
func (h *DirectoryHandler) ngos(c echo.Context, sess *session.Session) error {
	return c.JSON(http.StatusOK, h.uc.NGOs(sess, c.QueryParam("state")))
}

// ?category=policy&q=msp
func (h *DirectoryHandler) news(c echo.Context, sess *session.Session) error {
	return c.JSON(http.StatusOK, h.uc.News(sess, c.QueryParam("category"), c.QueryParam("q")))
}

func (h *DirectoryHandler) article(c echo.Context, sess *session.Session) error {
	a, err := h.uc.Article(sess, c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, a)
}

// ?crop=tomato&chart=pie
func (h *DirectoryHandler) marketTrends(c echo.Context, sess *session.Session) error {
	v := h.trends.View(sess, c.QueryParam("crop"), usecase.ChartType(c.QueryParam("chart")))
	return c.JSON(http.StatusOK, v)
}
