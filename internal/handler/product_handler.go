package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/i-m-samarth-cs/kisan-connect/internal/middleware"
	"github.com/i-m-samarth-cs/kisan-connect/internal/session"
	"github.com/i-m-samarth-cs/kisan-connect/internal/usecase"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		return c.JSON(he.Status, ErrorResponse{Error: he.Message})
	}

	//500
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

type sessionHandler func(c echo.Context, sess *session.Session) error

// withSession は Session ミドルウェアが入れたセッションを渡す
func withSession(fn sessionHandler) echo.HandlerFunc {
	return func(c echo.Context) error {
		sess, ok := middleware.SessionFrom(c)
		if !ok {
			return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "session missing"})
		}
		return fn(c, sess)
	}
}

// /products の公開API（セッションに読み込まれた商品）
type ProductHandler struct {
	uc *usecase.ProductUsecase
}

// DI
func NewProductHandler(uc *usecase.ProductUsecase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// 公開商品のルートを登録
func (h *ProductHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/products", withSession(h.list))
	g.GET("/products/:id", withSession(h.detail))
}

func (h *ProductHandler) list(c echo.Context, sess *session.Session) error {

	var minPrice *float64
	if v := c.QueryParam("min_price"); v != "" {
		x, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid min_price"})
		}
		minPrice = &x
	}

	var maxPrice *float64
	if v := c.QueryParam("max_price"); v != "" {
		x, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid max_price"})
		}
		maxPrice = &x
	}

	out := h.uc.List(sess, usecase.ProductFilter{
		Search:   c.QueryParam("q"),
		Category: c.QueryParam("category"),
		MinPrice: minPrice,
		MaxPrice: maxPrice,
	})
	return c.JSON(http.StatusOK, out)
}

func (h *ProductHandler) detail(c echo.Context, sess *session.Session) error {
	p, ok := h.uc.Get(sess, c.Param("id"))
	if !ok {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
	}
	return c.JSON(http.StatusOK, p)
}
