package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/i-m-samarth-cs/kisan-connect/internal/session"
	"github.com/i-m-samarth-cs/kisan-connect/internal/usecase"
)

// /cartのHTTP
type CartHandler struct {
	uc *usecase.CartUsecase
}

// DI
func NewCartHandler(uc *usecase.CartUsecase) *CartHandler {
	return &CartHandler{uc: uc}
}

type AddCartRequest struct {
	ProductID string `json:"product_id"`
}

type UpdateCartItemRequest struct {
	Quantity *int `json:"quantity"`
}

// /cart, /cart/{id} を登録
func (h *CartHandler) RegisterRoutes(g *echo.Group) {
	cg := g.Group("/cart")
	cg.GET("", withSession(h.getCart))
	cg.POST("", withSession(h.addToCart))
	cg.POST("/buy-now", withSession(h.buyNow))
	cg.PATCH("/:id", withSession(h.patchItem))
	cg.DELETE("/:id", withSession(h.deleteItem))
	cg.DELETE("", withSession(h.clear))
}

func (h *CartHandler) getCart(c echo.Context, sess *session.Session) error {
	return c.JSON(http.StatusOK, h.uc.View(sess))
}

func (h *CartHandler) addToCart(c echo.Context, sess *session.Session) error {
	var req AddCartRequest
	if err := c.Bind(&req); err != nil || req.ProductID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	out, err := h.uc.AddToCart(sess, req.ProductID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) buyNow(c echo.Context, sess *session.Session) error {
	var req AddCartRequest
	if err := c.Bind(&req); err != nil || req.ProductID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	out, err := h.uc.BuyNow(sess, req.ProductID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// 数量0以下は削除
func (h *CartHandler) patchItem(c echo.Context, sess *session.Session) error {
	var req UpdateCartItemRequest
	if err := c.Bind(&req); err != nil || req.Quantity == nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	return c.JSON(http.StatusOK, h.uc.UpdateQuantity(sess, c.Param("id"), *req.Quantity))
}

func (h *CartHandler) deleteItem(c echo.Context, sess *session.Session) error {
	return c.JSON(http.StatusOK, h.uc.Remove(sess, c.Param("id")))
}

func (h *CartHandler) clear(c echo.Context, sess *session.Session) error {
	return c.JSON(http.StatusOK, h.uc.Clear(sess))
}
