package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/i-m-samarth-cs/kisan-connect/internal/middleware"
	"github.com/i-m-samarth-cs/kisan-connect/internal/session"
	"github.com/i-m-samarth-cs/kisan-connect/internal/usecase"
)

// /checkout と /orders
type OrderHandler struct {
	uc *usecase.CheckoutUsecase
}

// DI
func NewOrderHandler(uc *usecase.CheckoutUsecase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

type deliveryRequest struct {
	Address string `json:"address"`
}

type paymentRequest struct {
	CardNumber     string `json:"card_number"`
	ExpiryDate     string `json:"expiry_date"`
	CVV            string `json:"cvv"`
	CardholderName string `json:"cardholder_name"`
}

func (h *OrderHandler) RegisterRoutes(g *echo.Group) {
	cg := g.Group("/checkout")
	cg.GET("", withSession(h.view))
	cg.POST("/toggle", withSession(h.toggle))
	cg.POST("/proceed", withSession(h.proceed))
	cg.POST("/delivery", withSession(h.delivery))
	cg.POST("/back", withSession(h.back))
	cg.POST("/place", withSession(h.place))

	g.GET("/orders", withSession(h.listOrders), middleware.RequireUser())
}

func (h *OrderHandler) view(c echo.Context, sess *session.Session) error {
	return c.JSON(http.StatusOK, h.uc.View(sess))
}

func (h *OrderHandler) toggle(c echo.Context, sess *session.Session) error {
	return c.JSON(http.StatusOK, h.uc.Toggle(sess))
}

func (h *OrderHandler) proceed(c echo.Context, sess *session.Session) error {
	out, err := h.uc.Proceed(sess)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) delivery(c echo.Context, sess *session.Session) error {
	var req deliveryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	out, err := h.uc.SetDelivery(sess, req.Address)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) back(c echo.Context, sess *session.Session) error {
	return c.JSON(http.StatusOK, h.uc.Back(sess))
}

// 注文確定。再送は重複注文になる。
func (h *OrderHandler) place(c echo.Context, sess *session.Session) error {
	var req paymentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	order, err := h.uc.PlaceOrder(c.Request().Context(), sess, usecase.PaymentInput{
		CardNumber:     req.CardNumber,
		ExpiryDate:     req.ExpiryDate,
		CVV:            req.CVV,
		CardholderName: req.CardholderName,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, order)
}

func (h *OrderHandler) listOrders(c echo.Context, sess *session.Session) error {
	orders, err := h.uc.Orders(c.Request().Context(), sess)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, orders)
}
