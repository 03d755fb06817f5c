package handler

import (
	"bytes"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/i-m-samarth-cs/kisan-connect/internal/domain/model"
	"github.com/i-m-samarth-cs/kisan-connect/internal/middleware"
	"github.com/i-m-samarth-cs/kisan-connect/internal/session"
	"github.com/i-m-samarth-cs/kisan-connect/internal/usecase"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// 新規注文のリアルタイム配信
type OrderFeed interface {
	ServeWS(w http.ResponseWriter, r *http.Request, farmerID string) error
}

// /farmer 配下（農家のみ）
type FarmerHandler struct {
	uc   *usecase.FarmerUsecase
	feed OrderFeed
}

// DI
func NewFarmerHandler(uc *usecase.FarmerUsecase, feed OrderFeed) *FarmerHandler {
	return &FarmerHandler{uc: uc, feed: feed}
}

type addCropRequest struct {
	Name        string  `json:"name"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
	Location    string  `json:"location"`
	Unit        string  `json:"unit"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
}

func (h *FarmerHandler) RegisterRoutes(g *echo.Group) {
	fg := g.Group("/farmer")
	fg.Use(middleware.RequireRole(model.RoleFarmer))

	fg.GET("/dashboard", withSession(h.dashboard))
	fg.POST("/products", withSession(h.addCrop))
	fg.GET("/products/export", withSession(h.export))
	fg.GET("/price-prediction", h.pricePrediction)
	fg.GET("/crop-health", h.cropHealth)

	g.GET("/ws/orders", withSession(h.orderFeed), middleware.RequireRole(model.RoleFarmer))
}

func (h *FarmerHandler) dashboard(c echo.Context, sess *session.Session) error {
	out, err := h.uc.Dashboard(c.Request().Context(), sess)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *FarmerHandler) addCrop(c echo.Context, sess *session.Session) error {
	var req addCropRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	p, err := h.uc.AddCrop(c.Request().Context(), sess, usecase.AddCropInput{
		Name:        req.Name,
		Quantity:    req.Quantity,
		Price:       req.Price,
		Location:    req.Location,
		Unit:        req.Unit,
		Description: req.Description,
		Category:    req.Category,
		Image:       req.Image,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, p)
}

// 出品一覧のExcel
func (h *FarmerHandler) export(c echo.Context, sess *session.Session) error {
	var buf bytes.Buffer
	if err := h.uc.ExportListings(c.Request().Context(), sess, &buf); err != nil {
		return writeError(c, err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename=listings.xlsx")
	return c.Blob(http.StatusOK, xlsxContentType, buf.Bytes())
}

func (h *FarmerHandler) pricePrediction(c echo.Context) error {
	return c.JSON(http.StatusOK, h.uc.PricePrediction())
}

func (h *FarmerHandler) cropHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, h.uc.CropHealth())
}

// websocket 接続中はブロックする
func (h *FarmerHandler) orderFeed(c echo.Context, sess *session.Session) error {
	user := sess.Store.State().User
	if err := h.feed.ServeWS(c.Response(), c.Request(), user.ID); err != nil {
		c.Logger().Warn(err)
	}
	return nil
}
