package server

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/i-m-samarth-cs/kisan-connect/internal/handler"
	"github.com/i-m-samarth-cs/kisan-connect/internal/middleware"
	"github.com/i-m-samarth-cs/kisan-connect/internal/session"
)

type Handlers struct {
	App       *handler.AppHandler
	Auth      *handler.AuthHandler
	Products  *handler.ProductHandler
	Cart      *handler.CartHandler
	Orders    *handler.OrderHandler
	Farmer    *handler.FarmerHandler
	Directory *handler.DirectoryHandler
}

type RouteOptions struct {
	Sessions     *session.Registry
	SessionTTL   time.Duration
	CookieSecure bool
	APIKey       string
	Boot         middleware.Booter
}

// RegisterRoutes はセッション付きのAPIを登録する。
// /healthz 以外はすべて apikey と Session と初期読み込みを通る。
func RegisterRoutes(e *echo.Echo, h Handlers, opt RouteOptions) {
	h.App.RegisterHealth(e)

	g := e.Group("")
	g.Use(middleware.APIKey(opt.APIKey))
	g.Use(middleware.Session(opt.Sessions, opt.SessionTTL, opt.CookieSecure))
	g.Use(middleware.Bootstrap(opt.Boot))

	h.App.RegisterRoutes(g)
	h.Auth.RegisterRoutes(g)
	h.Products.RegisterRoutes(g)
	h.Cart.RegisterRoutes(g)
	h.Orders.RegisterRoutes(g)
	h.Farmer.RegisterRoutes(g)
	h.Directory.RegisterRoutes(g)
}
