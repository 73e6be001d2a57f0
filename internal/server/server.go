package server

import (
	"marketplace/internal/config"
	"marketplace/internal/handler"
	"marketplace/internal/middleware"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type Handlers struct {
	Orders       *handler.OrderHandler
	VendorOrders *handler.VendorOrderHandler
	Cart         *handler.CartHandler
	Inventory    *handler.InventoryHandler
	AdminVendors *handler.AdminVendorHandler
}

// New はechoを組み立ててルートを登録する。
func New(cfg config.Config, log *zap.Logger, h Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.RequestLog(log))

	h.Orders.RegisterRoutes(e, cfg)
	h.VendorOrders.RegisterRoutes(e, cfg)
	h.Cart.RegisterRoutes(e, cfg)
	h.Inventory.RegisterRoutes(e, cfg)
	h.AdminVendors.RegisterRoutes(e, cfg)

	return e
}
