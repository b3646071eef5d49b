package server

import (
	"campuseats/internal/config"
	"campuseats/internal/handler"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// Handlers は起動時にルート登録するハンドラ一式。
type Handlers struct {
	Catalog     *handler.CatalogHandler
	Cart        *handler.CartHandler
	Checkout    *handler.CheckoutHandler
	Order       *handler.OrderHandler
	ShopOrder   *handler.ShopOrderHandler
	ShopProduct *handler.ShopProductHandler
}

// New はルート登録済みのechoを返す。
func New(cfg config.Config, h Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())

	h.Catalog.RegisterRoutes(e)
	h.Cart.RegisterRoutes(e, cfg)
	h.Checkout.RegisterRoutes(e, cfg)
	h.Order.RegisterRoutes(e, cfg)
	h.ShopOrder.RegisterRoutes(e, cfg)
	h.ShopProduct.RegisterRoutes(e, cfg)

	return e
}

func Start(e *echo.Echo, addr string) error {
	return e.Start(addr)
}
