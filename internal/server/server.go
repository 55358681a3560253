package server

import (
	"context"

	"storefront/internal/config"
	"storefront/internal/handler"
	"storefront/internal/middleware"
	"storefront/internal/session"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// ルート登録に必要なhandler一式。
type Handlers struct {
	Auth         *handler.AuthHandler
	Product      *handler.ProductHandler
	Cart         *handler.CartHandler
	Order        *handler.OrderHandler
	AdminAuth    *handler.AdminAuthHandler
	AdminOrder   *handler.AdminOrderHandler
	AdminProduct *handler.AdminProductHandler
}

// New はechoを組み立てる。起動はしない。
func New(cfg config.Config, store session.Store, h Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	//cookie検証はここで全ルート共通。ガードは各handlerが付ける
	e.Use(middleware.SessionResolver(cfg.SessionSecret, store))

	h.Auth.RegisterRoutes(e)
	h.Product.RegisterRoutes(e)
	h.Cart.RegisterRoutes(e)
	h.Order.RegisterRoutes(e)
	h.AdminAuth.RegisterRoutes(e)
	h.AdminOrder.RegisterRoutes(e)
	h.AdminProduct.RegisterRoutes(e)

	return e
}

// Start はブロックして待ち受ける。
func Start(e *echo.Echo, addr string) error {
	return e.Start(addr)
}

// Shutdown は受付を止めて処理中のリクエストを待つ。
func Shutdown(ctx context.Context, e *echo.Echo) error {
	return e.Shutdown(ctx)
}
