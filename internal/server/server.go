package server

import (
	"net/http"

	"app/internal/config"
	"app/internal/handler"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

type Handlers struct {
	Auth      *handler.AuthHandler
	Product   *handler.ProductHandler
	Category  *handler.CategoryHandler
	Artisan   *handler.ArtisanHandler
	Cart      *handler.CartHandler
	GuestCart *handler.GuestCartHandler
	Seed      *handler.SeedHandler
}

// New はechoを組み立てて返す。起動はしない。
func New(cfg config.Config, h Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     []string{cfg.FEURL},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowCredentials: true,
	}))

	h.Auth.RegisterRoutes(e)
	h.Product.RegisterRoutes(e)
	h.Category.RegisterRoutes(e)
	h.Artisan.RegisterRoutes(e)
	h.Cart.RegisterRoutes(e)
	h.GuestCart.RegisterRoutes(e)
	h.Seed.RegisterRoutes(e)

	return e
}

func Start(e *echo.Echo, cfg config.Config) error {
	addr := cfg.Port
	if addr != "" && addr[0] != ':' {
		addr = ":" + addr
	}
	return e.Start(addr)
}
