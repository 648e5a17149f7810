package main

import (
	"strings"

	"AgroShopAPI/internal/logging"
	"AgroShopAPI/internal/middleware"
	"AgroShopAPI/internal/view"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// newServer builds the router: storefront, admin panel, JSON API, health and
// metrics.
func newServer(a app) (*echo.Echo, error) {
	renderer, err := view.New()
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = renderer

	access := logging.Named(a.log, "http")
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:     true,
		LogURI:        true,
		LogStatus:     true,
		LogLatency:    true,
		LogRemoteIP:   true,
		LogError:      true,
		HandleError:   true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			ev := access.Info()
			if v.Error != nil {
				ev = access.Error().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("remote_ip", v.RemoteIP).
				Msg("request")
			return nil
		},
	}))
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		Skipper: func(c echo.Context) bool {
			p := c.Request().URL.Path
			return !(p == "/metrics" || p == "/health" || strings.HasPrefix(p, "/api/"))
		},
		AllowOrigins: []string{"*"},
	}))

	// ======================
	// ROUTES (ONLY REGISTRATION)
	// ======================
	registerHealthRoutes(e, a.metrics, logging.Named(a.log, "health"))
	registerShopRoutes(e, a.products, a.carts, a.cfg.SessionTTL)
	registerAdminRoutes(e,
		adminAuth{Service: a.auth, Secret: []byte(a.cfg.JWTSecret), TokenHours: a.cfg.AdminTokenHours},
		adminServices{Products: a.products, Orders: a.orders, Stats: a.stats})

	api := e.Group("/api/v1", middleware.Metrics(a.metrics, logging.Named(a.log, "api")))
	registerProductRoutes(api, a.products)
	registerOrderRoutes(api, a.orders)
	registerStatsRoutes(api, a.stats)

	return e, nil
}
