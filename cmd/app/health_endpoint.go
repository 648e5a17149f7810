package main

import (
	"net/http"
	"time"

	"AgroShopAPI/internal/metrics"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// sampler is swapped in tests.
var sampler = metrics.SampleSystem

// registerHealthRoutes mounts /health and /metrics on the root router.
func registerHealthRoutes(e *echo.Echo, m *metrics.Collector, log zerolog.Logger) {
	e.GET("/health", func(c echo.Context) error {
		s, err := sampler(c.Request().Context())
		if err != nil {
			log.Error().Err(err).Msg("system sample failed")
			return c.JSON(http.StatusInternalServerError, echo.Map{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now().Unix(),
			})
		}
		return c.JSON(http.StatusOK, echo.Map{
			"status":    "healthy",
			"timestamp": time.Now().Unix(),
			"system":    s,
		})
	})

	exposition := promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
	e.GET("/metrics", func(c echo.Context) error {
		s, err := sampler(c.Request().Context())
		if err != nil {
			log.Warn().Err(err).Msg("system sample failed")
		} else {
			m.SetSystem(s.CPUUsage, s.MemoryUsage, s.DiskUsage)
		}
		exposition.ServeHTTP(c.Response(), c.Request())
		return nil
	})
}
