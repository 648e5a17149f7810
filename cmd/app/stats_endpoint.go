package main

import (
	"net/http"

	"AgroShopAPI/internal/services"

	"github.com/labstack/echo/v4"
)

func registerStatsRoutes(g *echo.Group, ss *services.StatsService) {
	g.GET("/stats", func(c echo.Context) error {
		st, err := ss.Summary(c.Request().Context())
		if err != nil {
			return jsonError(c, err)
		}
		return c.JSON(http.StatusOK, st)
	})
}
