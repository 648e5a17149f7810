package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"AgroShopAPI/internal/metrics"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// Metrics records every request exactly once: one api_requests_total
// increment and one duration observation. A panic in the handler is turned
// into a 500 JSON response and counted like any other request.
func Metrics(m *metrics.Collector, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			start := time.Now()
			defer func() {
				if r := recover(); r != nil {
					log.Error().Str("method", c.Request().Method).Str("endpoint", c.Path()).
						Interface("panic", r).Msg("API call failed")
					err = nil
					if !c.Response().Committed {
						err = c.JSON(http.StatusInternalServerError, map[string]string{"error": fmt.Sprint(r)})
					}
				}
				m.ObserveRequest(c.Request().Method, c.Path(), strconv.Itoa(statusOf(c, err)), time.Since(start).Seconds())
			}()
			return next(c)
		}
	}
}

// statusOf is the status the client will see, including errors that echo's
// error handler has not written yet.
func statusOf(c echo.Context, err error) int {
	if err == nil || c.Response().Committed {
		return c.Response().Status
	}
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code
	}
	return http.StatusInternalServerError
}
