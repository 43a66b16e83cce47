// Package handler holds the echo handlers for the ticket sales pages.
package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/iliyamo/ticket-sales/internal/metrics"
	"github.com/iliyamo/ticket-sales/internal/view"
)

// CachePurger drops cached pages after a write.  *middleware.ResponseCache
// satisfies it; a nil CachePurger is allowed.
type CachePurger interface {
	Purge(ctx context.Context) error
}

// Home renders the landing page.
func Home(c echo.Context) error {
	return c.Render(http.StatusOK, view.Home, nil)
}

// parseID reads a positive numeric path parameter.
func parseID(c echo.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

func notFound(c echo.Context, what string) error {
	return c.Render(http.StatusNotFound, view.NotFound, view.ErrorPage{
		Status:  http.StatusNotFound,
		Title:   "Not found",
		Message: what + " not found.",
	})
}

// serverError logs err and renders the generic error page.
func serverError(c echo.Context, err error, msg string) error {
	log.Error().Err(err).
		Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
		Str("path", c.Request().URL.Path).
		Msg(msg)
	return c.Render(http.StatusInternalServerError, view.Error, view.ErrorPage{
		Status:  http.StatusInternalServerError,
		Title:   "Something went wrong",
		Message: "The request could not be completed. Please try again later.",
	})
}

func purge(ctx context.Context, cache CachePurger) {
	if cache == nil {
		return
	}
	if err := cache.Purge(ctx); err != nil {
		metrics.CachePurgeErrors.Inc()
		log.Warn().Err(err).Msg("response cache purge failed")
	}
}
