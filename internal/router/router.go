package router

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/iliyamo/ticket-sales/internal/handler"
)

// RegisterRoutes registers the home page and the operational endpoints.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/", handler.Home)
	e.GET("/healthz", handler.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}

// RegisterEvents registers the read-only event pages behind cache.
func RegisterEvents(e *echo.Echo, h *handler.EventHandler, cache echo.MiddlewareFunc) {
	e.GET("/events", h.ListEvents, cache)
	e.GET("/events/available", h.AvailableEvents, cache)
	e.GET("/events/:id/customers", h.EventCustomers, cache)
}

// RegisterTickets registers the buy-tickets form.  limit throttles the
// POST; the limiter itself lets other methods through.
func RegisterTickets(e *echo.Echo, h *handler.TicketHandler, limit echo.MiddlewareFunc) {
	e.GET("/tickets/buy", h.BuyTickets)
	e.POST("/tickets/buy", h.BuyTickets, limit)
}
