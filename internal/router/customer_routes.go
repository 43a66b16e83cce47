package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/ticket-sales/internal/handler"
)

// RegisterCustomers registers the customer pages.  Writes go through limit;
// the purchase summary is served through cache.
func RegisterCustomers(e *echo.Echo, h *handler.CustomerHandler, cache, limit echo.MiddlewareFunc) {
	g := e.Group("/customers")
	g.GET("/add", h.AddCustomer)
	g.POST("/add", h.AddCustomer, limit)
	g.GET("/edit/:id", h.EditCustomer)
	g.POST("/edit/:id", h.EditCustomer, limit)
	g.GET("/search", h.SearchCustomers)
	g.POST("/search", h.SearchCustomers)
	g.GET("/:id/summary", h.CustomerSummary, cache)
}
