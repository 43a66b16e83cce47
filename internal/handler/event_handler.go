package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/ticket-sales/internal/clock"
	"github.com/iliyamo/ticket-sales/internal/repository"
	"github.com/iliyamo/ticket-sales/internal/view"
)

// EventHandler serves the read-only event pages.
type EventHandler struct {
	Events    *repository.EventRepo
	Customers *repository.CustomerRepo
	Clock     clock.Clock
}

// NewEventHandler panics if any dependency is nil.
func NewEventHandler(events *repository.EventRepo, customers *repository.CustomerRepo, clk clock.Clock) *EventHandler {
	if events == nil || customers == nil || clk == nil {
		panic("nil dependency passed to NewEventHandler")
	}
	return &EventHandler{Events: events, Customers: customers, Clock: clk}
}

// ListEvents renders every event, earliest first.
func (h *EventHandler) ListEvents(c echo.Context) error {
	events, err := h.Events.ListAll(c.Request().Context())
	if err != nil {
		return serverError(c, err, "list events")
	}
	return c.Render(http.StatusOK, view.Events, view.EventsPage{Events: events})
}

// AvailableEvents renders future events that still have tickets left.
func (h *EventHandler) AvailableEvents(c echo.Context) error {
	events, err := h.Events.ListAvailable(c.Request().Context(), clock.Today(h.Clock))
	if err != nil {
		return serverError(c, err, "list available events")
	}
	return c.Render(http.StatusOK, view.AvailableEvents, view.AvailableEventsPage{Events: events})
}

// EventCustomers renders the customers who bought tickets for one event.
// A customer with several sales for the event appears once per sale.
func (h *EventHandler) EventCustomers(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return notFound(c, "Event")
	}
	ctx := c.Request().Context()

	event, err := h.Events.GetByID(ctx, id)
	if errors.Is(err, repository.ErrEventNotFound) {
		return notFound(c, "Event")
	}
	if err != nil {
		return serverError(c, err, "load event")
	}
	customers, err := h.Customers.ListByEvent(ctx, id)
	if err != nil {
		return serverError(c, err, "list event customers")
	}
	return c.Render(http.StatusOK, view.EventCustomers, view.EventCustomersPage{Event: *event, Customers: customers})
}
