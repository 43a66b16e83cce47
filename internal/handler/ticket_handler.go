package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/ticket-sales/internal/clock"
	"github.com/iliyamo/ticket-sales/internal/repository"
	"github.com/iliyamo/ticket-sales/internal/service"
	"github.com/iliyamo/ticket-sales/internal/view"
)

// Messages shown on the buy-tickets form.
const (
	msgPurchased         = "Tickets purchased successfully."
	msgSelectBoth        = "Please select a customer and an event."
	msgCountNotNumber    = "Ticket count must be a whole number."
	msgCountTooSmall     = "Ticket count must be at least 1."
	msgEventNotFound     = "Event not found."
	msgCustomerNotFound  = "Customer not found."
	msgUnderAge          = "Customer does not meet the age requirement for this event."
	msgPastEvent         = "Cannot purchase tickets for past events."
	msgTicketsAvailableF = "Only %d tickets available for this event."
)

// TicketHandler serves the buy-tickets form.
type TicketHandler struct {
	Tickets   *service.TicketService
	Events    *repository.EventRepo
	Customers *repository.CustomerRepo
	Clock     clock.Clock
	Cache     CachePurger
}

// NewTicketHandler panics if any dependency other than cache is nil.
func NewTicketHandler(tickets *service.TicketService, events *repository.EventRepo, customers *repository.CustomerRepo, clk clock.Clock, cache CachePurger) *TicketHandler {
	if tickets == nil || events == nil || customers == nil || clk == nil {
		panic("nil dependency passed to NewTicketHandler")
	}
	return &TicketHandler{Tickets: tickets, Events: events, Customers: customers, Clock: clk, Cache: cache}
}

// BuyTickets renders the form on GET and attempts a purchase on POST.  The
// customer and event options are loaded on both so the form stays usable
// after a message.
func (h *TicketHandler) BuyTickets(c echo.Context) error {
	page := view.BuyTicketsPage{}
	status := http.StatusOK

	if c.Request().Method == http.MethodPost {
		var err error
		if status, err = h.purchase(c, &page); err != nil {
			return serverError(c, err, "purchase tickets")
		}
	}

	if err := h.loadOptions(c, &page); err != nil {
		return serverError(c, err, "load buy tickets options")
	}
	return c.Render(status, view.BuyTickets, page)
}

// purchase fills page with the outcome message and returns the HTTP status
// to render it with.  Only data-layer failures are returned as errors.
func (h *TicketHandler) purchase(c echo.Context, page *view.BuyTicketsPage) (int, error) {
	page.TicketCount = c.FormValue("ticket_count")

	customerID, errC := strconv.ParseUint(strings.TrimSpace(c.FormValue("customer_id")), 10, 64)
	eventID, errE := strconv.ParseUint(strings.TrimSpace(c.FormValue("event_id")), 10, 64)
	page.SelectedCustomerID, page.SelectedEventID = customerID, eventID
	if errC != nil || errE != nil {
		page.Notice = view.Notice{Message: msgSelectBoth}
		return http.StatusBadRequest, nil
	}
	count, err := strconv.Atoi(strings.TrimSpace(page.TicketCount))
	if err != nil {
		page.Notice = view.Notice{Message: msgCountNotNumber}
		return http.StatusBadRequest, nil
	}

	ctx := c.Request().Context()
	_, err = h.Tickets.Purchase(ctx, service.PurchaseRequest{
		CustomerID:  customerID,
		EventID:     eventID,
		TicketCount: count,
	})

	var short *service.InsufficientTicketsError
	switch {
	case err == nil:
		purge(ctx, h.Cache)
		page.Notice = view.Notice{Message: msgPurchased, Success: true}
		page.TicketCount = ""
		return http.StatusOK, nil
	case errors.Is(err, service.ErrInvalidTicketCount):
		page.Notice = view.Notice{Message: msgCountTooSmall}
		return http.StatusBadRequest, nil
	case errors.Is(err, repository.ErrEventNotFound):
		page.Notice = view.Notice{Message: msgEventNotFound}
		return http.StatusNotFound, nil
	case errors.Is(err, repository.ErrCustomerNotFound):
		page.Notice = view.Notice{Message: msgCustomerNotFound}
		return http.StatusNotFound, nil
	case errors.Is(err, service.ErrUnderAge):
		page.Notice = view.Notice{Message: msgUnderAge}
	case errors.Is(err, service.ErrPastEvent):
		page.Notice = view.Notice{Message: msgPastEvent}
	case errors.As(err, &short):
		page.Notice = view.Notice{Message: fmt.Sprintf(msgTicketsAvailableF, short.Available)}
	default:
		return 0, err
	}
	return http.StatusOK, nil
}

func (h *TicketHandler) loadOptions(c echo.Context, page *view.BuyTicketsPage) error {
	ctx := c.Request().Context()
	customers, err := h.Customers.ListByFamilyName(ctx)
	if err != nil {
		return err
	}
	events, err := h.Events.ListUpcoming(ctx, clock.Today(h.Clock))
	if err != nil {
		return err
	}
	page.Customers, page.Events = customers, events
	return nil
}
