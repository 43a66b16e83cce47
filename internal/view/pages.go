package view

import (
	"github.com/iliyamo/ticket-sales/internal/model"
	"github.com/iliyamo/ticket-sales/internal/validation"
)

// Notice is the optional one-line message shown above a form.  The zero
// value renders nothing.
type Notice struct {
	Message string
	Success bool
}

type EventsPage struct {
	Events []model.Event
}

type AvailableEventsPage struct {
	Events []model.AvailableEvent
}

type EventCustomersPage struct {
	Event     model.Event
	Customers []model.Customer
}

// BuyTicketsPage is the purchase form.  Selected* echo the last submission
// back so a rejected purchase can be corrected in place.
type BuyTicketsPage struct {
	Notice
	Customers          []model.Customer
	Events             []model.Event
	SelectedCustomerID uint64
	SelectedEventID    uint64
	TicketCount        string
}

// AddCustomerPage keeps the submitted values after a validation failure and
// clears them after a successful insert.
type AddCustomerPage struct {
	Notice
	Form validation.CustomerForm
}

type EditCustomerPage struct {
	Notice
	Customer model.Customer
}

type CustomerSearchPage struct {
	Keyword string
	Results []model.Customer
}

type CustomerSummaryPage struct {
	model.CustomerSummary
}

type ErrorPage struct {
	Status  int
	Title   string
	Message string
}
