package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/ticket-sales/internal/metrics"
	"github.com/iliyamo/ticket-sales/internal/model"
	"github.com/iliyamo/ticket-sales/internal/repository"
	"github.com/iliyamo/ticket-sales/internal/validation"
	"github.com/iliyamo/ticket-sales/internal/view"
)

// Messages shown on the customer forms.
const (
	msgCustomerAdded   = "Customer added successfully."
	msgCustomerUpdated = "Customer updated successfully."
	msgFieldsRequired  = "All fields are required."
	msgInvalidDOB      = "Date of birth must be a valid date (YYYY-MM-DD)."
)

// CustomerHandler serves the add, edit, search and summary pages.
type CustomerHandler struct {
	Customers *repository.CustomerRepo
	Sales     *repository.TicketSaleRepo
	Cache     CachePurger
}

// NewCustomerHandler panics if a repository is nil.  cache may be nil.
func NewCustomerHandler(customers *repository.CustomerRepo, sales *repository.TicketSaleRepo, cache CachePurger) *CustomerHandler {
	if customers == nil || sales == nil {
		panic("nil repository passed to NewCustomerHandler")
	}
	return &CustomerHandler{Customers: customers, Sales: sales, Cache: cache}
}

// formNotice maps a validation error to the message shown on the form.
func formNotice(err error) view.Notice {
	if errors.Is(err, validation.ErrMissingFields) {
		return view.Notice{Message: msgFieldsRequired}
	}
	return view.Notice{Message: msgInvalidDOB}
}

// AddCustomer renders an empty form on GET and inserts a customer on POST.
func (h *CustomerHandler) AddCustomer(c echo.Context) error {
	if c.Request().Method != http.MethodPost {
		return c.Render(http.StatusOK, view.AddCustomer, view.AddCustomerPage{})
	}

	form := validation.NewCustomerForm(c.FormValue)
	if err := form.Validate(); err != nil {
		return c.Render(http.StatusOK, view.AddCustomer, view.AddCustomerPage{Notice: formNotice(err), Form: form})
	}
	customer, err := form.Customer(0)
	if err != nil {
		return c.Render(http.StatusOK, view.AddCustomer, view.AddCustomerPage{Notice: formNotice(err), Form: form})
	}

	ctx := c.Request().Context()
	if err := h.Customers.Create(ctx, &customer); err != nil {
		return serverError(c, err, "create customer")
	}
	metrics.CustomerWrites.WithLabelValues("create").Inc()
	purge(ctx, h.Cache)

	return c.Render(http.StatusOK, view.AddCustomer, view.AddCustomerPage{
		Notice: view.Notice{Message: msgCustomerAdded, Success: true},
	})
}

// EditCustomer renders the stored customer on GET and updates all five
// fields on POST.  The page always shows the row as re-read from the
// database.
func (h *CustomerHandler) EditCustomer(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return notFound(c, "Customer")
	}
	ctx := c.Request().Context()

	var notice view.Notice
	if c.Request().Method == http.MethodPost {
		form := validation.NewCustomerForm(c.FormValue)
		err := form.Validate()
		if err == nil {
			updated, convErr := form.Customer(id)
			if convErr != nil {
				err = convErr
			} else if err = h.Customers.Update(ctx, &updated); err != nil {
				return serverError(c, err, "update customer")
			}
		}
		if err != nil {
			notice = formNotice(err)
		} else {
			metrics.CustomerWrites.WithLabelValues("update").Inc()
			purge(ctx, h.Cache)
			notice = view.Notice{Message: msgCustomerUpdated, Success: true}
		}
	}

	customer, err := h.Customers.GetByID(ctx, id)
	if errors.Is(err, repository.ErrCustomerNotFound) {
		return notFound(c, "Customer")
	}
	if err != nil {
		return serverError(c, err, "load customer")
	}
	return c.Render(http.StatusOK, view.EditCustomer, view.EditCustomerPage{Notice: notice, Customer: *customer})
}

// SearchCustomers matches the posted keyword against first and family
// names.  An empty keyword returns no results without querying.
func (h *CustomerHandler) SearchCustomers(c echo.Context) error {
	var page view.CustomerSearchPage
	if c.Request().Method == http.MethodPost {
		page.Keyword = strings.TrimSpace(c.FormValue("keyword"))
	}
	if page.Keyword != "" {
		results, err := h.Customers.Search(c.Request().Context(), page.Keyword)
		if err != nil {
			return serverError(c, err, "search customers")
		}
		page.Results = results
	}
	return c.Render(http.StatusOK, view.CustomerSearch, page)
}

// CustomerSummary renders a customer's purchases and their ticket total.
func (h *CustomerHandler) CustomerSummary(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return notFound(c, "Customer")
	}
	ctx := c.Request().Context()

	customer, err := h.Customers.GetByID(ctx, id)
	if errors.Is(err, repository.ErrCustomerNotFound) {
		return notFound(c, "Customer")
	}
	if err != nil {
		return serverError(c, err, "load customer")
	}
	purchases, err := h.Sales.ListPurchasesByCustomer(ctx, id)
	if err != nil {
		return serverError(c, err, "list customer purchases")
	}

	summary := model.CustomerSummary{Customer: *customer, Purchases: purchases}
	for _, p := range purchases {
		summary.TotalTickets += p.TicketCount
	}
	return c.Render(http.StatusOK, view.CustomerSummary, view.CustomerSummaryPage{CustomerSummary: summary})
}
