// Package view renders the HTML pages.  Templates are embedded and parsed
// once; each page is executed by its file name (e.g. "events.html").
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/ticket-sales/internal/repository"
)

//go:embed templates/*.html
var templateFiles embed.FS

// Template names.
const (
	Home            = "home.html"
	Events          = "events.html"
	AvailableEvents = "available_events.html"
	EventCustomers  = "event_customers.html"
	BuyTickets      = "buy_tickets.html"
	AddCustomer     = "add_customer.html"
	EditCustomer    = "edit_customer.html"
	CustomerSearch  = "customer_search.html"
	CustomerSummary = "customer_summary.html"
	NotFound        = "not_found.html"
	Error           = "error.html"
)

// Renderer implements echo.Renderer over the embedded template set.
type Renderer struct {
	tmpl *template.Template
}

// New parses all embedded templates.
func New() (*Renderer, error) {
	t, err := template.New("").Funcs(funcs).ParseFS(templateFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{tmpl: t}, nil
}

// Must is New that panics on error; templates are compiled in, so a failure
// is a build defect.
func Must() *Renderer {
	r, err := New()
	if err != nil {
		panic(err)
	}
	return r
}

func (r *Renderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	return r.tmpl.ExecuteTemplate(w, name, data)
}

var funcs = template.FuncMap{
	"date": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format(repository.DateLayout)
	},
}
