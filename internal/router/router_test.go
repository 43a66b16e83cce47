package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/ticket-sales/internal/clock"
	"github.com/iliyamo/ticket-sales/internal/handler"
	"github.com/iliyamo/ticket-sales/internal/repository"
	"github.com/iliyamo/ticket-sales/internal/service"
	"github.com/iliyamo/ticket-sales/internal/view"
)

func passThrough(next echo.HandlerFunc) echo.HandlerFunc { return next }

func newServer(t *testing.T) *echo.Echo {
	t.Helper()
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	clk := clock.NewSystem(nil)
	events := repository.NewEventRepo(db)
	customers := repository.NewCustomerRepo(db)
	sales := repository.NewTicketSaleRepo(db)

	e := echo.New()
	e.Renderer = view.Must()
	RegisterRoutes(e)
	RegisterEvents(e, handler.NewEventHandler(events, customers, clk), passThrough)
	RegisterTickets(e, handler.NewTicketHandler(service.NewTicketService(events, customers, sales, clk, nil), events, customers, clk, nil), passThrough)
	RegisterCustomers(e, handler.NewCustomerHandler(customers, sales, nil), passThrough, passThrough)
	return e
}

func TestRoutesRegistered(t *testing.T) {
	e := newServer(t)

	want := map[string]bool{
		"GET /":                      false,
		"GET /healthz":               false,
		"GET /metrics":               false,
		"GET /events":                false,
		"GET /events/available":      false,
		"GET /events/:id/customers":  false,
		"GET /tickets/buy":           false,
		"POST /tickets/buy":          false,
		"GET /customers/add":         false,
		"POST /customers/add":        false,
		"GET /customers/edit/:id":    false,
		"POST /customers/edit/:id":   false,
		"GET /customers/search":      false,
		"POST /customers/search":     false,
		"GET /customers/:id/summary": false,
	}
	for _, r := range e.Routes() {
		key := r.Method + " " + r.Path
		if _, ok := want[key]; ok {
			want[key] = true
		}
	}
	for route, seen := range want {
		if !seen {
			t.Errorf("route %s not registered", route)
		}
	}
}

func TestStaticPagesServe(t *testing.T) {
	e := newServer(t)
	for _, path := range []string{"/", "/healthz", "/metrics", "/customers/add", "/customers/search"} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusOK {
			t.Errorf("GET %s: status %d", path, rec.Code)
		}
	}
}

func TestNonNumericIDIsNotFound(t *testing.T) {
	e := newServer(t)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/customers/abc/summary", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
