package logging

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestRequestLoggerWritesStructuredLine(t *testing.T) {
	var buf bytes.Buffer
	InitTo(&buf, "debug", "json")
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	e := echo.New()
	e.Use(RequestLogger())
	e.GET("/events/:id/customers", func(c echo.Context) error {
		return c.String(http.StatusNotFound, "missing")
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/events/7/customers", nil))

	var line map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line); err != nil {
		t.Fatalf("expected one json line, got %q: %v", buf.String(), err)
	}
	if line["level"] != "warn" {
		t.Fatalf("expected warn level for 404, got %v", line["level"])
	}
	if line["route"] != "/events/:id/customers" {
		t.Fatalf("unexpected route %v", line["route"])
	}
	if line["status"] != float64(http.StatusNotFound) {
		t.Fatalf("unexpected status %v", line["status"])
	}
}

func TestInitFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	InitTo(&buf, "nonsense", "json")
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	if zerolog.GlobalLevel() != zerolog.InfoLevel {
		t.Fatalf("expected info level, got %s", zerolog.GlobalLevel())
	}
	log.Debug().Msg("hidden")
	if buf.Len() != 0 {
		t.Fatalf("expected debug line to be filtered, got %q", buf.String())
	}
}
