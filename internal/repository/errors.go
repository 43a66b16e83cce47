// Package repository contains data access logic separated from HTTP handlers.
// Each repository wraps a *sql.DB pool; methods with a Tx suffix run on a
// caller-owned transaction and never commit or roll back themselves.
//
// Lookups by primary key return one of the sentinel errors below instead of
// a nil record so handlers can decide how to surface a missing row.
package repository

import (
	"context"
	"database/sql"
	"errors"
)

// ErrCustomerNotFound is returned when no customers row matches the id.
var ErrCustomerNotFound = errors.New("customer not found")

// ErrEventNotFound is returned when no events row matches the id.
var ErrEventNotFound = errors.New("event not found")

// DateLayout is the textual form of DATE columns and date form fields.
const DateLayout = "2006-01-02"

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
