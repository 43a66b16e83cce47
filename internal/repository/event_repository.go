package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/iliyamo/ticket-sales/internal/model"
)

// EventRepo encapsulates all database queries related to events.  Events are
// read-only in this application; the repository never writes them.
type EventRepo struct {
	db *sql.DB
}

// NewEventRepo constructs an EventRepo with the provided DB handle.
func NewEventRepo(db *sql.DB) *EventRepo {
	return &EventRepo{db: db}
}

// DB exposes the underlying pool so services can begin transactions that
// span several repositories.
func (r *EventRepo) DB() *sql.DB { return r.db }

const eventColumns = "event_id, event_name, event_date, age_restriction, capacity"

// ListAll returns every event ordered by date, earliest first.
func (r *EventRepo) ListAll(ctx context.Context) ([]model.Event, error) {
	const q = "SELECT " + eventColumns + " FROM events ORDER BY event_date"
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Event, 0)
	for rows.Next() {
		var e model.Event
		if err := rows.Scan(&e.ID, &e.Name, &e.Date, &e.AgeRestriction, &e.Capacity); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListUpcoming returns events dated strictly after today.  Only id, name and
// date are loaded; they feed the purchase form's event options.
func (r *EventRepo) ListUpcoming(ctx context.Context, today time.Time) ([]model.Event, error) {
	const q = "SELECT event_id, event_name, event_date FROM events WHERE event_date > ? ORDER BY event_date"
	rows, err := r.db.QueryContext(ctx, q, today.Format(DateLayout))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Event, 0)
	for rows.Next() {
		var e model.Event
		if err := rows.Scan(&e.ID, &e.Name, &e.Date); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListAvailable returns events dated strictly after today whose capacity
// minus tickets sold is still positive.  Events without sales count as zero
// sold through the outer join.
func (r *EventRepo) ListAvailable(ctx context.Context, today time.Time) ([]model.AvailableEvent, error) {
	const q = `SELECT e.event_id, e.event_name, e.event_date, e.age_restriction, e.capacity,
	                  CAST(COALESCE(SUM(t.ticket_count), 0) AS SIGNED) AS sold
	           FROM events e
	           LEFT JOIN ticket_sales t ON e.event_id = t.event_id
	           WHERE e.event_date > ?
	           GROUP BY e.event_id
	           HAVING e.capacity - sold > 0
	           ORDER BY e.event_date ASC`
	rows, err := r.db.QueryContext(ctx, q, today.Format(DateLayout))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.AvailableEvent, 0)
	for rows.Next() {
		var a model.AvailableEvent
		if err := rows.Scan(&a.ID, &a.Name, &a.Date, &a.AgeRestriction, &a.Capacity, &a.Sold); err != nil {
			return nil, err
		}
		a.Remaining = a.Capacity - a.Sold
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID fetches an event by its ID.  It returns ErrEventNotFound if no row
// is found.
func (r *EventRepo) GetByID(ctx context.Context, id uint64) (*model.Event, error) {
	return getEvent(ctx, r.db, "SELECT "+eventColumns+" FROM events WHERE event_id = ?", id)
}

// GetForUpdateTx fetches an event inside tx and locks its row until the
// transaction ends.  Concurrent purchases for the same event queue up here,
// which keeps the capacity check and the insert atomic.
func (r *EventRepo) GetForUpdateTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Event, error) {
	return getEvent(ctx, tx, "SELECT "+eventColumns+" FROM events WHERE event_id = ? FOR UPDATE", id)
}

func getEvent(ctx context.Context, q querier, query string, id uint64) (*model.Event, error) {
	var e model.Event
	if err := q.QueryRowContext(ctx, query, id).Scan(&e.ID, &e.Name, &e.Date, &e.AgeRestriction, &e.Capacity); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return &e, nil
}
