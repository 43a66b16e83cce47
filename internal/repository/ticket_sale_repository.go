package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/ticket-sales/internal/model"
)

// TicketSaleRepo provides access to the ticket_sales table.  Sales are only
// ever inserted; there is no update or delete.
type TicketSaleRepo struct {
	db *sql.DB
}

// NewTicketSaleRepo returns a new TicketSaleRepo bound to the given database.
func NewTicketSaleRepo(db *sql.DB) *TicketSaleRepo { return &TicketSaleRepo{db: db} }

// SoldForEvent returns the total tickets sold for an event, 0 when it has no
// sales.
func (r *TicketSaleRepo) SoldForEvent(ctx context.Context, eventID uint64) (int, error) {
	return soldForEvent(ctx, r.db, eventID)
}

// SoldForEventTx is SoldForEvent inside a caller-owned transaction.
func (r *TicketSaleRepo) SoldForEventTx(ctx context.Context, tx *sql.Tx, eventID uint64) (int, error) {
	return soldForEvent(ctx, tx, eventID)
}

func soldForEvent(ctx context.Context, q querier, eventID uint64) (int, error) {
	const query = "SELECT SUM(ticket_count) AS sold FROM ticket_sales WHERE event_id = ?"
	var sold sql.NullInt64
	if err := q.QueryRowContext(ctx, query, eventID).Scan(&sold); err != nil {
		return 0, err
	}
	if !sold.Valid {
		return 0, nil
	}
	return int(sold.Int64), nil
}

// CreateTx inserts a sale within the scope of an existing transaction and
// populates the generated ID.  The caller must commit or roll back.
func (r *TicketSaleRepo) CreateTx(ctx context.Context, tx *sql.Tx, s *model.TicketSale) error {
	const q = "INSERT INTO ticket_sales (customer_id, event_id, ticket_count) VALUES (?, ?, ?)"
	res, err := tx.ExecContext(ctx, q, s.CustomerID, s.EventID, s.TicketCount)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	return nil
}

// ListPurchasesByCustomer returns a customer's sales joined to their events,
// earliest event first.
func (r *TicketSaleRepo) ListPurchasesByCustomer(ctx context.Context, customerID uint64) ([]model.Purchase, error) {
	const q = `SELECT e.event_name, e.event_date, t.ticket_count
	           FROM ticket_sales t
	           JOIN events e ON t.event_id = e.event_id
	           WHERE t.customer_id = ?
	           ORDER BY e.event_date ASC`
	rows, err := r.db.QueryContext(ctx, q, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Purchase, 0)
	for rows.Next() {
		var p model.Purchase
		if err := rows.Scan(&p.EventName, &p.EventDate, &p.TicketCount); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
