package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/ticket-sales/internal/model"
)

// CustomerRepo encapsulates all database queries related to customers.
type CustomerRepo struct {
	db *sql.DB
}

// NewCustomerRepo constructs a CustomerRepo with the provided DB handle.
func NewCustomerRepo(db *sql.DB) *CustomerRepo {
	return &CustomerRepo{db: db}
}

const customerColumns = "customer_id, first_name, family_name, date_of_birth, email, phone"

// Create inserts a new customer.  On success the customer's ID field is
// populated with the auto-generated value.
func (r *CustomerRepo) Create(ctx context.Context, c *model.Customer) error {
	const q = `INSERT INTO customers (first_name, family_name, date_of_birth, email, phone)
	           VALUES (?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, c.FirstName, c.FamilyName, c.DateOfBirth.Format(DateLayout), c.Email, c.Phone)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = uint64(id)
	return nil
}

// Update overwrites all five editable fields of the customer with c.ID.
// MySQL reports zero affected rows both for a missing id and for an
// unchanged row, so callers re-read the row to learn which one happened.
func (r *CustomerRepo) Update(ctx context.Context, c *model.Customer) error {
	const q = `UPDATE customers
	           SET first_name = ?,
	               family_name = ?,
	               date_of_birth = ?,
	               email = ?,
	               phone = ?
	           WHERE customer_id = ?`
	_, err := r.db.ExecContext(ctx, q, c.FirstName, c.FamilyName, c.DateOfBirth.Format(DateLayout), c.Email, c.Phone, c.ID)
	return err
}

// GetByID fetches a customer by id.  It returns ErrCustomerNotFound if no
// row is found.
func (r *CustomerRepo) GetByID(ctx context.Context, id uint64) (*model.Customer, error) {
	return getCustomer(ctx, r.db, id)
}

// GetByIDTx is GetByID inside a caller-owned transaction.
func (r *CustomerRepo) GetByIDTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Customer, error) {
	return getCustomer(ctx, tx, id)
}

func getCustomer(ctx context.Context, q querier, id uint64) (*model.Customer, error) {
	const query = "SELECT " + customerColumns + " FROM customers WHERE customer_id = ?"
	var c model.Customer
	if err := q.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.FirstName, &c.FamilyName, &c.DateOfBirth, &c.Email, &c.Phone); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	return &c, nil
}

// ListByFamilyName returns id and names of all customers ordered by family
// name.  It feeds the purchase form's customer options.
func (r *CustomerRepo) ListByFamilyName(ctx context.Context) ([]model.Customer, error) {
	const q = "SELECT customer_id, first_name, family_name FROM customers ORDER BY family_name"
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Customer, 0)
	for rows.Next() {
		var c model.Customer
		if err := rows.Scan(&c.ID, &c.FirstName, &c.FamilyName); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListByEvent returns the customers holding tickets for an event, ordered by
// family name and then by date of birth, youngest first.  A customer appears
// once per ticket_sales row, so repeat buyers are listed repeatedly.
func (r *CustomerRepo) ListByEvent(ctx context.Context, eventID uint64) ([]model.Customer, error) {
	const q = `SELECT c.customer_id, c.first_name, c.family_name, c.date_of_birth
	           FROM customers c
	           JOIN ticket_sales t ON c.customer_id = t.customer_id
	           WHERE t.event_id = ?
	           ORDER BY c.family_name ASC, c.date_of_birth DESC`
	rows, err := r.db.QueryContext(ctx, q, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Customer, 0)
	for rows.Next() {
		var c model.Customer
		if err := rows.Scan(&c.ID, &c.FirstName, &c.FamilyName, &c.DateOfBirth); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Search matches keyword as a substring of first or family name.  Case
// sensitivity follows the column collation (case-insensitive for the default
// utf8mb4 collation).  Date of birth is not loaded.
func (r *CustomerRepo) Search(ctx context.Context, keyword string) ([]model.Customer, error) {
	const q = `SELECT customer_id, first_name, family_name, email, phone
	           FROM customers
	           WHERE first_name LIKE ? OR family_name LIKE ?
	           ORDER BY family_name, first_name`
	pattern := "%" + keyword + "%"
	rows, err := r.db.QueryContext(ctx, q, pattern, pattern)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Customer, 0)
	for rows.Next() {
		var c model.Customer
		if err := rows.Scan(&c.ID, &c.FirstName, &c.FamilyName, &c.Email, &c.Phone); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
