package model

import "time"

// Customer is a person who can buy tickets.  This struct corresponds to a
// row in the `customers` table.  Customers are created and edited through
// the web forms and are never deleted.
//
// Fields:
//
//	ID          – primary key identifier.
//	FirstName   – given name, trimmed before storage.
//	FamilyName  – surname, trimmed before storage; lists sort by it.
//	DateOfBirth – calendar date (midnight UTC) used for age checks.
//	Email       – contact address.
//	Phone       – contact number.
type Customer struct {
	ID          uint64    // customers.customer_id
	FirstName   string    // customers.first_name
	FamilyName  string    // customers.family_name
	DateOfBirth time.Time // customers.date_of_birth
	Email       string    // customers.email
	Phone       string    // customers.phone
}

// FullName joins the first and family names for display.
func (c Customer) FullName() string {
	if c.FirstName == "" {
		return c.FamilyName
	}
	if c.FamilyName == "" {
		return c.FirstName
	}
	return c.FirstName + " " + c.FamilyName
}

// CustomerSummary is a customer's purchase history with the total number of
// tickets across all purchases.
type CustomerSummary struct {
	Customer     Customer
	Purchases    []Purchase
	TotalTickets int
}

// Purchase is one ticket_sales row joined to its event.
type Purchase struct {
	EventName   string
	EventDate   time.Time
	TicketCount int
}
