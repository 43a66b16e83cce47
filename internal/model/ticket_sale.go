package model

// TicketSale records a customer buying TicketCount tickets for one event.
// Rows are immutable and a customer may hold several rows for the same event.
type TicketSale struct {
	ID          uint64 // ticket_sales.sale_id
	CustomerID  uint64 // ticket_sales.customer_id
	EventID     uint64 // ticket_sales.event_id
	TicketCount int    // ticket_sales.ticket_count
}
