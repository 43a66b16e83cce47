// Package queue defines message payloads exchanged over the message broker
// and the consumer that records them.
package queue

// TicketsPurchasedQueue is the default queue name for sale events.
const TicketsPurchasedQueue = "tickets.purchased"

// TicketsPurchasedEvent is published after a ticket sale is committed.  It
// carries enough for downstream consumers to log or notify without querying
// the primary database.
type TicketsPurchasedEvent struct {
	SaleID      uint64 `json:"sale_id"`
	CustomerID  uint64 `json:"customer_id"`
	EventID     uint64 `json:"event_id"`
	EventName   string `json:"event_name"`
	EventDate   string `json:"event_date"`
	TicketCount int    `json:"ticket_count"`
	Remaining   int    `json:"remaining"`
	PurchasedAt string `json:"purchased_at"`
}
