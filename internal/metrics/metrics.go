// Package metrics holds the prometheus collectors exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Purchase outcomes used as the "outcome" label.
const (
	OutcomeSuccess   = "success"
	OutcomeInvalid   = "invalid"
	OutcomeNotFound  = "not_found"
	OutcomeUnderAge  = "under_age"
	OutcomePastEvent = "past_event"
	OutcomeSoldOut   = "insufficient_tickets"
	OutcomeError     = "error"
)

var (
	PurchaseAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ticket_purchase_attempts_total",
			Help: "Ticket purchase attempts by outcome",
		},
		[]string{"outcome"},
	)

	TicketsSold = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tickets_sold_total",
			Help: "Total number of tickets sold",
		},
	)

	CustomerWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "customer_writes_total",
			Help: "Customer inserts and updates",
		},
		[]string{"operation"}, // "create", "update"
	)

	CachePurgeErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "response_cache_purge_errors_total",
			Help: "Failed attempts to purge the response cache after a write",
		},
	)
)

// RecordPurchase counts one purchase attempt and, on success, the tickets sold.
func RecordPurchase(outcome string, tickets int) {
	PurchaseAttempts.WithLabelValues(outcome).Inc()
	if outcome == OutcomeSuccess && tickets > 0 {
		TicketsSold.Add(float64(tickets))
	}
}
