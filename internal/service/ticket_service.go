// Package service holds the ticket purchase rules and the orchestration that
// applies them inside a single database transaction.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/iliyamo/ticket-sales/internal/clock"
	"github.com/iliyamo/ticket-sales/internal/metrics"
	"github.com/iliyamo/ticket-sales/internal/model"
	q "github.com/iliyamo/ticket-sales/internal/queue"
	"github.com/iliyamo/ticket-sales/internal/repository"
)

// PurchaseRequest is a validated buy-tickets form submission.
type PurchaseRequest struct {
	CustomerID  uint64
	EventID     uint64
	TicketCount int
}

// PurchaseResult describes a committed sale.
type PurchaseResult struct {
	Sale      model.TicketSale
	Event     model.Event
	Remaining int // tickets left after this sale
}

// TicketService sells tickets.  A nil publisher disables sale events.
type TicketService struct {
	events    *repository.EventRepo
	customers *repository.CustomerRepo
	sales     *repository.TicketSaleRepo
	clock     clock.Clock
	publisher SalePublisher
}

// NewTicketService wires the repositories and clock.  All arguments must be
// non-nil.
func NewTicketService(events *repository.EventRepo, customers *repository.CustomerRepo, sales *repository.TicketSaleRepo, clk clock.Clock, publisher SalePublisher) *TicketService {
	if events == nil || customers == nil || sales == nil || clk == nil {
		panic("nil dependency passed to NewTicketService")
	}
	return &TicketService{events: events, customers: customers, sales: sales, clock: clk, publisher: publisher}
}

// Purchase checks, in order, the customer's age, that the event is in the
// future and that enough tickets remain, then records the sale.  The first
// failing check wins and nothing is written.
//
// The event row is locked FOR UPDATE for the whole check-then-insert, so two
// concurrent purchases for one event cannot both pass the capacity check.
func (s *TicketService) Purchase(ctx context.Context, req PurchaseRequest) (*PurchaseResult, error) {
	res, err := s.purchase(ctx, req)
	metrics.RecordPurchase(outcomeOf(err), req.TicketCount)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, res)
	return res, nil
}

func (s *TicketService) purchase(ctx context.Context, req PurchaseRequest) (*PurchaseResult, error) {
	if req.TicketCount < 1 {
		return nil, ErrInvalidTicketCount
	}

	tx, err := s.events.DB().BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin purchase: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	event, err := s.events.GetForUpdateTx(ctx, tx, req.EventID)
	if err != nil {
		return nil, err
	}
	customer, err := s.customers.GetByIDTx(ctx, tx, req.CustomerID)
	if err != nil {
		return nil, err
	}

	today := clock.Today(s.clock)
	if Age(customer.DateOfBirth, today) < event.AgeRestriction {
		return nil, ErrUnderAge
	}
	if !IsFutureEvent(event.Date, today) {
		return nil, ErrPastEvent
	}

	sold, err := s.sales.SoldForEventTx(ctx, tx, event.ID)
	if err != nil {
		return nil, fmt.Errorf("load sold tickets: %w", err)
	}
	available := Available(event.Capacity, sold)
	if req.TicketCount > available {
		return nil, &InsufficientTicketsError{Available: available}
	}

	sale := model.TicketSale{CustomerID: customer.ID, EventID: event.ID, TicketCount: req.TicketCount}
	if err := s.sales.CreateTx(ctx, tx, &sale); err != nil {
		return nil, fmt.Errorf("insert ticket sale: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit purchase: %w", err)
	}
	committed = true

	return &PurchaseResult{Sale: sale, Event: *event, Remaining: available - req.TicketCount}, nil
}

func (s *TicketService) publish(ctx context.Context, res *PurchaseResult) {
	if s.publisher == nil {
		return
	}
	ev := q.TicketsPurchasedEvent{
		SaleID:      res.Sale.ID,
		CustomerID:  res.Sale.CustomerID,
		EventID:     res.Sale.EventID,
		EventName:   res.Event.Name,
		EventDate:   res.Event.Date.Format(repository.DateLayout),
		TicketCount: res.Sale.TicketCount,
		Remaining:   res.Remaining,
		PurchasedAt: s.clock.Now().UTC().Format(time.RFC3339),
	}
	if err := s.publisher.PublishTicketsPurchased(ctx, ev); err != nil {
		log.Warn().Err(err).Uint64("sale_id", res.Sale.ID).Msg("ticket sale event not published")
	}
}

func outcomeOf(err error) string {
	var short *InsufficientTicketsError
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case errors.Is(err, ErrInvalidTicketCount):
		return metrics.OutcomeInvalid
	case errors.Is(err, repository.ErrEventNotFound), errors.Is(err, repository.ErrCustomerNotFound):
		return metrics.OutcomeNotFound
	case errors.Is(err, ErrUnderAge):
		return metrics.OutcomeUnderAge
	case errors.Is(err, ErrPastEvent):
		return metrics.OutcomePastEvent
	case errors.As(err, &short):
		return metrics.OutcomeSoldOut
	default:
		return metrics.OutcomeError
	}
}
