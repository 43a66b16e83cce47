package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"
	gobreaker "github.com/sony/gobreaker/v2"

	q "github.com/iliyamo/ticket-sales/internal/queue"
)

const (
	dialTimeout = 5 * time.Second

	// breakerFailures consecutive publish failures open the breaker for
	// breakerCooldown, during which purchases skip the broker entirely.
	breakerFailures = 3
	breakerCooldown = 30 * time.Second
)

// SalePublisher announces committed ticket sales to other systems.
type SalePublisher interface {
	PublishTicketsPurchased(ctx context.Context, event q.TicketsPurchasedEvent) error
}

// AMQPPublisher publishes sale events to a RabbitMQ queue.  Each publish
// dials its own connection; sales are infrequent enough that a pooled
// channel is not worth the reconnect bookkeeping.  A circuit breaker keeps
// an unreachable broker from adding a dial timeout to every purchase.
type AMQPPublisher struct {
	URL   string
	Queue string

	breaker *gobreaker.CircuitBreaker[struct{}]
}

// NewAMQPPublisher returns a publisher for the given broker URL and queue.
func NewAMQPPublisher(url, queue string) *AMQPPublisher {
	if queue == "" {
		queue = q.TicketsPurchasedQueue
	}
	breaker := gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
		Name:    "rabbitmq:" + queue,
		Timeout: breakerCooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breakerFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("rabbitmq: circuit breaker state changed")
		},
	})
	return &AMQPPublisher{URL: url, Queue: queue, breaker: breaker}
}

// PublishTicketsPurchased publishes event as a persistent JSON message.  Any
// error is logged and returned so the caller can choose to ignore it.  While
// the breaker is open it returns gobreaker.ErrOpenState without dialing.
func (p *AMQPPublisher) PublishTicketsPurchased(ctx context.Context, event q.TicketsPurchasedEvent) error {
	if p.breaker == nil {
		return p.publish(ctx, event)
	}
	_, err := p.breaker.Execute(func() (struct{}, error) {
		return struct{}{}, p.publish(ctx, event)
	})
	return err
}

func (p *AMQPPublisher) publish(ctx context.Context, event q.TicketsPurchasedEvent) error {
	conn, err := amqp.DialConfig(p.URL, amqp.Config{Heartbeat: 10 * time.Second, Locale: "en_US", Dial: amqp.DefaultDial(dialTimeout)})
	if err != nil {
		log.Warn().Err(err).Msg("rabbitmq: dial failed")
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Warn().Err(err).Msg("rabbitmq: channel open failed")
		return err
	}
	defer func() { _ = ch.Close() }()

	// Ensure the queue exists (idempotent). Durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(
		p.Queue, // name
		true,    // durable
		false,   // autoDelete
		false,   // exclusive
		false,   // noWait
		nil,     // args
	); err != nil {
		log.Warn().Err(err).Msg("rabbitmq: queue declare failed")
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		log.Warn().Err(err).Msg("rabbitmq: marshal event failed")
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		MessageId:    uuid.NewString(),
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", p.Queue, false, false, pub); err != nil {
		log.Warn().Err(err).Msg("rabbitmq: publish failed")
		return err
	}
	return nil
}
