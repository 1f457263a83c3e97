package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/polkiloo/storefront/internal/domain/model"
)

// message is the JSON body put on the queue.
type message struct {
	Type        string    `json:"type"`
	OrderID     int64     `json:"order_id,omitempty"`
	OrderNumber string    `json:"order_number,omitempty"`
	ReturnID    int64     `json:"return_id,omitempty"`
	UserID      int64     `json:"user_id"`
	Status      string    `json:"status"`
	Amount      string    `json:"amount"`
	OccurredAt  time.Time `json:"occurred_at"`
}

func newMessage(event model.Event) message {
	return message{
		Type:        string(event.Type),
		OrderID:     event.OrderID,
		OrderNumber: event.OrderNumber,
		ReturnID:    event.ReturnID,
		UserID:      event.UserID,
		Status:      event.Status,
		Amount:      event.Amount.StringFixed(2),
		OccurredAt:  event.OccurredAt.UTC(),
	}
}

// Publisher sends events to a durable queue on the default exchange.
type Publisher struct {
	pool   *ChannelPool
	queue  string
	logger *slog.Logger
}

func NewPublisher(pool *ChannelPool, queue string, logger *slog.Logger) *Publisher {
	return &Publisher{pool: pool, queue: queue, logger: logger}
}

// Publish marshals event and publishes it as a persistent message.
func (p *Publisher) Publish(ctx context.Context, event model.Event) error {
	body, err := json.Marshal(newMessage(event))
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	ch, err := p.pool.Get(ctx)
	if err != nil {
		return fmt.Errorf("get channel: %w", err)
	}
	defer p.pool.Put(ch)

	err = ch.PublishWithContext(ctx, "", p.queue, false, false, amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		ContentType:  "application/json",
		Type:         string(event.Type),
		Timestamp:    event.OccurredAt,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish %s: %w", event.Type, err)
	}

	p.logger.Debug("event published", slog.String("type", string(event.Type)), slog.Int64("order_id", event.OrderID))
	return nil
}

// LogPublisher writes events to the log when no broker is configured.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(_ context.Context, event model.Event) error {
	m := newMessage(event)
	p.logger.Info("event",
		slog.String("type", m.Type),
		slog.Int64("order_id", m.OrderID),
		slog.String("order_number", m.OrderNumber),
		slog.Int64("return_id", m.ReturnID),
		slog.Int64("user_id", m.UserID),
		slog.String("status", m.Status),
		slog.String("amount", m.Amount),
	)
	return nil
}
