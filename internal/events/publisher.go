package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/ecomkit/shop/internal/contracts"
)

// Publisher pushes stock events onto RabbitMQ. Catalog-owned events go to the
// product.events topic exchange; decrement events go straight to the
// reconciler's work queue. All publishes are persistent and at-least-once.
type Publisher struct {
	ch *amqp.Channel
}

func NewPublisher(conn *amqp.Connection) (*Publisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if err := declareProductEventsExchange(ch); err != nil {
		return nil, fmt.Errorf("declare %s exchange: %w", ProductEventsExchange, err)
	}

	// Declare the work queue so publish never fails due to missing infra.
	if err := declareStockDecrementQueue(ch); err != nil {
		return nil, fmt.Errorf("declare %s: %w", StockDecrementQueue, err)
	}

	return &Publisher{ch: ch}, nil
}

func (p *Publisher) Close() error {
	return p.ch.Close()
}

func (p *Publisher) PublishStockCreated(ctx context.Context, ev contracts.StockCreated) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal StockCreated: %w", err)
	}
	return p.publishJSON(ctx, ProductEventsExchange, ProductCreatedRoutingKey, body)
}

func (p *Publisher) PublishStockUpdated(ctx context.Context, ev contracts.StockUpdated) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal StockUpdated: %w", err)
	}
	return p.publishJSON(ctx, ProductEventsExchange, ProductUpdatedRoutingKey, body)
}

func (p *Publisher) PublishStockDecremented(ctx context.Context, ev contracts.StockDecremented) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal StockDecremented: %w", err)
	}
	// Default exchange, queue name as routing key.
	return p.publishJSON(ctx, "", StockDecrementQueue, body)
}

func (p *Publisher) publishJSON(ctx context.Context, exchange, routingKey string, body []byte) error {
	pubCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return p.ch.PublishWithContext(
		pubCtx,
		exchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
}
