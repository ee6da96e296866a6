package events

import (
	"context"
	"fmt"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"
)

// HandlerFunc processes one delivery. Returning an error NACKs the message so
// the broker's redelivery policy applies; returning nil ACKs it.
type HandlerFunc func(ctx context.Context, body []byte) error

// StartStockDecrementConsumer consumes the decrement work queue and feeds each
// message to the handler. It returns once the consumer goroutine is running.
func StartStockDecrementConsumer(ctx context.Context, conn *amqp.Connection, handler HandlerFunc, logger *log.Logger) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("open channel: %w", err)
	}

	if err := declareStockDecrementQueue(ch); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}

	msgs, err := ch.Consume(
		StockDecrementQueue,
		"catalog-service", // consumer tag
		false,             // autoAck
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("consume: %w", err)
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				logger.Printf("stopping %s consumer", StockDecrementQueue)
				return
			case msg, ok := <-msgs:
				if !ok {
					logger.Println("messages channel closed")
					return
				}

				if err := handler(ctx, msg.Body); err != nil {
					logger.Printf("handle message error: %v", err)
					_ = msg.Nack(false, false)
					continue
				}
				_ = msg.Ack(false)
			}
		}
	}()

	return nil
}
