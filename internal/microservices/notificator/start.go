package notificator

import (
	"context"
	"errors"
	"fmt"

	"restaurant-system/internal/common/logger"
	"restaurant-system/internal/connections/rabbitmq"
	"restaurant-system/internal/microservices/order/events"
)

const consumerTag = "notificator"

// acknowledger is satisfied by amqp091.Delivery.
type acknowledger interface {
	Ack(multiple bool) error
	Nack(multiple, requeue bool) error
}

// Run consumes order events and logs a notification for each one until
// ctx is canceled or the delivery channel closes.
func Run(ctx context.Context, client *rabbitmq.Client, lg *logger.Logger) error {
	if err := client.DeclareTopology(); err != nil {
		return err
	}
	msgs, err := client.Consume(rabbitmq.NotificationsQueue, consumerTag, 10)
	if err != nil {
		return fmt.Errorf("consume %s: %w", rabbitmq.NotificationsQueue, err)
	}
	lg.Info("notificator_consuming", map[string]any{"queue": rabbitmq.NotificationsQueue})

	for {
		select {
		case <-ctx.Done():
			_ = client.Cancel(consumerTag)
			lg.Info("graceful_shutdown", nil)
			return nil
		case d, ok := <-msgs:
			if !ok {
				return errors.New("delivery channel closed")
			}
			handle(lg, d.Body, d)
		}
	}
}

// handle acks a well-formed event after logging it; malformed bodies are
// dropped without requeue.
func handle(lg *logger.Logger, body []byte, ack acknowledger) {
	ev, err := events.Decode(body)
	if err != nil {
		lg.Error("notification_malformed", err, map[string]any{"body": string(body)})
		_ = ack.Nack(false, false)
		return
	}
	fields := map[string]any{
		"event_type": ev.EventType,
		"order_id":   ev.OrderID,
		"status":     ev.Status,
	}
	if ev.CustomerID != 0 {
		fields["customer_id"] = ev.CustomerID
	}
	if ev.StaffID != nil {
		fields["staff_id"] = *ev.StaffID
	}
	lg.Info("notification_sent", fields)
	_ = ack.Ack(false)
}
