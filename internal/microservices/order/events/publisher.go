package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"restaurant-system/internal/connections/rabbitmq"
)

const (
	TypeOrderCreated       = "order.created"
	TypeOrderStatusChanged = "order.status_changed"
)

// OrderEvent is the message body published for every order change.
type OrderEvent struct {
	EventType  string    `json:"event_type"`
	OrderID    int64     `json:"order_id"`
	CustomerID int64     `json:"customer_id,omitempty"`
	Status     string    `json:"status"`
	StaffID    *int64    `json:"staff_id,omitempty"`
	ItemCount  int       `json:"item_count,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

type Publisher interface {
	Publish(ctx context.Context, ev OrderEvent) error
}

// NopPublisher is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, OrderEvent) error { return nil }

type confirmPublisher interface {
	Publish(ctx context.Context, exchange, key string, msg amqp.Publishing) error
}

type RabbitPublisher struct {
	client   confirmPublisher
	exchange string
}

func NewRabbitPublisher(client *rabbitmq.Client) *RabbitPublisher {
	return &RabbitPublisher{client: client, exchange: rabbitmq.OrdersExchange}
}

// Publish routes the event by its type, e.g. "order.created".
func (p *RabbitPublisher) Publish(ctx context.Context, ev OrderEvent) error {
	msg, err := Encode(ev)
	if err != nil {
		return err
	}
	if err := p.client.Publish(ctx, p.exchange, ev.EventType, msg); err != nil {
		return fmt.Errorf("failed to publish %s for order %d: %w", ev.EventType, ev.OrderID, err)
	}
	return nil
}

func Encode(ev OrderEvent) (amqp.Publishing, error) {
	body, err := json.Marshal(ev)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("failed to marshal order event: %w", err)
	}
	return amqp.Publishing{
		DeliveryMode:  amqp.Persistent,
		ContentType:   "application/json",
		MessageId:     uuid.NewString(),
		CorrelationId: strconv.FormatInt(ev.OrderID, 10),
		Timestamp:     ev.OccurredAt,
		Type:          ev.EventType,
		Headers: amqp.Table{
			"x-source": "order-service",
		},
		Body: body,
	}, nil
}

func Decode(body []byte) (OrderEvent, error) {
	var ev OrderEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return OrderEvent{}, fmt.Errorf("failed to decode order event: %w", err)
	}
	if ev.EventType == "" || ev.OrderID == 0 {
		return OrderEvent{}, errors.New("order event missing event_type or order_id")
	}
	return ev, nil
}
