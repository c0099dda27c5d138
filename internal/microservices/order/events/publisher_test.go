package events

import (
	"context"
	"errors"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	exchange, key string
	msg           amqp.Publishing
	err           error
}

func (f *fakeClient) Publish(_ context.Context, exchange, key string, msg amqp.Publishing) error {
	f.exchange, f.key, f.msg = exchange, key, msg
	return f.err
}

func TestRabbitPublisher_RoutesByEventType(t *testing.T) {
	fc := &fakeClient{}
	p := &RabbitPublisher{client: fc, exchange: "orders_topic"}
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	err := p.Publish(context.Background(), OrderEvent{
		EventType: TypeOrderCreated, OrderID: 42, CustomerID: 1, Status: "in progress", ItemCount: 2, OccurredAt: at,
	})
	require.NoError(t, err)

	assert.Equal(t, "orders_topic", fc.exchange)
	assert.Equal(t, "order.created", fc.key)
	assert.Equal(t, "42", fc.msg.CorrelationId)
	assert.Equal(t, amqp.Persistent, fc.msg.DeliveryMode)
	assert.NotEmpty(t, fc.msg.MessageId)

	ev, err := Decode(fc.msg.Body)
	require.NoError(t, err)
	assert.Equal(t, int64(42), ev.OrderID)
	assert.Equal(t, 2, ev.ItemCount)
	assert.True(t, at.Equal(ev.OccurredAt))
}

func TestRabbitPublisher_WrapsBrokerError(t *testing.T) {
	p := &RabbitPublisher{client: &fakeClient{err: errors.New("publish NACK from broker")}, exchange: "orders_topic"}

	err := p.Publish(context.Background(), OrderEvent{EventType: TypeOrderStatusChanged, OrderID: 9})
	assert.ErrorContains(t, err, "failed to publish order.status_changed for order 9")
}

func TestDecode_Rejects(t *testing.T) {
	_, err := Decode([]byte("not json"))
	assert.Error(t, err)

	_, err = Decode([]byte(`{"status":"ready"}`))
	assert.ErrorContains(t, err, "missing event_type or order_id")
}
