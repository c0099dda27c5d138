package rabbitmq

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/url"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"restaurant-system/internal/config"
)

const (
	OrdersExchange     = "orders_topic"
	NotificationsQueue = "notifications.q"
	NotificationsKey   = "order.*"
)

type Client struct {
	conn *amqp.Connection
	ch   *amqp.Channel

	confirms confirmSource
}

// confirmation resolves to the broker's ack (true) or nack (false) for a
// single delivery tag.
type confirmation interface {
	WaitContext(ctx context.Context) (bool, error)
}

type confirmSource interface {
	publish(ctx context.Context, exchange, key string, msg amqp.Publishing) (confirmation, error)
}

// channelConfirms publishes on a channel in confirm mode. Every publish gets
// its own deferred confirmation, so a confirm that arrives after its caller
// gave up is never seen by a later publish.
type channelConfirms struct {
	ch *amqp.Channel
}

func (cc channelConfirms) publish(ctx context.Context, exchange, key string, msg amqp.Publishing) (confirmation, error) {
	dc, err := cc.ch.PublishWithDeferredConfirmWithContext(ctx, exchange, key, false, false, msg)
	if err != nil {
		return nil, err
	}
	if dc == nil {
		return nil, errors.New("rabbitmq channel is not in confirm mode")
	}
	return dc, nil
}

func (c *Client) Channel() *amqp.Channel { return c.ch }

func (c *Client) Close() {
	if c == nil {
		return
	}
	if c.ch != nil {
		_ = c.ch.Close()
	}
	if c.conn != nil {
		_ = c.conn.Close()
	}
}

func URL(cfg config.RabbitMQConfig) string {
	scheme := "amqp"
	if cfg.UseTLS {
		scheme = "amqps"
	}
	vhost := cfg.VHost
	if vhost == "" {
		vhost = "/"
	}
	u := url.URL{
		Scheme:  scheme,
		User:    url.UserPassword(cfg.User, cfg.Password),
		Host:    fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Path:    "/" + vhost,
		RawPath: "/" + url.PathEscape(vhost),
	}
	return u.String()
}

func Dial(cfg config.RabbitMQConfig) (*Client, error) {
	var (
		conn *amqp.Connection
		err  error
	)
	if cfg.UseTLS {
		conn, err = amqp.DialTLS(URL(cfg), &tls.Config{MinVersion: tls.VersionTLS12})
	} else {
		conn, err = amqp.Dial(URL(cfg))
	}
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	if err := ch.Confirm(false); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}

	return &Client{conn: conn, ch: ch, confirms: channelConfirms{ch: ch}}, nil
}

func (c *Client) Ping() error {
	if c.conn == nil || c.conn.IsClosed() {
		return errors.New("rabbitmq connection is closed")
	}
	return nil
}

// DeclareTopology is idempotent: the order exchange and the notification
// queue bound to every order event.
func (c *Client) DeclareTopology() error {
	if err := c.ch.ExchangeDeclare(OrdersExchange, "topic", true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare %s: %w", OrdersExchange, err)
	}
	if _, err := c.ch.QueueDeclare(NotificationsQueue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare %s: %w", NotificationsQueue, err)
	}
	if err := c.ch.QueueBind(NotificationsQueue, NotificationsKey, OrdersExchange, false, nil); err != nil {
		return fmt.Errorf("bind %s: %w", NotificationsQueue, err)
	}
	return nil
}

// Publish sends a message and waits for the broker's ack or nack of that
// message. Concurrent publishes are safe.
func (c *Client) Publish(ctx context.Context, exchange, key string, msg amqp.Publishing) error {
	if c.confirms == nil {
		return errors.New("rabbitmq connection is closed")
	}
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now().UTC()
	}
	conf, err := c.confirms.publish(ctx, exchange, key, msg)
	if err != nil {
		return err
	}

	acked, err := conf.WaitContext(ctx)
	if err != nil {
		return err
	}
	if !acked {
		return errors.New("publish NACK from broker")
	}
	return nil
}

// Consume starts a manually acknowledged consumer. Consuming on a channel
// in confirm mode is fine; publishes and deliveries do not interfere.
func (c *Client) Consume(queue, consumer string, prefetch int) (<-chan amqp.Delivery, error) {
	if err := c.ch.Qos(prefetch, 0, false); err != nil {
		return nil, err
	}
	return c.ch.Consume(queue, consumer, false, false, false, false, nil)
}

func (c *Client) Cancel(consumer string) error {
	return c.ch.Cancel(consumer, false)
}
