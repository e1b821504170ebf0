package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

// Publisher sends listing events to downstream consumers.
type Publisher interface {
	Publish(ctx context.Context, ev ListingEvent) error
}

// NopPublisher discards events; used when the broker is disabled.
type NopPublisher struct{}

// Publish does nothing.
func (NopPublisher) Publish(context.Context, ListingEvent) error { return nil }

// AMQPPublisher publishes each event as a persistent JSON message on a
// durable queue via the default exchange.  A connection is opened per
// publish; listing changes are rare enough that pooling is not worth it.
type AMQPPublisher struct {
	url         string
	queue       string
	dialTimeout time.Duration
	log         zerolog.Logger
}

// NewAMQPPublisher returns a publisher for the given broker URL and queue.
func NewAMQPPublisher(url, queue string, log zerolog.Logger) *AMQPPublisher {
	return &AMQPPublisher{url: url, queue: queue, dialTimeout: 3 * time.Second, log: log}
}

// Publish delivers ev.  Errors are logged and returned so the caller can
// choose to ignore them.
func (p *AMQPPublisher) Publish(ctx context.Context, ev ListingEvent) error {
	if err := p.publish(ctx, ev); err != nil {
		p.log.Warn().Err(err).Str("entity", ev.Entity).Str("kind", ev.Kind).Uint64("id", ev.ID).
			Msg("rabbitmq: publish listing event failed")
		return err
	}
	return nil
}

func (p *AMQPPublisher) publish(ctx context.Context, ev ListingEvent) error {
	conn, err := amqp.DialConfig(p.url, amqp.Config{Dial: amqp.DefaultDial(p.dialTimeout)})
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if _, err := declare(ch, p.queue); err != nil {
		return err
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Type:         ev.Entity + "." + ev.Kind,
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", p.queue, false, false, pub); err != nil {
		return fmt.Errorf("publish: %w", err)
	}
	return nil
}

// declare ensures the durable queue exists.  Declaring is idempotent.
func declare(ch *amqp.Channel, name string) (amqp.Queue, error) {
	q, err := ch.QueueDeclare(name, true, false, false, false, nil)
	if err != nil {
		return q, fmt.Errorf("queue declare: %w", err)
	}
	return q, nil
}

var (
	_ Publisher = NopPublisher{}
	_ Publisher = (*AMQPPublisher)(nil)
)
