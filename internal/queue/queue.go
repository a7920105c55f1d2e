package queue

import (
	"context"
	"encoding/json"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/karlos-perez/hundred-to-one/internal/game"
	"github.com/karlos-perez/hundred-to-one/pkg/logger"
)

// Queue decouples the chat listener from the game engine through a
// durable broker. The listener publishes normalized events; a single
// consumer feeds them to the engine, preserving the one-at-a-time
// processing the engine relies on.
type Queue struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	name    string
}

// Connect dials the broker and declares the event queue.
func Connect(url, name string) (*Queue, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}
	if _, err := ch.QueueDeclare(name, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}
	logger.Info("Connected to message broker", "queue", name)
	return &Queue{conn: conn, channel: ch, name: name}, nil
}

// Publish enqueues one event as a persistent JSON message.
func (q *Queue) Publish(ctx context.Context, ev game.Event) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return q.channel.PublishWithContext(ctx, "", q.name, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
}

// Consume feeds queued events to the engine until the context is
// cancelled. Undecodable messages are rejected without requeue so a
// poison message cannot wedge the stream.
func (q *Queue) Consume(ctx context.Context, engine *game.Engine) error {
	deliveries, err := q.channel.Consume(q.name, "", false, false, false, false, nil)
	if err != nil {
		return err
	}
	logger.Info("Consuming game events", "queue", q.name)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-deliveries:
			if !ok {
				return amqp.ErrClosed
			}
			var ev game.Event
			if err := json.Unmarshal(d.Body, &ev); err != nil {
				logger.Error("Dropping undecodable message", "error", err)
				_ = d.Reject(false)
				continue
			}
			engine.Handle(ev)
			_ = d.Ack(false)
		}
	}
}

func (q *Queue) Close() {
	if q.channel != nil {
		_ = q.channel.Close()
	}
	if q.conn != nil {
		_ = q.conn.Close()
	}
}
