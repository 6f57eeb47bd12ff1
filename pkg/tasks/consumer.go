package tasks

import (
	"context"
	"errors"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/artem13815/jobboard/pkg/logging"
)

// HandlerFunc executes one task. A returned error makes the consumer nack the
// delivery so the broker's redelivery policy applies; handlers that want to
// swallow a failure log it and return nil.
type HandlerFunc func(ctx context.Context, m Message) error

// Consumer pulls task messages off the queue and routes them by task name.
type Consumer struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	queue    string
	handlers map[string]HandlerFunc
	log      *logging.Logger
}

func NewConsumer(uri, queue string, log *logging.Logger) (*Consumer, error) {
	conn, err := amqp.Dial(uri)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	if _, err := declareQueue(ch, queue); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}
	// One unacked task at a time keeps redelivery ordering simple.
	if err := ch.Qos(1, 0, false); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}
	return &Consumer{
		conn:     conn,
		ch:       ch,
		queue:    queue,
		handlers: map[string]HandlerFunc{},
		log:      log,
	}, nil
}

func (c *Consumer) Register(task string, h HandlerFunc) {
	c.handlers[task] = h
}

// Run consumes until the context is cancelled or the channel closes.
func (c *Consumer) Run(ctx context.Context) error {
	deliveries, err := c.ch.Consume(
		c.queue,
		"",    // consumer tag
		false, // manual ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-deliveries:
			if !ok {
				return errors.New("delivery channel closed")
			}
			c.handle(ctx, d)
		}
	}
}

func (c *Consumer) handle(ctx context.Context, d amqp.Delivery) {
	m, err := DecodeMessage(d.Body)
	if err != nil {
		c.log.Error("task message not decodable, dropping", "err", err)
		_ = d.Ack(false)
		return
	}
	h, ok := c.handlers[m.Task]
	if !ok {
		c.log.Warn("no handler for task, dropping", "task", m.Task)
		_ = d.Ack(false)
		return
	}
	if err := h(ctx, m); err != nil {
		// Requeue once; a redelivered failure goes back to the broker
		// without requeue so a poison message cannot spin the worker.
		c.log.Error("task failed", "task", m.Task, "id", m.ID, "redelivered", d.Redelivered, "err", err)
		_ = d.Nack(false, !d.Redelivered)
		return
	}
	_ = d.Ack(false)
}

func (c *Consumer) Close() error {
	var errCh, errConn error
	if c.ch != nil {
		errCh = c.ch.Close()
	}
	if c.conn != nil {
		errConn = c.conn.Close()
	}
	return errors.Join(errCh, errConn)
}

// IsClosed reports broker connectivity for readiness checks.
func (c *Consumer) IsClosed() bool {
	return c.conn == nil || c.conn.IsClosed()
}
