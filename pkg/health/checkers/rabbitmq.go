package checkers

import (
	"context"
	"errors"
)

// Broker is anything that can report whether its connection is gone.
// Satisfied by tasks.Publisher.
type Broker interface {
	IsClosed() bool
}

type RabbitMQChecker struct {
	broker Broker
}

func NewRabbitMQChecker(broker Broker) *RabbitMQChecker {
	return &RabbitMQChecker{broker: broker}
}

func (c *RabbitMQChecker) Name() string { return "rabbitmq" }

func (c *RabbitMQChecker) Check(ctx context.Context) error {
	if c.broker == nil || c.broker.IsClosed() {
		return errors.New("connection closed")
	}
	return nil
}
