// Package events publishes order lifecycle messages to RabbitMQ so
// downstream consumers (fulfilment, notifications) stay decoupled.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/streadway/amqp"
)

const (
	TopicOrderCreated   = "order.created"
	TopicPaymentUpdated = "payment.updated"
)

type Publisher interface {
	Publish(ctx context.Context, topic string, data interface{}) error
	Close()
}

type amqpPublisher struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
}

func NewPublisher(amqpURL, exchange string) (Publisher, error) {
	conn, err := amqp.Dial(amqpURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if err := channel.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	return &amqpPublisher{conn: conn, channel: channel, exchange: exchange}, nil
}

func (p *amqpPublisher) Publish(ctx context.Context, topic string, data interface{}) error {
	body, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	err = p.channel.Publish(p.exchange, topic, false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        body,
	})
	if err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}
	return nil
}

func (p *amqpPublisher) Close() {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		p.conn.Close()
	}
}

// NopPublisher is used when RabbitMQ is not configured; events are logged
// and dropped.
type NopPublisher struct{}

func (NopPublisher) Publish(_ context.Context, topic string, _ interface{}) error {
	log.Printf("events: no broker configured, dropping %s", topic)
	return nil
}

func (NopPublisher) Close() {}
