// Package events publishes order lifecycle events to RabbitMQ.
package events

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/streadway/amqp"

	"github.com/aurelia-labs/velora-api/models"
)

const exchange = "orders.exchange"

// Publisher is nil-safe: a nil publisher drops events silently so that
// messaging stays best-effort.
type Publisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

type message struct {
	EventID    string      `json:"event_id"`
	Pattern    string      `json:"pattern"`
	OccurredAt time.Time   `json:"occurred_at"`
	Data       interface{} `json:"data"`
}

// NewFromEnv returns nil when AMQP_URL is unset.
func NewFromEnv() *Publisher {
	url := os.Getenv("AMQP_URL")
	if url == "" {
		return nil
	}
	p, err := NewPublisher(url)
	if err != nil {
		log.Printf("rabbitmq unreachable, order events disabled: %v", err)
		return nil
	}
	return p
}

func NewPublisher(amqpURL string) (*Publisher, error) {
	conn, err := amqp.Dial(amqpURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %v", err)
	}
	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %v", err)
	}
	if err := channel.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %v", err)
	}
	return &Publisher{conn: conn, channel: channel}, nil
}

func (p *Publisher) publish(pattern string, data interface{}) error {
	if p == nil {
		return nil
	}
	body, err := json.Marshal(message{
		EventID:    uuid.NewString(),
		Pattern:    pattern,
		OccurredAt: time.Now().UTC(),
		Data:       data,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal message: %v", err)
	}
	return p.channel.Publish(exchange, pattern, false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        body,
	})
}

// OrderCreated emits order.created. Failures are logged, never fatal.
func (p *Publisher) OrderCreated(order *models.Order) {
	if p == nil {
		return
	}
	err := p.publish("order.created", map[string]interface{}{
		"order_id":     order.ID,
		"order_number": order.OrderNumber,
		"user_id":      order.UserID,
		"total_amount": order.TotalAmount,
		"created_at":   order.CreatedAt,
	})
	if err != nil {
		log.Printf("failed to publish order.created for %s: %v", order.OrderNumber, err)
	}
}

// OrderPaid emits order.paid after a successful payment webhook.
func (p *Publisher) OrderPaid(order *models.Order) {
	if p == nil {
		return
	}
	err := p.publish("order.paid", map[string]interface{}{
		"order_id":     order.ID,
		"order_number": order.OrderNumber,
		"payment_ref":  order.PaymentRef,
	})
	if err != nil {
		log.Printf("failed to publish order.paid for %s: %v", order.OrderNumber, err)
	}
}

func (p *Publisher) Close() {
	if p == nil {
		return
	}
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		p.conn.Close()
	}
}
