// Package queue_publisher publishes auth domain events to RabbitMQ.
// Errors are logged and returned so callers can ignore failures without
// interrupting the main request flow.
package queue_publisher

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	q "github.com/scalexlabs/marketing-dashboard/internal/queue"
)

// Publisher dials the broker per publish; there is no long-lived channel to
// manage. When URL is empty every publish is a silent no-op so deployments
// without a broker keep working.
type Publisher struct {
	URL string
}

// NewPublisherFromEnv reads RABBITMQ_URL (or AMQP_URL) from the environment.
func NewPublisherFromEnv() *Publisher {
	url := os.Getenv("RABBITMQ_URL")
	if url == "" {
		url = os.Getenv("AMQP_URL")
	}
	return &Publisher{URL: url}
}

// UserRegistered publishes to the "user.registered" queue.
func (p *Publisher) UserRegistered(ctx context.Context, ev q.UserRegisteredEvent) error {
	return p.publish(ctx, "user.registered", ev)
}

// UserLoggedIn publishes to the "user.logged_in" queue.
func (p *Publisher) UserLoggedIn(ctx context.Context, ev q.UserLoggedInEvent) error {
	return p.publish(ctx, "user.logged_in", ev)
}

func (p *Publisher) publish(ctx context.Context, queueName string, payload any) error {
	if p == nil || p.URL == "" {
		return nil
	}
	conn, err := amqp.Dial(p.URL)
	if err != nil {
		log.Printf("rabbitmq: dial failed: %v", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Printf("rabbitmq: channel open failed: %v", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	// Ensure the queue exists (idempotent). Durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(
		queueName, // name
		true,      // durable
		false,     // autoDelete
		false,     // exclusive
		false,     // noWait
		nil,       // args
	); err != nil {
		log.Printf("rabbitmq: queue declare failed: %v", err)
		return err
	}

	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("rabbitmq: marshal event failed: %v", err)
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := ch.PublishWithContext(ctx,
		"",        // default exchange
		queueName, // routing key = queue name
		false,     // mandatory
		false,     // immediate
		pub,
	); err != nil {
		log.Printf("rabbitmq: publish failed: %v", err)
		return err
	}
	return nil
}
