package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"campustix/internal/ports/output"
)

var _ output.Publisher = (*Broker)(nil)

// Broker publishes JSON notifications on a topic exchange, one routing key
// per output.Topic* constant.
type Broker struct {
	mu       sync.Mutex
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	url      string
}

func NewBroker(rabbitMQURL, exchange string) (*Broker, error) {
	b := &Broker{exchange: exchange, url: rabbitMQURL}
	if err := b.connect(); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Broker) connect() error {
	conn, err := amqp.Dial(b.url)
	if err != nil {
		return fmt.Errorf("connect to RabbitMQ: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return fmt.Errorf("open channel: %w", err)
	}
	err = ch.ExchangeDeclare(
		b.exchange,
		amqp.ExchangeTopic,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return fmt.Errorf("declare exchange %s: %w", b.exchange, err)
	}
	b.conn = conn
	b.channel = ch
	return nil
}

func (b *Broker) ensureConnection() error {
	if b.conn == nil || b.conn.IsClosed() || b.channel == nil || b.channel.IsClosed() {
		log.Println("⚠️ Reconnexion à RabbitMQ")
		return b.connect()
	}
	return nil
}

func (b *Broker) Publish(ctx context.Context, topic string, message any) error {
	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("marshal %s message: %w", topic, err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.ensureConnection(); err != nil {
		return err
	}
	err = b.channel.PublishWithContext(ctx,
		b.exchange,
		topic,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}
	return nil
}

func (b *Broker) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.channel != nil {
		b.channel.Close()
	}
	if b.conn != nil {
		return b.conn.Close()
	}
	return nil
}
