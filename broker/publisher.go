package broker

import (
	"context"
	"encoding/json"
	"event_ticketing/config"
	"event_ticketing/model"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2/log"
	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher delivers domain events to downstream consumers.
type Publisher interface {
	Publish(ctx context.Context, evt model.DomainEvent) error
	Close() error
}

// NewPublisher connects to RabbitMQ when a URL is configured and falls back to a
// no-op publisher otherwise.
func NewPublisher(cfg config.BrokerConfig) (Publisher, error) {
	if cfg.URL == "" {
		log.Info("RABBITMQ_URL not set, domain events will not be published")
		return NoopPublisher{}, nil
	}
	return NewAMQPPublisher(cfg.URL, cfg.Exchange)
}

type AMQPPublisher struct {
	mu       sync.Mutex
	url      string
	exchange string
	conn     *amqp.Connection
	channel  *amqp.Channel
}

func NewAMQPPublisher(url, exchange string) (*AMQPPublisher, error) {
	p := &AMQPPublisher{url: url, exchange: exchange}
	if err := p.connect(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *AMQPPublisher) connect() error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		log.Errorf("Failed to connect to RabbitMQ: %v", err)
		return err
	}

	ch, err := conn.Channel()
	if err != nil {
		log.Errorf("Failed to open channel: %v", err)
		conn.Close()
		return err
	}

	err = ch.ExchangeDeclare(
		p.exchange,
		"topic",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		log.Errorf("Failed to declare exchange %s: %v", p.exchange, err)
		ch.Close()
		conn.Close()
		return err
	}

	p.conn = conn
	p.channel = ch
	return nil
}

func (p *AMQPPublisher) ensureConnection() error {
	if p.conn == nil || p.conn.IsClosed() || p.channel == nil || p.channel.IsClosed() {
		return p.connect()
	}
	return nil
}

// Publish sends evt to the exchange using its type as the routing key.
func (p *AMQPPublisher) Publish(ctx context.Context, evt model.DomainEvent) error {
	body, err := json.Marshal(evt)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.ensureConnection(); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return p.channel.PublishWithContext(ctx,
		p.exchange,
		evt.Type,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    evt.OccurredAt,
			Body:         body,
		},
	)
}

func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, model.DomainEvent) error { return nil }

func (NoopPublisher) Close() error { return nil }
