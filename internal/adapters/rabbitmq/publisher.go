// Package rabbitmq publishes reconciled order events to a topic exchange.
package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/DanielPopoola/payorder-sdk/internal/config"
	"github.com/DanielPopoola/payorder-sdk/internal/core/domain"
	"github.com/DanielPopoola/payorder-sdk/internal/logger"
	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Publisher sends OrderEvents as JSON with the event's routing key.
type Publisher struct {
	mu       sync.Mutex
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	logger   *zap.Logger
}

func sanitizeAMQPURL(raw string) (string, error) {
	clean := strings.Trim(strings.TrimSpace(raw), "\"'")
	u, err := url.Parse(clean)
	if err != nil {
		return "", err
	}
	if u.Scheme != "amqp" && u.Scheme != "amqps" {
		return "", errors.New("broker url scheme must be amqp:// or amqps://")
	}
	if u.Path == "" {
		clean += "/"
	}
	return clean, nil
}

// NewPublisher dials the broker and declares the durable topic exchange events go to.
func NewPublisher(cfg config.BrokerConfig, l *zap.Logger) (*Publisher, error) {
	if l == nil {
		l = zap.NewNop()
	}

	cleanURL, err := sanitizeAMQPURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid broker url: %w", err)
	}

	conn, err := amqp.Dial(cleanURL)
	if err != nil {
		return nil, fmt.Errorf("dial broker: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		cfg.Exchange, // name
		"topic",      // type
		true,         // durable
		false,        // auto-deleted
		false,        // internal
		false,        // no-wait
		nil,          // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange %q: %w", cfg.Exchange, err)
	}

	return &Publisher{
		conn:     conn,
		channel:  channel,
		exchange: cfg.Exchange,
		logger:   l,
	}, nil
}

func (p *Publisher) Publish(ctx context.Context, event domain.OrderEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    uuid.NewString(),
		Timestamp:    time.Now().UTC(),
		Type:         event.RoutingKey(),
		Body:         body,
	}
	if reqID := logger.RequestIDFrom(ctx); reqID != "" {
		msg.CorrelationId = reqID
	}

	p.mu.Lock()
	err = p.channel.PublishWithContext(ctx,
		p.exchange,         // exchange
		event.RoutingKey(), // routing key
		false,              // mandatory
		false,              // immediate
		msg,
	)
	p.mu.Unlock()
	if err != nil {
		return fmt.Errorf("publish %s: %w", event.RoutingKey(), err)
	}

	logger.With(ctx, p.logger).Debug("order event published",
		zap.String("exchange", p.exchange),
		zap.String("routing_key", event.RoutingKey()),
		zap.String("message_id", msg.MessageId),
	)
	return nil
}

// Close closes the channel and the connection.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var errs []error
	if p.channel != nil {
		errs = append(errs, p.channel.Close())
	}
	if p.conn != nil {
		errs = append(errs, p.conn.Close())
	}
	return errors.Join(errs...)
}
