package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"github.com/sidjey-y/hellweekcoffee/internal/logger"
	"github.com/sidjey-y/hellweekcoffee/internal/models"
)

// NotificationPublisher is what the POS service needs to emit notifications.
// Callers treat publish failures as non-fatal.
type NotificationPublisher interface {
	PublishReceipt(ctx context.Context, msg *models.ReceiptMessage) error
	PublishStatusUpdate(ctx context.Context, msg *models.StatusUpdateMessage) error
}

// Publisher publishes notification messages to RabbitMQ
type Publisher struct {
	conn   *Connection
	logger *logger.Logger
}

// NewPublisher creates a new message publisher
func NewPublisher(conn *Connection, log *logger.Logger) *Publisher {
	return &Publisher{
		conn:   conn,
		logger: log,
	}
}

// PublishReceipt fans a receipt message out to notification subscribers
func (p *Publisher) PublishReceipt(ctx context.Context, msg *models.ReceiptMessage) error {
	return p.publish(ctx, msg)
}

// PublishStatusUpdate fans a status change out to notification subscribers
func (p *Publisher) PublishStatusUpdate(ctx context.Context, msg *models.StatusUpdateMessage) error {
	return p.publish(ctx, msg)
}

func (p *Publisher) publish(ctx context.Context, message interface{}) error {
	if p.conn.IsClosed() {
		if err := p.conn.Reconnect(); err != nil {
			return fmt.Errorf("failed to reconnect: %w", err)
		}
	}

	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	publishing := amqp091.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp091.Persistent,
		Timestamp:    time.Now(),
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	err = p.conn.Channel().PublishWithContext(
		ctx,
		NotificationsExchange,
		"",    // routing key ignored for fanout
		false, // mandatory
		false, // immediate
		publishing,
	)
	if err != nil {
		p.logger.Error("message_publish_failed",
			fmt.Sprintf("Failed to publish message to exchange %s", NotificationsExchange),
			"", err, nil)
		return fmt.Errorf("failed to publish message: %w", err)
	}

	p.logger.Debug("message_published",
		fmt.Sprintf("Published message to exchange %s", NotificationsExchange),
		"", map[string]interface{}{
			"message_size": len(body),
		})

	return nil
}

// Close closes the publisher
func (p *Publisher) Close() error {
	return p.conn.Close()
}
