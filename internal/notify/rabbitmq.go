package notify

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/rabbitmq/amqp091-go"
	"github.com/webfolio/apiserver/config"
)

// RabbitMQBroker publishes and consumes on a single RabbitMQ queue.
type RabbitMQBroker struct {
	conn            *amqp091.Connection
	channel         *amqp091.Channel
	queue           string
	queueDurable    bool
	queueAutoDelete bool
}

// NewRabbitMQBroker connects to RabbitMQ and binds the broker to the
// configured topic queue.
func NewRabbitMQBroker(cfg config.MQConfig) (*RabbitMQBroker, error) {
	if strings.TrimSpace(cfg.RabbitMQ.URL) == "" {
		return nil, errors.New("rabbitmq url is required")
	}
	if strings.TrimSpace(cfg.Topic) == "" {
		return nil, errors.New("mq topic is required")
	}

	conn, err := amqp091.Dial(cfg.RabbitMQ.URL)
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	if cfg.RabbitMQ.PrefetchCount > 0 {
		if err := ch.Qos(cfg.RabbitMQ.PrefetchCount, 0, false); err != nil {
			_ = ch.Close()
			_ = conn.Close()
			return nil, err
		}
	}

	broker := &RabbitMQBroker{
		conn:            conn,
		channel:         ch,
		queue:           cfg.Topic,
		queueDurable:    cfg.RabbitMQ.QueueDurable,
		queueAutoDelete: cfg.RabbitMQ.QueueAutoDelete,
	}
	if _, err := broker.declareQueue(); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}
	return broker, nil
}

// Publish sends a message to the bound queue.
func (r *RabbitMQBroker) Publish(ctx context.Context, data []byte, attrs map[string]string) (string, error) {
	headers := amqp091.Table{}
	for key, value := range attrs {
		headers[key] = value
	}

	messageID := newMessageID()
	err := r.channel.PublishWithContext(ctx, "", r.queue, false, false, amqp091.Publishing{
		ContentType: "application/json",
		MessageId:   messageID,
		Headers:     headers,
		Body:        data,
	})
	if err != nil {
		return "", err
	}
	return messageID, nil
}

// Subscribe consumes messages from the bound queue until ctx is canceled.
func (r *RabbitMQBroker) Subscribe(ctx context.Context, handler func(ctx context.Context, id string, data []byte) error) error {
	consumerTag := fmt.Sprintf("consumer-%s", newMessageID())
	deliveries, err := r.channel.Consume(r.queue, consumerTag, false, false, false, false, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = r.channel.Cancel(consumerTag, false)
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case delivery, ok := <-deliveries:
			if !ok {
				return errors.New("rabbitmq delivery channel closed")
			}
			if err := handler(ctx, delivery.MessageId, delivery.Body); err != nil {
				_ = delivery.Nack(false, true)
				continue
			}
			_ = delivery.Ack(false)
		}
	}
}

// Close closes the underlying channel and connection.
func (r *RabbitMQBroker) Close() error {
	if r.channel != nil {
		_ = r.channel.Close()
	}
	if r.conn != nil {
		return r.conn.Close()
	}
	return nil
}

func (r *RabbitMQBroker) declareQueue() (amqp091.Queue, error) {
	return r.channel.QueueDeclare(
		r.queue,
		r.queueDurable,
		r.queueAutoDelete,
		false,
		false,
		nil,
	)
}

func newMessageID() string {
	var buf [16]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return ""
	}
	return hex.EncodeToString(buf[:])
}
