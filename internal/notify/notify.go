package notify

import (
	"context"
	"encoding/json"

	"github.com/webfolio/apiserver/types"
)

// Handler processes a delivered contact message. Return an error to
// signal a retry/nack.
type Handler func(ctx context.Context, msg types.ContactMessage) error

// Broker defines the broker-agnostic operations for the contact
// message topic. Implementations are bound to a single topic at
// construction time.
type Broker interface {
	Publish(ctx context.Context, data []byte, attrs map[string]string) (string, error)
	Subscribe(ctx context.Context, handler func(ctx context.Context, id string, data []byte) error) error
	Close() error
}

// Notifier publishes and consumes contact message notifications over a
// Broker, handling the JSON envelope.
type Notifier struct {
	broker Broker
}

// NewNotifier constructs a Notifier for the provided broker.
func NewNotifier(broker Broker) *Notifier {
	return &Notifier{broker: broker}
}

// MessageSubmitted publishes a notification for a freshly stored
// contact message. The returned id is broker-assigned.
func (n *Notifier) MessageSubmitted(ctx context.Context, msg types.ContactMessage) (string, error) {
	data, err := json.Marshal(msg)
	if err != nil {
		return "", err
	}
	return n.broker.Publish(ctx, data, map[string]string{"sender": msg.Email})
}

// Listen consumes contact message notifications until ctx is canceled.
func (n *Notifier) Listen(ctx context.Context, handler Handler) error {
	return n.broker.Subscribe(ctx, func(ctx context.Context, id string, data []byte) error {
		var msg types.ContactMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			return err
		}
		return handler(ctx, msg)
	})
}

// Close closes the underlying broker.
func (n *Notifier) Close() error {
	return n.broker.Close()
}
