package notify

import (
	"context"
	"errors"
	"strings"

	"cloud.google.com/go/pubsub"
	"github.com/webfolio/apiserver/config"
	"google.golang.org/api/option"
)

// PubSubBroker publishes and consumes on a single Google Pub/Sub topic.
type PubSubBroker struct {
	client       *pubsub.Client
	topic        string
	subscription string
}

// NewPubSubBroker constructs a Pub/Sub broker bound to the configured topic.
func NewPubSubBroker(ctx context.Context, cfg config.MQConfig) (*PubSubBroker, error) {
	if strings.TrimSpace(cfg.PubSub.ProjectID) == "" {
		return nil, errors.New("pubsub project id is required")
	}
	if strings.TrimSpace(cfg.Topic) == "" {
		return nil, errors.New("mq topic is required")
	}

	var opts []option.ClientOption
	if strings.TrimSpace(cfg.PubSub.CredentialsFile) != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.PubSub.CredentialsFile))
	}

	client, err := pubsub.NewClient(ctx, cfg.PubSub.ProjectID, opts...)
	if err != nil {
		return nil, err
	}

	subscription := cfg.PubSub.SubscriptionID
	if subscription == "" {
		subscription = cfg.Topic + "-sub"
	}

	return &PubSubBroker{
		client:       client,
		topic:        cfg.Topic,
		subscription: subscription,
	}, nil
}

// Publish sends a message to the bound topic.
func (p *PubSubBroker) Publish(ctx context.Context, data []byte, attrs map[string]string) (string, error) {
	topic, err := p.ensureTopic(ctx)
	if err != nil {
		return "", err
	}
	result := topic.Publish(ctx, &pubsub.Message{Data: data, Attributes: attrs})
	return result.Get(ctx)
}

// Subscribe consumes messages from the bound subscription until ctx is
// canceled.
func (p *PubSubBroker) Subscribe(ctx context.Context, handler func(ctx context.Context, id string, data []byte) error) error {
	topic, err := p.ensureTopic(ctx)
	if err != nil {
		return err
	}

	sub, err := p.ensureSubscription(ctx, topic)
	if err != nil {
		return err
	}

	return sub.Receive(ctx, func(ctx context.Context, msg *pubsub.Message) {
		if err := handler(ctx, msg.ID, msg.Data); err != nil {
			msg.Nack()
			return
		}
		msg.Ack()
	})
}

// Close closes the underlying Pub/Sub client.
func (p *PubSubBroker) Close() error {
	return p.client.Close()
}

func (p *PubSubBroker) ensureTopic(ctx context.Context) (*pubsub.Topic, error) {
	topic := p.client.Topic(p.topic)
	exists, err := topic.Exists(ctx)
	if err != nil {
		return nil, err
	}
	if !exists {
		return p.client.CreateTopic(ctx, p.topic)
	}
	return topic, nil
}

func (p *PubSubBroker) ensureSubscription(ctx context.Context, topic *pubsub.Topic) (*pubsub.Subscription, error) {
	sub := p.client.Subscription(p.subscription)
	exists, err := sub.Exists(ctx)
	if err != nil {
		return nil, err
	}
	if !exists {
		return p.client.CreateSubscription(ctx, p.subscription, pubsub.SubscriptionConfig{Topic: topic})
	}
	return sub, nil
}
