package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/webfolio/apiserver/internal/notify"
	"github.com/webfolio/apiserver/types"
)

type fakeContactRepo struct {
	ContactRepository
	createErr error
	nextID    int
}

func (r *fakeContactRepo) CreateMessage(ctx context.Context, msg types.ContactMessage) (types.ContactMessage, error) {
	if r.createErr != nil {
		return types.ContactMessage{}, r.createErr
	}
	r.nextID++
	msg.ID = r.nextID
	return msg, nil
}

type fakeBroker struct {
	published  [][]byte
	attrs      []map[string]string
	publishErr error
}

func (b *fakeBroker) Publish(ctx context.Context, data []byte, attrs map[string]string) (string, error) {
	if b.publishErr != nil {
		return "", b.publishErr
	}
	b.published = append(b.published, data)
	b.attrs = append(b.attrs, attrs)
	return "msg-1", nil
}

func (b *fakeBroker) Subscribe(ctx context.Context, handler func(ctx context.Context, id string, data []byte) error) error {
	return nil
}

func (b *fakeBroker) Close() error { return nil }

func TestContactService_SubmitMessagePublishes(t *testing.T) {
	t.Parallel()

	broker := &fakeBroker{}
	service := NewContactService(&fakeContactRepo{}, notify.NewNotifier(broker))

	created, err := service.SubmitMessage(context.Background(), types.ContactMessage{
		Name:    "Visitor",
		Email:   "visitor@example.com",
		Message: "hello",
	})
	if err != nil {
		t.Fatalf("SubmitMessage error: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("expected stored message to have an id")
	}

	if len(broker.published) != 1 {
		t.Fatalf("expected 1 published notification, got %d", len(broker.published))
	}
	var payload types.ContactMessage
	if err := json.Unmarshal(broker.published[0], &payload); err != nil {
		t.Fatalf("unmarshal notification: %v", err)
	}
	if payload.ID != created.ID || payload.Email != "visitor@example.com" {
		t.Fatalf("unexpected notification payload: %+v", payload)
	}
	if broker.attrs[0]["sender"] != "visitor@example.com" {
		t.Fatalf("unexpected notification attrs: %+v", broker.attrs[0])
	}
}

func TestContactService_SubmitMessagePublishFailureIsNotFatal(t *testing.T) {
	t.Parallel()

	broker := &fakeBroker{publishErr: errors.New("broker down")}
	service := NewContactService(&fakeContactRepo{}, notify.NewNotifier(broker))

	created, err := service.SubmitMessage(context.Background(), types.ContactMessage{
		Name:    "Visitor",
		Email:   "visitor@example.com",
		Message: "hello",
	})
	if err != nil {
		t.Fatalf("SubmitMessage should not fail when publish fails: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("expected stored message to have an id")
	}
}

func TestContactService_SubmitMessageWithoutNotifier(t *testing.T) {
	t.Parallel()

	service := NewContactService(&fakeContactRepo{}, nil)

	if _, err := service.SubmitMessage(context.Background(), types.ContactMessage{
		Name:    "Visitor",
		Email:   "visitor@example.com",
		Message: "hello",
	}); err != nil {
		t.Fatalf("SubmitMessage error: %v", err)
	}
}

func TestContactService_SubmitMessageStoreFailure(t *testing.T) {
	t.Parallel()

	broker := &fakeBroker{}
	repo := &fakeContactRepo{createErr: errors.New("db down")}
	service := NewContactService(repo, notify.NewNotifier(broker))

	if _, err := service.SubmitMessage(context.Background(), types.ContactMessage{}); err == nil {
		t.Fatal("expected error when store fails")
	}
	if len(broker.published) != 0 {
		t.Fatal("no notification should be published when the store fails")
	}
}
