package services

import (
	"context"
	"log"

	"github.com/webfolio/apiserver/internal/notify"
	"github.com/webfolio/apiserver/types"
)

// ContactRepository defines persistence operations for contact channels
// and visitor messages.
type ContactRepository interface {
	List(ctx context.Context) ([]types.ContactInfo, error)
	Create(ctx context.Context, entry types.ContactInfo) (types.ContactInfo, error)
	Update(ctx context.Context, entry types.ContactInfo) (types.ContactInfo, error)
	Delete(ctx context.Context, id int) error
	CreateMessage(ctx context.Context, msg types.ContactMessage) (types.ContactMessage, error)
}

// ContactService encapsulates contact use-cases. The notifier is
// optional; without one, visitor messages are stored but not announced.
type ContactService struct {
	repo     ContactRepository
	notifier *notify.Notifier
}

func NewContactService(repo ContactRepository, notifier *notify.Notifier) *ContactService {
	return &ContactService{repo: repo, notifier: notifier}
}

func (s *ContactService) List(ctx context.Context) ([]types.ContactInfo, error) {
	return s.repo.List(ctx)
}

func (s *ContactService) Create(ctx context.Context, entry types.ContactInfo) (types.ContactInfo, error) {
	return s.repo.Create(ctx, entry)
}

func (s *ContactService) Update(ctx context.Context, entry types.ContactInfo) (types.ContactInfo, error) {
	return s.repo.Update(ctx, entry)
}

func (s *ContactService) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}

// SubmitMessage stores a visitor message and publishes a notification.
// A publish failure does not fail the submission; the row is already
// durable and the notification is best-effort.
func (s *ContactService) SubmitMessage(ctx context.Context, msg types.ContactMessage) (types.ContactMessage, error) {
	created, err := s.repo.CreateMessage(ctx, msg)
	if err != nil {
		return types.ContactMessage{}, err
	}

	if s.notifier != nil {
		if _, err := s.notifier.MessageSubmitted(ctx, created); err != nil {
			log.Printf("contact message %d stored but notification failed: %v", created.ID, err)
		}
	}
	return created, nil
}
