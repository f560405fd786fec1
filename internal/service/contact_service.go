package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/storefront/internal/domain"
	"github.com/spec-kit/storefront/internal/events"
	"github.com/spec-kit/storefront/internal/repository"
	apperrors "github.com/spec-kit/storefront/pkg/util"
)

// ContactService stores and triages contact-form messages.
type ContactService struct {
	contacts   repository.ContactRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewContactService constructs the service.
func NewContactService(contacts repository.ContactRepository, dispatcher events.Dispatcher, logger *zap.Logger) *ContactService {
	return &ContactService{contacts: contacts, dispatcher: dispatcher, logger: logger}
}

// Create records a message as unread.
func (s *ContactService) Create(ctx context.Context, contact domain.Contact) (*domain.Contact, error) {
	contact.Email = normalizeEmail(contact.Email)
	contact.Message = strings.TrimSpace(contact.Message)
	contact.Status = domain.ContactStatusUnread
	if err := s.contacts.Create(ctx, &contact); err != nil {
		return nil, err
	}
	publishEvent(ctx, s.dispatcher, s.logger, events.New(events.EventContactReceived, contact.ID, events.Actor{},
		events.ContactReceivedPayload{Email: contact.Email}))
	return &contact, nil
}

func (s *ContactService) List(ctx context.Context) ([]domain.Contact, error) {
	return s.contacts.List(ctx)
}

// UpdateStatus marks a message read or responded.
func (s *ContactService) UpdateStatus(ctx context.Context, id string, status domain.ContactStatus) (*domain.Contact, error) {
	if !status.Valid() {
		return nil, apperrors.NewValidationError("invalid contact status", map[string]any{"status": string(status)})
	}
	contact, err := s.contacts.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, notFoundAs("contact", err)
	}
	return contact, nil
}
