package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/storefront/internal/domain"
	"github.com/spec-kit/storefront/internal/events"
	"github.com/spec-kit/storefront/internal/repository"
	apperrors "github.com/spec-kit/storefront/pkg/util"
)

// NewsletterService manages newsletter subscriptions.
type NewsletterService struct {
	subscriptions repository.NewsletterRepository
	dispatcher    events.Dispatcher
	logger        *zap.Logger
}

// NewNewsletterService constructs the service.
func NewNewsletterService(subscriptions repository.NewsletterRepository, dispatcher events.Dispatcher, logger *zap.Logger) *NewsletterService {
	return &NewsletterService{subscriptions: subscriptions, dispatcher: dispatcher, logger: logger}
}

// Subscribe adds email to the list. A duplicate email is a conflict.
func (s *NewsletterService) Subscribe(ctx context.Context, email, firstName, lastName string) (*domain.NewsletterSubscription, error) {
	sub := &domain.NewsletterSubscription{
		Email:     normalizeEmail(email),
		FirstName: strings.TrimSpace(firstName),
		LastName:  strings.TrimSpace(lastName),
		Status:    domain.SubscriptionSubscribed,
	}
	if err := s.subscriptions.Create(ctx, sub); err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			return nil, apperrors.NewConflict("email already subscribed", nil)
		}
		return nil, err
	}
	publishEvent(ctx, s.dispatcher, s.logger, events.New(events.EventNewsletterSubscribed, sub.ID, events.Actor{},
		events.NewsletterSubscribedPayload{Email: sub.Email}))
	return sub, nil
}

func (s *NewsletterService) List(ctx context.Context) ([]domain.NewsletterSubscription, error) {
	return s.subscriptions.List(ctx)
}

// Unsubscribe marks email as unsubscribed.
func (s *NewsletterService) Unsubscribe(ctx context.Context, email string) (*domain.NewsletterSubscription, error) {
	sub, err := s.subscriptions.UpdateStatusByEmail(ctx, normalizeEmail(email), domain.SubscriptionUnsubscribed)
	if err != nil {
		return nil, notFoundAs("subscription", err)
	}
	return sub, nil
}
