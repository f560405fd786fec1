package dto

import (
	"time"

	"github.com/spec-kit/storefront/internal/domain"
)

// NewsletterSubscribeRequest payload for sign-ups.
type NewsletterSubscribeRequest struct {
	Email     string `json:"email" validate:"required,email"`
	FirstName string `json:"firstName" validate:"max=100"`
	LastName  string `json:"lastName" validate:"max=100"`
}

// NewsletterUnsubscribeRequest payload for opting out.
type NewsletterUnsubscribeRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// NewsletterResponse is the subscription shape.
type NewsletterResponse struct {
	ID        string                    `json:"id"`
	Email     string                    `json:"email"`
	FirstName string                    `json:"firstName"`
	LastName  string                    `json:"lastName"`
	Status    domain.SubscriptionStatus `json:"status"`
	CreatedAt time.Time                 `json:"createdAt"`
}

// NewNewsletterResponse maps a subscription.
func NewNewsletterResponse(s *domain.NewsletterSubscription) NewsletterResponse {
	return NewsletterResponse{
		ID:        s.ID,
		Email:     s.Email,
		FirstName: s.FirstName,
		LastName:  s.LastName,
		Status:    s.Status,
		CreatedAt: s.CreatedAt,
	}
}

// NewNewsletterList maps subscriptions.
func NewNewsletterList(subs []domain.NewsletterSubscription) []NewsletterResponse {
	out := make([]NewsletterResponse, 0, len(subs))
	for i := range subs {
		out = append(out, NewNewsletterResponse(&subs[i]))
	}
	return out
}
