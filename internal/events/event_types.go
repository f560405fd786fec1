package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/storefront/internal/domain"
	"github.com/spec-kit/storefront/internal/verification"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered             EventType = "user_registered"
	EventOrderCreated               EventType = "order_created"
	EventOrderStatusChanged         EventType = "order_status_changed"
	EventPhoneVerificationSent      EventType = "phone_verification_sent"
	EventPhoneVerificationSucceeded EventType = "phone_verification_succeeded"
	EventPhoneVerificationFailed    EventType = "phone_verification_failed"
	EventPhoneVerificationResent    EventType = "phone_verification_resent"
	EventContactReceived            EventType = "contact_received"
	EventNewsletterSubscribed       EventType = "newsletter_subscribed"
)

// Actor identifies who caused an event. Both fields are empty for guests.
type Actor struct {
	UserID string      `json:"user_id,omitempty"`
	Role   domain.Role `json:"role,omitempty"`
}

// ActorFrom builds an Actor from an optional identity.
func ActorFrom(identity *domain.Identity) Actor {
	if identity == nil {
		return Actor{}
	}
	return Actor{UserID: identity.UserID, Role: identity.Role}
}

// Event represents a business event emitted by services.
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	SubjectID string    `json:"subject_id"`
	Actor     Actor     `json:"actor"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload"`
}

// New stamps an event with a fresh id and the current time.
func New(eventType EventType, subjectID string, actor Actor, payload any) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		SubjectID: subjectID,
		Actor:     actor,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
}

// OrderCreatedPayload payload.
type OrderCreatedPayload struct {
	Amount        float64              `json:"amount"`
	CustomerEmail string               `json:"customer_email"`
	PaymentMethod domain.PaymentMethod `json:"payment_method"`
	Items         int                  `json:"items"`
}

// OrderStatusChangedPayload payload.
type OrderStatusChangedPayload struct {
	OldStatus domain.OrderStatus `json:"old_status"`
	NewStatus domain.OrderStatus `json:"new_status"`
}

// PhoneVerificationPayload carries only the last four digits of the phone.
type PhoneVerificationPayload struct {
	PhoneSuffix string `json:"phone_suffix"`
	Message     string `json:"message,omitempty"`
}

// ContactReceivedPayload payload.
type ContactReceivedPayload struct {
	Email string `json:"email"`
}

// NewsletterSubscribedPayload payload.
type NewsletterSubscribedPayload struct {
	Email string `json:"email"`
}

// PhoneSuffix returns the last four characters of phone. Numbers too short
// to keep anything hidden are fully masked instead.
func PhoneSuffix(phone string) string {
	runes := []rune(phone)
	if len(runes) <= 4 {
		return verification.MaskPhone(phone)
	}
	return string(runes[len(runes)-4:])
}
