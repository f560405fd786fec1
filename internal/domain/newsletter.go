package domain

import "time"

// SubscriptionStatus tracks newsletter opt-in.
type SubscriptionStatus string

const (
	SubscriptionSubscribed   SubscriptionStatus = "subscribed"
	SubscriptionUnsubscribed SubscriptionStatus = "unsubscribed"
)

// NewsletterSubscription is a newsletter sign-up.
type NewsletterSubscription struct {
	ID        string
	Email     string
	FirstName string
	LastName  string
	Status    SubscriptionStatus
	CreatedAt time.Time
}
