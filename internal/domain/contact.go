package domain

import "time"

// ContactStatus tracks admin handling of a contact message.
type ContactStatus string

const (
	ContactStatusUnread    ContactStatus = "unread"
	ContactStatusRead      ContactStatus = "read"
	ContactStatusResponded ContactStatus = "responded"
)

// Valid reports whether s is a known contact status.
func (s ContactStatus) Valid() bool {
	return s == ContactStatusUnread || s == ContactStatusRead || s == ContactStatusResponded
}

// Contact is a message left through the contact form.
type Contact struct {
	ID        string
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Message   string
	Status    ContactStatus
	CreatedAt time.Time
}
