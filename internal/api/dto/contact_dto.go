package dto

import (
	"time"

	"github.com/spec-kit/storefront/internal/domain"
)

// ContactCreateRequest payload for the contact form.
type ContactCreateRequest struct {
	FirstName string `json:"firstName" validate:"required,max=100"`
	LastName  string `json:"lastName" validate:"required,max=100"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"max=32"`
	Message   string `json:"message" validate:"required,max=5000"`
}

// ToDomain converts the request.
func (r ContactCreateRequest) ToDomain() domain.Contact {
	return domain.Contact{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		Phone:     r.Phone,
		Message:   r.Message,
	}
}

// ContactStatusRequest payload for admin triage.
type ContactStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=unread read responded"`
}

// ContactResponse is the contact shape.
type ContactResponse struct {
	ID        string               `json:"id"`
	FirstName string               `json:"firstName"`
	LastName  string               `json:"lastName"`
	Email     string               `json:"email"`
	Phone     string               `json:"phone"`
	Message   string               `json:"message"`
	Status    domain.ContactStatus `json:"status"`
	CreatedAt time.Time            `json:"createdAt"`
}

// NewContactResponse maps a contact.
func NewContactResponse(c *domain.Contact) ContactResponse {
	return ContactResponse{
		ID:        c.ID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Email:     c.Email,
		Phone:     c.Phone,
		Message:   c.Message,
		Status:    c.Status,
		CreatedAt: c.CreatedAt,
	}
}

// NewContactList maps contacts.
func NewContactList(contacts []domain.Contact) []ContactResponse {
	out := make([]ContactResponse, 0, len(contacts))
	for i := range contacts {
		out = append(out, NewContactResponse(&contacts[i]))
	}
	return out
}
