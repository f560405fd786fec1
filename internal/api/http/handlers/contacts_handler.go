package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/storefront/internal/api/dto"
	"github.com/spec-kit/storefront/internal/domain"
	"github.com/spec-kit/storefront/internal/service"
)

// ContactsHandler handles the contact form and its admin inbox.
type ContactsHandler struct {
	contacts *service.ContactService
	validate *dto.Validator
}

// NewContactsHandler constructs handler.
func NewContactsHandler(contacts *service.ContactService, validate *dto.Validator) *ContactsHandler {
	return &ContactsHandler{contacts: contacts, validate: validate}
}

// Create handles POST /api/contacts.
func (h *ContactsHandler) Create(c *fiber.Ctx) error {
	var req dto.ContactCreateRequest
	if err := bind(c, h.validate, &req, "invalid contact data"); err != nil {
		return err
	}
	contact, err := h.contacts.Create(c.UserContext(), req.ToDomain())
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewContactResponse(contact))
}

// List handles GET /api/contacts.
func (h *ContactsHandler) List(c *fiber.Ctx) error {
	contacts, err := h.contacts.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewContactList(contacts))
}

// UpdateStatus handles PUT /api/contacts/:id/status.
func (h *ContactsHandler) UpdateStatus(c *fiber.Ctx) error {
	var req dto.ContactStatusRequest
	if err := bind(c, h.validate, &req, "invalid status"); err != nil {
		return err
	}
	contact, err := h.contacts.UpdateStatus(c.UserContext(), c.Params("id"), domain.ContactStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewContactResponse(contact))
}
