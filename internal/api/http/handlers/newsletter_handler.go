package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/storefront/internal/api/dto"
	"github.com/spec-kit/storefront/internal/service"
)

// NewsletterHandler handles newsletter sign-ups.
type NewsletterHandler struct {
	newsletter *service.NewsletterService
	validate   *dto.Validator
}

// NewNewsletterHandler constructs handler.
func NewNewsletterHandler(newsletter *service.NewsletterService, validate *dto.Validator) *NewsletterHandler {
	return &NewsletterHandler{newsletter: newsletter, validate: validate}
}

// Subscribe handles POST /api/newsletter.
func (h *NewsletterHandler) Subscribe(c *fiber.Ctx) error {
	var req dto.NewsletterSubscribeRequest
	if err := bind(c, h.validate, &req, "invalid subscription data"); err != nil {
		return err
	}
	sub, err := h.newsletter.Subscribe(c.UserContext(), req.Email, req.FirstName, req.LastName)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewNewsletterResponse(sub))
}

// List handles GET /api/newsletter.
func (h *NewsletterHandler) List(c *fiber.Ctx) error {
	subs, err := h.newsletter.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewNewsletterList(subs))
}

// Unsubscribe handles POST /api/newsletter/unsubscribe.
func (h *NewsletterHandler) Unsubscribe(c *fiber.Ctx) error {
	var req dto.NewsletterUnsubscribeRequest
	if err := bind(c, h.validate, &req, "invalid email"); err != nil {
		return err
	}
	sub, err := h.newsletter.Unsubscribe(c.UserContext(), req.Email)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewNewsletterResponse(sub))
}
