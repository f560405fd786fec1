package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/storefront/internal/api/dto"
	"github.com/spec-kit/storefront/internal/auth"
	"github.com/spec-kit/storefront/internal/domain"
	"github.com/spec-kit/storefront/internal/service"
	apperrors "github.com/spec-kit/storefront/pkg/util"
)

// bind decodes the JSON body into payload and validates it.
func bind(c *fiber.Ctx, v *dto.Validator, payload any, message string) error {
	if err := c.BodyParser(payload); err != nil {
		return apperrors.NewValidationError("invalid request body", nil)
	}
	return v.Struct(payload, message)
}

func requestMeta(c *fiber.Ctx) service.RequestMeta {
	return service.RequestMeta{
		IP:        c.IP(),
		UserAgent: c.Get(fiber.HeaderUserAgent),
		Method:    c.Method(),
		Path:      c.Path(),
	}
}

// identity returns the authenticated caller set by the auth middleware.
func identity(c *fiber.Ctx) (*domain.Identity, error) {
	id, ok := auth.IdentityFromContext(c)
	if !ok {
		return nil, apperrors.NewUnauthorized(auth.MsgTokenRequired)
	}
	return id, nil
}

func message(text string) fiber.Map {
	return fiber.Map{"message": text}
}
