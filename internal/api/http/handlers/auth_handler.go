package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/storefront/internal/api/dto"
	"github.com/spec-kit/storefront/internal/auth"
	"github.com/spec-kit/storefront/internal/service"
)

// AuthHandler exposes registration, login and profile endpoints.
type AuthHandler struct {
	auth     *service.AuthService
	validate *dto.Validator
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService, validate *dto.Validator) *AuthHandler {
	return &AuthHandler{auth: authService, validate: validate}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.UserRegisterRequest
	if err := bind(c, h.validate, &req, "invalid registration details"); err != nil {
		return err
	}

	result, err := h.auth.Register(c.UserContext(), service.RegisterInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	}, requestMeta(c))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(authResponse(result))
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.UserLoginRequest
	if err := bind(c, h.validate, &req, "invalid login details"); err != nil {
		return err
	}

	result, err := h.auth.Login(c.UserContext(), req.Email, req.Password, requestMeta(c))
	if err != nil {
		return err
	}
	return c.JSON(authResponse(result))
}

// Logout handles POST /api/auth/logout.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.auth.Logout(c.UserContext(), auth.BearerToken(c)); err != nil {
		return err
	}
	return c.JSON(message("Logged out successfully"))
}

// Me handles GET /api/auth/me.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	id, err := identity(c)
	if err != nil {
		return err
	}
	user, err := h.auth.Me(c.UserContext(), id.UserID)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserProfile(user))
}

// UpdateMe handles PUT /api/auth/me.
func (h *AuthHandler) UpdateMe(c *fiber.Ctx) error {
	id, err := identity(c)
	if err != nil {
		return err
	}
	var req dto.ProfileUpdateRequest
	if err := bind(c, h.validate, &req, "invalid profile details"); err != nil {
		return err
	}
	user, err := h.auth.UpdateProfile(c.UserContext(), id.UserID, req.ToDomain())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserProfile(user))
}

func authResponse(result *service.AuthResult) dto.AuthResponse {
	return dto.AuthResponse{
		User:         dto.NewUserSummary(result.User),
		Token:        result.Token,
		SessionToken: result.SessionToken,
		ExpiresAt:    result.TokenExpiresAt,
	}
}
