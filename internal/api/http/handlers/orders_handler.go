package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/storefront/internal/api/dto"
	"github.com/spec-kit/storefront/internal/auth"
	"github.com/spec-kit/storefront/internal/domain"
	"github.com/spec-kit/storefront/internal/service"
	apperrors "github.com/spec-kit/storefront/pkg/util"
)

// OrdersHandler handles checkout, order administration and phone confirmation.
type OrdersHandler struct {
	orders   *service.OrderService
	validate *dto.Validator
}

// NewOrdersHandler constructs handler.
func NewOrdersHandler(orders *service.OrderService, validate *dto.Validator) *OrdersHandler {
	return &OrdersHandler{orders: orders, validate: validate}
}

// Create handles POST /api/orders for guests and signed-in customers.
func (h *OrdersHandler) Create(c *fiber.Ctx) error {
	var req dto.OrderCreateRequest
	if err := bind(c, h.validate, &req, "invalid order data"); err != nil {
		return err
	}
	actor, _ := auth.IdentityFromContext(c)
	order, err := h.orders.Create(c.UserContext(), actor, req.ToInput())
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewOrderResponse(order))
}

// List handles GET /api/orders.
func (h *OrdersHandler) List(c *fiber.Ctx) error {
	orders, err := h.orders.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewOrderList(orders))
}

// ListMine handles GET /api/orders/my.
func (h *OrdersHandler) ListMine(c *fiber.Ctx) error {
	id, err := identity(c)
	if err != nil {
		return err
	}
	orders, err := h.orders.ListForUser(c.UserContext(), id.UserID)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewOrderList(orders))
}

// UpdateStatus handles PUT /api/orders/:id/status.
func (h *OrdersHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := identity(c)
	if err != nil {
		return err
	}
	var req dto.OrderStatusRequest
	if err := bind(c, h.validate, &req, "invalid status"); err != nil {
		return err
	}
	order, err := h.orders.UpdateStatus(c.UserContext(), id, c.Params("id"), domain.OrderStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewOrderResponse(order))
}

// VerifyPhone handles POST /api/orders/:orderId/verify-phone. Rejected
// codes are still a 200 carrying success=false and the reason.
func (h *OrdersHandler) VerifyPhone(c *fiber.Ctx) error {
	var req dto.VerifyPhoneRequest
	if err := bind(c, h.validate, &req, "phone and code are required"); err != nil {
		return err
	}
	result, err := h.orders.VerifyPhone(c.UserContext(), c.Params("orderId"), strings.TrimSpace(req.Phone), strings.TrimSpace(req.Code))
	if err != nil {
		return err
	}
	return c.JSON(result)
}

// ResendVerification handles POST /api/orders/:orderId/resend-verification.
func (h *OrdersHandler) ResendVerification(c *fiber.Ctx) error {
	var req dto.ResendVerificationRequest
	if err := bind(c, h.validate, &req, "phone number is required"); err != nil {
		return err
	}
	result, err := h.orders.ResendVerification(c.UserContext(), c.Params("orderId"), strings.TrimSpace(req.Phone))
	if err != nil {
		return err
	}
	return c.JSON(result)
}

// VerificationStatus handles GET /api/orders/:orderId/verification-status.
func (h *OrdersHandler) VerificationStatus(c *fiber.Ctx) error {
	phone := strings.TrimSpace(c.Query("phone"))
	if phone == "" {
		return apperrors.NewValidationError("phone number is required", map[string]any{
			"fields": map[string]string{"phone": "is required"},
		})
	}
	status, err := h.orders.VerificationStatus(c.UserContext(), c.Params("orderId"), phone)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewVerificationStatusResponse(status))
}
