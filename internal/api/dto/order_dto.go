package dto

import (
	"time"

	"github.com/spec-kit/storefront/internal/domain"
	"github.com/spec-kit/storefront/internal/service"
)

// OrderItemRequest is one checkout line. Name and price are informational;
// the order is priced from the catalog.
type OrderItemRequest struct {
	ProductID   string  `json:"productId" validate:"required"`
	ProductName string  `json:"productName" validate:"max=200"`
	Price       float64 `json:"price" validate:"gte=0"`
	Quantity    int     `json:"quantity" validate:"gte=1,lte=100"`
}

// OrderCreateRequest payload for checkout. totalAmount is accepted but
// recomputed from items.
type OrderCreateRequest struct {
	CustomerName    string             `json:"customerName" validate:"required,max=200"`
	CustomerEmail   string             `json:"customerEmail" validate:"required,email"`
	CustomerPhone   string             `json:"customerPhone" validate:"max=32"`
	CustomerAddress string             `json:"customerAddress" validate:"required"`
	PaymentMethod   string             `json:"paymentMethod" validate:"omitempty,oneof=cod cash_on_delivery online"`
	TotalAmount     float64            `json:"totalAmount"`
	Items           []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

// ToInput converts the request into a service input.
func (r OrderCreateRequest) ToInput() service.CreateOrderInput {
	items := make([]domain.OrderItem, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, domain.OrderItem{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Price:       item.Price,
			Quantity:    item.Quantity,
		})
	}
	return service.CreateOrderInput{
		CustomerName:    r.CustomerName,
		CustomerEmail:   r.CustomerEmail,
		CustomerPhone:   r.CustomerPhone,
		CustomerAddress: r.CustomerAddress,
		PaymentMethod:   r.PaymentMethod,
		Items:           items,
	}
}

// OrderStatusRequest payload for admin status changes.
type OrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// VerifyPhoneRequest payload for submitting a delivery code.
type VerifyPhoneRequest struct {
	Phone string `json:"phone" validate:"required"`
	Code  string `json:"code" validate:"required"`
}

// ResendVerificationRequest payload for requesting a new code.
type ResendVerificationRequest struct {
	Phone string `json:"phone" validate:"required"`
}

// OrderResponse is the order shape. It never carries a verification code.
type OrderResponse struct {
	ID              string               `json:"id"`
	UserID          *string              `json:"userId"`
	CustomerName    string               `json:"customerName"`
	CustomerEmail   string               `json:"customerEmail"`
	CustomerPhone   string               `json:"customerPhone"`
	CustomerAddress string               `json:"customerAddress"`
	TotalAmount     float64              `json:"totalAmount"`
	Status          domain.OrderStatus   `json:"status"`
	PaymentMethod   domain.PaymentMethod `json:"paymentMethod"`
	Items           []domain.OrderItem   `json:"items"`
	CreatedAt       time.Time            `json:"createdAt"`
}

// NewOrderResponse maps an order.
func NewOrderResponse(o *domain.Order) OrderResponse {
	var userID *string
	if o.UserID != "" {
		id := o.UserID
		userID = &id
	}
	items := o.Items
	if items == nil {
		items = []domain.OrderItem{}
	}
	return OrderResponse{
		ID:              o.ID,
		UserID:          userID,
		CustomerName:    o.CustomerName,
		CustomerEmail:   o.CustomerEmail,
		CustomerPhone:   o.CustomerPhone,
		CustomerAddress: o.CustomerAddress,
		TotalAmount:     o.TotalAmount,
		Status:          o.Status,
		PaymentMethod:   o.PaymentMethod,
		Items:           items,
		CreatedAt:       o.CreatedAt,
	}
}

// NewOrderList maps orders.
func NewOrderList(orders []domain.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, NewOrderResponse(&orders[i]))
	}
	return out
}

// VerificationStatusResponse is the admin view of a phone challenge.
type VerificationStatusResponse struct {
	OrderID   string     `json:"orderId"`
	Exists    bool       `json:"exists"`
	Verified  bool       `json:"verified"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

// NewVerificationStatusResponse maps a status.
func NewVerificationStatusResponse(s *service.VerificationStatus) VerificationStatusResponse {
	return VerificationStatusResponse{
		OrderID:   s.OrderID,
		Exists:    s.Exists,
		Verified:  s.Verified,
		ExpiresAt: s.ExpiresAt,
	}
}
