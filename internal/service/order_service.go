package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/storefront/internal/domain"
	"github.com/spec-kit/storefront/internal/events"
	"github.com/spec-kit/storefront/internal/repository"
	"github.com/spec-kit/storefront/internal/verification"
	apperrors "github.com/spec-kit/storefront/pkg/util"
)

// PhoneVerifier issues and checks delivery verification codes.
type PhoneVerifier interface {
	Generate(ctx context.Context, phone, orderID string) (string, error)
	Verify(ctx context.Context, phone, code, orderID string) (verification.Result, error)
	Resend(ctx context.Context, phone, orderID string) (verification.Result, error)
	Status(ctx context.Context, phone, orderID string) (verification.Status, error)
}

// OrderService coordinates checkout and order administration.
type OrderService struct {
	orders     repository.OrderRepository
	products   repository.ProductRepository
	verifier   PhoneVerifier
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// OrderDependencies bundles collaborators for the order service.
type OrderDependencies struct {
	Orders     repository.OrderRepository
	Products   repository.ProductRepository
	Verifier   PhoneVerifier
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewOrderService constructs the service.
func NewOrderService(deps OrderDependencies) *OrderService {
	return &OrderService{
		orders:     deps.Orders,
		products:   deps.Products,
		verifier:   deps.Verifier,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
	}
}

// CreateOrderInput describes a checkout.
type CreateOrderInput struct {
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	CustomerAddress string
	PaymentMethod   string
	Items           []domain.OrderItem
}

// VerificationStatus is the admin view of an order's phone challenge.
type VerificationStatus struct {
	OrderID string
	verification.Status
}

// Create places an order for a guest or, when actor is set, for that user.
// Item names and prices come from the catalog and the total is derived from them.
// Cash-on-delivery orders with a phone get a verification code; a failure
// to issue it leaves the order pending and is only logged.
func (s *OrderService) Create(ctx context.Context, actor *domain.Identity, input CreateOrderInput) (*domain.Order, error) {
	items, err := s.priceItems(ctx, input.Items)
	if err != nil {
		return nil, err
	}

	order := &domain.Order{
		CustomerName:    strings.TrimSpace(input.CustomerName),
		CustomerEmail:   strings.TrimSpace(input.CustomerEmail),
		CustomerPhone:   strings.TrimSpace(input.CustomerPhone),
		CustomerAddress: strings.TrimSpace(input.CustomerAddress),
		PaymentMethod:   domain.NormalizePaymentMethod(input.PaymentMethod),
		Status:          domain.OrderStatusPending,
		Items:           items,
		TotalAmount:     domain.ItemsTotal(items),
	}
	if actor != nil {
		order.UserID = actor.UserID
	}

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}

	s.publish(ctx, events.New(events.EventOrderCreated, order.ID, events.ActorFrom(actor), events.OrderCreatedPayload{
		Amount:        order.TotalAmount,
		CustomerEmail: order.CustomerEmail,
		PaymentMethod: order.PaymentMethod,
		Items:         len(order.Items),
	}))

	if order.RequiresPhoneVerification() && s.verifier != nil {
		if _, err := s.verifier.Generate(ctx, order.CustomerPhone, order.ID); err != nil {
			s.logger.Warn("failed to send phone verification", zap.String("order_id", order.ID), zap.Error(err))
		} else {
			s.publish(ctx, events.New(events.EventPhoneVerificationSent, order.ID, events.ActorFrom(actor),
				events.PhoneVerificationPayload{PhoneSuffix: events.PhoneSuffix(order.CustomerPhone)}))
		}
	}
	return order, nil
}

// List returns every order newest first.
func (s *OrderService) List(ctx context.Context) ([]domain.Order, error) {
	return s.orders.List(ctx)
}

// ListForUser returns the user's orders newest first.
func (s *OrderService) ListForUser(ctx context.Context, userID string) ([]domain.Order, error) {
	return s.orders.ListByUser(ctx, userID)
}

// UpdateStatus moves an order to status.
func (s *OrderService) UpdateStatus(ctx context.Context, actor *domain.Identity, orderID string, status domain.OrderStatus) (*domain.Order, error) {
	if !status.Valid() {
		return nil, apperrors.NewValidationError("invalid order status", map[string]any{"status": string(status)})
	}
	return s.transition(ctx, actor, orderID, status)
}

// priceItems replaces client-supplied names and prices with catalog values.
func (s *OrderService) priceItems(ctx context.Context, items []domain.OrderItem) ([]domain.OrderItem, error) {
	if len(items) == 0 {
		return nil, apperrors.NewValidationError("order must contain at least one item", nil)
	}
	priced := make([]domain.OrderItem, 0, len(items))
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, apperrors.NewValidationError("item quantity must be positive", map[string]any{"productId": item.ProductID})
		}
		product, err := s.products.GetByID(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, apperrors.NewValidationError("unknown product", map[string]any{"productId": item.ProductID})
			}
			return nil, err
		}
		if !product.InStock {
			return nil, apperrors.NewValidationError("product out of stock", map[string]any{"productId": item.ProductID})
		}
		priced = append(priced, domain.OrderItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			Price:       product.Price,
			Quantity:    item.Quantity,
		})
	}
	return priced, nil
}

// VerifyPhone checks a submitted code and confirms the order on success.
func (s *OrderService) VerifyPhone(ctx context.Context, orderID, phone, code string) (verification.Result, error) {
	result, err := s.verifier.Verify(ctx, phone, code, orderID)
	if err != nil {
		return verification.Result{}, err
	}

	payload := events.PhoneVerificationPayload{PhoneSuffix: events.PhoneSuffix(phone), Message: result.Message}
	if !result.Success {
		s.publish(ctx, events.New(events.EventPhoneVerificationFailed, orderID, events.Actor{}, payload))
		return result, nil
	}

	s.publish(ctx, events.New(events.EventPhoneVerificationSucceeded, orderID, events.Actor{}, payload))
	if err := s.confirmPending(ctx, orderID); err != nil {
		return verification.Result{}, err
	}
	return result, nil
}

// confirmPending moves a pending order to confirmed. Orders an admin has
// already moved on are left alone, so repeating a verify changes nothing.
func (s *OrderService) confirmPending(ctx context.Context, orderID string) error {
	current, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.logger.Warn("verified phone for missing order", zap.String("order_id", orderID))
			return nil
		}
		return err
	}
	if current.Status != domain.OrderStatusPending {
		return nil
	}
	_, err = s.transition(ctx, nil, orderID, domain.OrderStatusConfirmed)
	return err
}

// ResendVerification regenerates the code for an order's phone.
func (s *OrderService) ResendVerification(ctx context.Context, orderID, phone string) (verification.Result, error) {
	result, err := s.verifier.Resend(ctx, phone, orderID)
	if err != nil {
		return verification.Result{}, err
	}
	s.publish(ctx, events.New(events.EventPhoneVerificationResent, orderID, events.Actor{},
		events.PhoneVerificationPayload{PhoneSuffix: events.PhoneSuffix(phone), Message: result.Message}))
	return result, nil
}

// VerificationStatus reports the phone challenge bound to orderID.
func (s *OrderService) VerificationStatus(ctx context.Context, orderID, phone string) (*VerificationStatus, error) {
	status, err := s.verifier.Status(ctx, phone, orderID)
	if err != nil {
		return nil, err
	}
	return &VerificationStatus{OrderID: orderID, Status: status}, nil
}

func (s *OrderService) transition(ctx context.Context, actor *domain.Identity, orderID string, status domain.OrderStatus) (*domain.Order, error) {
	current, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, notFoundAs("order", err)
	}
	updated, err := s.orders.UpdateStatus(ctx, orderID, status)
	if err != nil {
		return nil, notFoundAs("order", err)
	}
	if current.Status != status {
		s.publish(ctx, events.New(events.EventOrderStatusChanged, orderID, events.ActorFrom(actor),
			events.OrderStatusChangedPayload{OldStatus: current.Status, NewStatus: status}))
	}
	return updated, nil
}

func (s *OrderService) publish(ctx context.Context, event events.Event) {
	publishEvent(ctx, s.dispatcher, s.logger, event)
}
