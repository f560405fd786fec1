package domain

import (
	"math"
	"strings"
	"time"
)

// OrderStatus represents the fulfilment lifecycle of an order.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// Valid reports whether s is a known order status.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusProcessing,
		OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// PaymentMethod identifies how an order is paid.
type PaymentMethod string

const (
	PaymentCashOnDelivery PaymentMethod = "cash_on_delivery"
	PaymentOnline         PaymentMethod = "online"
)

// NormalizePaymentMethod maps legacy and empty values onto known methods.
func NormalizePaymentMethod(raw string) PaymentMethod {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "cod", string(PaymentCashOnDelivery):
		return PaymentCashOnDelivery
	default:
		return PaymentMethod(strings.ToLower(strings.TrimSpace(raw)))
	}
}

// Order is a placed storefront order. UserID is empty for guest checkouts.
type Order struct {
	ID              string
	UserID          string
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	CustomerAddress string
	TotalAmount     float64
	Status          OrderStatus
	PaymentMethod   PaymentMethod
	Items           []OrderItem
	CreatedAt       time.Time
}

// OrderItem is one line of an order, priced at checkout time.
type OrderItem struct {
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
}

// RequiresPhoneVerification reports whether placing o must mint a delivery code.
func (o *Order) RequiresPhoneVerification() bool {
	return o.PaymentMethod == PaymentCashOnDelivery && strings.TrimSpace(o.CustomerPhone) != ""
}

// ItemsTotal sums price*quantity across items, rounded to two decimals.
func ItemsTotal(items []OrderItem) float64 {
	var total float64
	for _, item := range items {
		total += item.Price * float64(item.Quantity)
	}
	return math.Round(total*100) / 100
}
