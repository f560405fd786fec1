package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePaymentMethod(t *testing.T) {
	cases := map[string]PaymentMethod{
		"":                 PaymentCashOnDelivery,
		"cod":              PaymentCashOnDelivery,
		"COD":              PaymentCashOnDelivery,
		"cash_on_delivery": PaymentCashOnDelivery,
		" online ":         PaymentOnline,
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizePaymentMethod(in), "input %q", in)
	}
}

func TestRequiresPhoneVerification(t *testing.T) {
	o := &Order{PaymentMethod: PaymentCashOnDelivery, CustomerPhone: "+8801712345678"}
	assert.True(t, o.RequiresPhoneVerification())

	o.CustomerPhone = "  "
	assert.False(t, o.RequiresPhoneVerification())

	o = &Order{PaymentMethod: PaymentOnline, CustomerPhone: "+8801712345678"}
	assert.False(t, o.RequiresPhoneVerification())
}

func TestItemsTotal(t *testing.T) {
	items := []OrderItem{
		{ProductID: "a", Price: 280, Quantity: 2},
		{ProductID: "b", Price: 0.1, Quantity: 3},
	}
	assert.Equal(t, 560.3, ItemsTotal(items))
	assert.Equal(t, 0.0, ItemsTotal(nil))
}

func TestOrderStatusValid(t *testing.T) {
	assert.True(t, OrderStatusConfirmed.Valid())
	assert.False(t, OrderStatus("lost").Valid())
}

func TestSessionExpired(t *testing.T) {
	now := time.Now()
	s := &Session{ExpiresAt: now.Add(time.Minute)}
	assert.False(t, s.Expired(now))
	assert.True(t, s.Expired(now.Add(time.Minute)))
}

func TestProfileUpdateApply(t *testing.T) {
	phone := "+8801700000000"
	u := &User{FirstName: "Rina", Phone: "old"}
	UserProfileUpdate{Phone: &phone}.Apply(u)

	assert.Equal(t, "Rina", u.FirstName)
	assert.Equal(t, phone, u.Phone)
}
