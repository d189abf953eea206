package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCouponUsable(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	tests := []struct {
		name     string
		coupon   Coupon
		subtotal float64
		want     bool
	}{
		{"active no constraints", Coupon{Active: true}, 10, true},
		{"inactive", Coupon{Active: false}, 10, false},
		{"expired", Coupon{Active: true, ExpiresAt: &past}, 10, false},
		{"not yet expired", Coupon{Active: true, ExpiresAt: &future}, 10, true},
		{"below minimum", Coupon{Active: true, MinOrderAmount: 50}, 49.99, false},
		{"at minimum", Coupon{Active: true, MinOrderAmount: 50}, 50, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.coupon.Usable(tt.subtotal, now))
		})
	}
}

func TestCouponDiscountFor(t *testing.T) {
	percent := Coupon{Type: CouponTypePercent, Value: 25}
	assert.Equal(t, 10.0, percent.DiscountFor(40))

	fixed := Coupon{Type: CouponTypeFixed, Value: 15}
	assert.Equal(t, 15.0, fixed.DiscountFor(40))

	// Discount is capped at the subtotal, never negative totals.
	big := Coupon{Type: CouponTypeFixed, Value: 100}
	assert.Equal(t, 40.0, big.DiscountFor(40))
}

func TestProductEffectivePrice(t *testing.T) {
	assert.Equal(t, 100.0, (&Product{Price: 100}).EffectivePrice())
	assert.Equal(t, 80.0, (&Product{Price: 100, SalePrice: 80}).EffectivePrice())
	// A "sale" price at or above the regular price is ignored.
	assert.Equal(t, 100.0, (&Product{Price: 100, SalePrice: 120}).EffectivePrice())
	assert.Equal(t, 100.0, (&Product{Price: 100, SalePrice: 0}).EffectivePrice())
}

func TestCartSubtotalSkipsMissingProducts(t *testing.T) {
	cart := Cart{Items: []CartItem{
		{Quantity: 2, Product: Product{ID: 1, Price: 10}},
		{Quantity: 1, Product: Product{ID: 2, Price: 100, SalePrice: 50}},
		{Quantity: 3, Product: Product{}}, // product row deleted
	}}
	assert.Equal(t, 70.0, cart.Subtotal())
}

func TestOrderItemLineTotal(t *testing.T) {
	item := OrderItem{UnitPrice: 12.5, Quantity: 4}
	assert.Equal(t, 50.0, item.LineTotal())
}
