package models

import "time"

type CouponType string

const (
	CouponTypePercent CouponType = "percent"
	CouponTypeFixed   CouponType = "fixed"
)

type Coupon struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	Code           string     `gorm:"uniqueIndex;not null" json:"code"`
	Type           CouponType `gorm:"type:VARCHAR(10);not null" json:"type"`
	Value          float64    `gorm:"not null" json:"value"`
	MinOrderAmount float64    `json:"min_order_amount"`
	ExpiresAt      *time.Time `json:"expires_at"`
	Active         bool       `gorm:"default:true" json:"active"`
	CreatedAt      time.Time  `json:"created_at"`
}

// Usable reports whether the coupon can be applied to an order of the
// given subtotal at the given time.
func (cp *Coupon) Usable(subtotal float64, now time.Time) bool {
	if !cp.Active {
		return false
	}
	if cp.ExpiresAt != nil && cp.ExpiresAt.Before(now) {
		return false
	}
	return subtotal >= cp.MinOrderAmount
}

// DiscountFor returns the discount amount for the given subtotal.
// The discount never exceeds the subtotal.
func (cp *Coupon) DiscountFor(subtotal float64) float64 {
	var d float64
	switch cp.Type {
	case CouponTypePercent:
		d = subtotal * cp.Value / 100
	case CouponTypeFixed:
		d = cp.Value
	}
	if d > subtotal {
		d = subtotal
	}
	return d
}
