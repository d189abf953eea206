package orderControllers

import (
	"crypto/rand"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/aurelia-labs/velora-api/models"
)

var (
	ErrEmptyCart       = errors.New("cart is empty")
	ErrAddressNotFound = errors.New("shipping address not found")
	ErrCouponInvalid   = errors.New("coupon is invalid or not applicable")

	// Returned when order number generation keeps colliding; in practice
	// this means the random source is broken.
	ErrOrderNumberExhausted = errors.New("could not generate a unique order number")
)

// InsufficientStockError names the product that blocked checkout.
type InsufficientStockError struct {
	ProductID uint
	Name      string
}

func (e *InsufficientStockError) Error() string {
	return "insufficient stock for product: " + e.Name
}

type PlaceOrderRequest struct {
	AddressID  uint   `json:"address_id" binding:"required"`
	CouponCode string `json:"coupon_code"`
}

// Order numbers look like ORD-20260830-7KQ2M. The suffix alphabet skips
// 0/O/1/I to keep the numbers readable over the phone.
const orderNumberCharset = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
const orderNumberSuffixLen = 5
const maxOrderNumberAttempts = 3

func generateOrderNumber(now time.Time) string {
	suffix := make([]byte, orderNumberSuffixLen)
	random := make([]byte, orderNumberSuffixLen)
	if _, err := rand.Read(random); err != nil {
		panic(err)
	}
	for i, b := range random {
		suffix[i] = orderNumberCharset[int(b)%len(orderNumberCharset)]
	}
	return fmt.Sprintf("ORD-%s-%s", now.Format("20060102"), string(suffix))
}

// PlaceOrder converts the user's cart into an order.
//
// Inside a single transaction it decrements each product's stock with a
// conditional update (no decrement below zero, ever), inserts the order
// with snapshot items, and deletes the cart items. Any failure rolls the
// whole thing back. The unique index on order_number plus a bounded
// retry covers random suffix collisions.
func PlaceOrder(db *gorm.DB, userID uint, req PlaceOrderRequest) (*models.Order, error) {
	var cart models.Cart
	err := db.Preload("Items.Product").Where("user_id = ?", userID).First(&cart).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmptyCart
		}
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, ErrEmptyCart
	}

	var address models.Address
	if err := db.Where("id = ? AND user_id = ?", req.AddressID, userID).First(&address).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAddressNotFound
		}
		return nil, err
	}

	// Snapshot prices from the live product rows read above.
	var subtotal float64
	items := make([]models.OrderItem, 0, len(cart.Items))
	for _, item := range cart.Items {
		if item.Product.ID == 0 {
			// Product removed since it was added to the cart.
			return nil, &InsufficientStockError{ProductID: item.ProductID, Name: fmt.Sprintf("product %d", item.ProductID)}
		}
		price := item.Product.EffectivePrice()
		subtotal += price * float64(item.Quantity)
		items = append(items, models.OrderItem{
			ProductID:   item.ProductID,
			ProductName: item.Product.Name,
			UnitPrice:   price,
			Quantity:    item.Quantity,
		})
	}

	var discount float64
	couponCode := strings.ToUpper(strings.TrimSpace(req.CouponCode))
	if couponCode != "" {
		var coupon models.Coupon
		if err := db.Where("code = ?", couponCode).First(&coupon).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCouponInvalid
			}
			return nil, err
		}
		if !coupon.Usable(subtotal, time.Now()) {
			return nil, ErrCouponInvalid
		}
		discount = coupon.DiscountFor(subtotal)
	}

	for attempt := 0; attempt < maxOrderNumberAttempts; attempt++ {
		orderItems := make([]models.OrderItem, len(items))
		copy(orderItems, items)

		order := models.Order{
			OrderNumber:    generateOrderNumber(time.Now()),
			UserID:         userID,
			Items:          orderItems,
			Subtotal:       subtotal,
			DiscountAmount: discount,
			CouponCode:     couponCode,
			TotalAmount:    subtotal - discount,
			Status:         models.OrderStatusPending,
			PaymentStatus:  models.PaymentStatusPending,
			ShippingAddress: models.OrderAddress{
				Line1:      address.Line1,
				Line2:      address.Line2,
				City:       address.City,
				State:      address.State,
				Country:    address.Country,
				PostalCode: address.PostalCode,
			},
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			for _, item := range cart.Items {
				// Conditional decrement: the storage engine checks the
				// stock level atomically, so two checkouts racing for
				// the last unit cannot both win.
				res := tx.Model(&models.Product{}).
					Where("id = ? AND stock >= ?", item.ProductID, item.Quantity).
					UpdateColumn("stock", gorm.Expr("stock - ?", item.Quantity))
				if res.Error != nil {
					return res.Error
				}
				if res.RowsAffected == 0 {
					return &InsufficientStockError{ProductID: item.ProductID, Name: item.Product.Name}
				}
			}

			if err := tx.Create(&order).Error; err != nil {
				return err
			}

			return tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error
		})
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Order number collision; roll everything back and retry
			// with a fresh suffix.
			continue
		}
		if err != nil {
			return nil, err
		}
		return &order, nil
	}

	return nil, ErrOrderNumberExhausted
}

func mapOrderStatus(status string) (models.OrderStatus, error) {
	switch strings.ToLower(status) {
	case string(models.OrderStatusPending):
		return models.OrderStatusPending, nil
	case string(models.OrderStatusProcessing):
		return models.OrderStatusProcessing, nil
	case string(models.OrderStatusShipped):
		return models.OrderStatusShipped, nil
	case string(models.OrderStatusDelivered):
		return models.OrderStatusDelivered, nil
	case string(models.OrderStatusCancelled):
		return models.OrderStatusCancelled, nil
	default:
		return "", errors.New("invalid order status")
	}
}

func mapPaymentStatus(status string) (models.PaymentStatus, error) {
	switch strings.ToLower(status) {
	case string(models.PaymentStatusPending):
		return models.PaymentStatusPending, nil
	case string(models.PaymentStatusPaid):
		return models.PaymentStatusPaid, nil
	case string(models.PaymentStatusFailed):
		return models.PaymentStatusFailed, nil
	case string(models.PaymentStatusRefunded):
		return models.PaymentStatusRefunded, nil
	default:
		return "", errors.New("invalid payment status")
	}
}
