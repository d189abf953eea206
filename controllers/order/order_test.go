package orderControllers

import (
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/aurelia-labs/velora-api/models"
	"github.com/aurelia-labs/velora-api/testdb"
)

func seedUser(t *testing.T, db *gorm.DB) models.User {
	t.Helper()
	user := models.User{
		Email:        fmt.Sprintf("user-%s@example.com", uuid.NewString()),
		PasswordHash: "x",
		Name:         "Test User",
		Verified:     true,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func seedAddress(t *testing.T, db *gorm.DB, userID uint) models.Address {
	t.Helper()
	address := models.Address{
		UserID:  userID,
		Line1:   "1 Main St",
		City:    "Springfield",
		Country: "US",
	}
	require.NoError(t, db.Create(&address).Error)
	return address
}

func seedProduct(t *testing.T, db *gorm.DB, name string, price float64, stock int) models.Product {
	t.Helper()
	product := models.Product{
		Name:  name,
		Slug:  fmt.Sprintf("%s-%d", name, time.Now().UnixNano()),
		Price: price,
		Stock: stock,
	}
	require.NoError(t, db.Create(&product).Error)
	return product
}

func seedCart(t *testing.T, db *gorm.DB, userID uint, items ...models.CartItem) models.Cart {
	t.Helper()
	cart := models.Cart{UserID: userID, Items: items}
	require.NoError(t, db.Create(&cart).Error)
	return cart
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	db := testdb.New(t)
	user := seedUser(t, db)
	address := seedAddress(t, db, user.ID)

	// No cart at all.
	_, err := PlaceOrder(db, user.ID, PlaceOrderRequest{AddressID: address.ID})
	assert.ErrorIs(t, err, ErrEmptyCart)

	// A cart with no items.
	seedCart(t, db, user.ID)
	_, err = PlaceOrder(db, user.ID, PlaceOrderRequest{AddressID: address.ID})
	assert.ErrorIs(t, err, ErrEmptyCart)

	var count int64
	require.NoError(t, db.Model(&models.Order{}).Count(&count).Error)
	assert.Zero(t, count, "no order rows should exist")
}

func TestPlaceOrderComputesTotalsAndDecrementsStock(t *testing.T) {
	db := testdb.New(t)
	user := seedUser(t, db)
	address := seedAddress(t, db, user.ID)
	mug := seedProduct(t, db, "mug", 10, 5)
	tee := seedProduct(t, db, "tee", 20, 5)
	seedCart(t, db, user.ID,
		models.CartItem{ProductID: mug.ID, Quantity: 2},
		models.CartItem{ProductID: tee.ID, Quantity: 1},
	)

	order, err := PlaceOrder(db, user.ID, PlaceOrderRequest{AddressID: address.ID})
	require.NoError(t, err)

	assert.Equal(t, 40.0, order.Subtotal)
	assert.Equal(t, 40.0, order.TotalAmount)
	assert.Zero(t, order.DiscountAmount)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, models.PaymentStatusPending, order.PaymentStatus)
	assert.Equal(t, "1 Main St", order.ShippingAddress.Line1)
	assert.Len(t, order.Items, 2)

	var gotMug, gotTee models.Product
	require.NoError(t, db.First(&gotMug, mug.ID).Error)
	require.NoError(t, db.First(&gotTee, tee.ID).Error)
	assert.Equal(t, 3, gotMug.Stock)
	assert.Equal(t, 4, gotTee.Stock)

	var remaining int64
	require.NoError(t, db.Model(&models.CartItem{}).Count(&remaining).Error)
	assert.Zero(t, remaining, "cart should be emptied after checkout")
}

func TestPlaceOrderSnapshotsSalePrice(t *testing.T) {
	db := testdb.New(t)
	user := seedUser(t, db)
	address := seedAddress(t, db, user.ID)

	product := seedProduct(t, db, "lamp", 50, 3)
	require.NoError(t, db.Model(&models.Product{}).Where("id = ?", product.ID).Update("sale_price", 35).Error)
	seedCart(t, db, user.ID, models.CartItem{ProductID: product.ID, Quantity: 2})

	order, err := PlaceOrder(db, user.ID, PlaceOrderRequest{AddressID: address.ID})
	require.NoError(t, err)

	require.Len(t, order.Items, 1)
	assert.Equal(t, 35.0, order.Items[0].UnitPrice)
	assert.Equal(t, "lamp", order.Items[0].ProductName)
	assert.Equal(t, 70.0, order.Subtotal)
}

func TestPlaceOrderInsufficientStockRollsBack(t *testing.T) {
	db := testdb.New(t)
	user := seedUser(t, db)
	address := seedAddress(t, db, user.ID)
	mug := seedProduct(t, db, "mug", 10, 5)
	tee := seedProduct(t, db, "tee", 20, 1)
	seedCart(t, db, user.ID,
		models.CartItem{ProductID: mug.ID, Quantity: 2},
		models.CartItem{ProductID: tee.ID, Quantity: 3}, // only 1 in stock
	)

	_, err := PlaceOrder(db, user.ID, PlaceOrderRequest{AddressID: address.ID})

	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, tee.ID, stockErr.ProductID)

	// The whole transaction rolled back: no order, stock untouched, cart intact.
	var orders int64
	require.NoError(t, db.Model(&models.Order{}).Count(&orders).Error)
	assert.Zero(t, orders)

	var gotMug models.Product
	require.NoError(t, db.First(&gotMug, mug.ID).Error)
	assert.Equal(t, 5, gotMug.Stock, "partial decrement must be rolled back")

	var items int64
	require.NoError(t, db.Model(&models.CartItem{}).Count(&items).Error)
	assert.Equal(t, int64(2), items)
}

func TestPlaceOrderAddressNotFound(t *testing.T) {
	db := testdb.New(t)
	user := seedUser(t, db)
	other := seedUser(t, db)
	theirs := seedAddress(t, db, other.ID)
	product := seedProduct(t, db, "mug", 10, 5)
	seedCart(t, db, user.ID, models.CartItem{ProductID: product.ID, Quantity: 1})

	// Another user's address must not be usable.
	_, err := PlaceOrder(db, user.ID, PlaceOrderRequest{AddressID: theirs.ID})
	assert.ErrorIs(t, err, ErrAddressNotFound)

	_, err = PlaceOrder(db, user.ID, PlaceOrderRequest{AddressID: 9999})
	assert.ErrorIs(t, err, ErrAddressNotFound)
}

func TestPlaceOrderAppliesCoupon(t *testing.T) {
	db := testdb.New(t)
	user := seedUser(t, db)
	address := seedAddress(t, db, user.ID)
	product := seedProduct(t, db, "mug", 10, 10)
	seedCart(t, db, user.ID, models.CartItem{ProductID: product.ID, Quantity: 4})

	require.NoError(t, db.Create(&models.Coupon{
		Code:   "SAVE10",
		Type:   models.CouponTypePercent,
		Value:  10,
		Active: true,
	}).Error)

	order, err := PlaceOrder(db, user.ID, PlaceOrderRequest{AddressID: address.ID, CouponCode: "save10"})
	require.NoError(t, err)

	assert.Equal(t, 40.0, order.Subtotal)
	assert.Equal(t, 4.0, order.DiscountAmount)
	assert.Equal(t, 36.0, order.TotalAmount)
	assert.Equal(t, "SAVE10", order.CouponCode)
}

func TestPlaceOrderRejectsUnusableCoupons(t *testing.T) {
	db := testdb.New(t)
	user := seedUser(t, db)
	address := seedAddress(t, db, user.ID)
	product := seedProduct(t, db, "mug", 10, 10)
	seedCart(t, db, user.ID, models.CartItem{ProductID: product.ID, Quantity: 1})

	expired := time.Now().Add(-time.Hour)
	require.NoError(t, db.Create(&models.Coupon{
		Code: "OLD", Type: models.CouponTypeFixed, Value: 5, Active: true, ExpiresAt: &expired,
	}).Error)
	require.NoError(t, db.Create(&models.Coupon{
		Code: "BIGSPEND", Type: models.CouponTypeFixed, Value: 5, Active: true, MinOrderAmount: 100,
	}).Error)

	for _, code := range []string{"NOSUCH", "OLD", "BIGSPEND"} {
		_, err := PlaceOrder(db, user.ID, PlaceOrderRequest{AddressID: address.ID, CouponCode: code})
		assert.ErrorIs(t, err, ErrCouponInvalid, "coupon %s", code)
	}
}

func TestGenerateOrderNumberFormat(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	pattern := regexp.MustCompile(`^ORD-20260830-[A-HJ-NP-Z2-9]{5}$`)

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		num := generateOrderNumber(now)
		assert.Regexp(t, pattern, num)
		assert.NotContains(t, num[13:], "0")
		assert.NotContains(t, num[13:], "O")
		assert.NotContains(t, num[13:], "1")
		assert.NotContains(t, num[13:], "I")
		seen[num] = true
	}
	// 32^5 combinations; 100 draws colliding would point at a broken source.
	assert.Greater(t, len(seen), 95)
}
