package paymentControllers

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/aurelia-labs/velora-api/middleware"
	"github.com/aurelia-labs/velora-api/models"
	"github.com/aurelia-labs/velora-api/testdb"
)

const testWebhookSecret = "whsec_test"

func newWebhookRouter(t *testing.T, db *gorm.DB) *gin.Engine {
	t.Helper()
	t.Setenv("PAYMENT_WEBHOOK_SECRET", testWebhookSecret)
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/payments/webhook", middleware.VerifyWebhookSignature(), WebhookHandler(db, nil))
	return r
}

func sign(body []byte) string {
	mac := hmac.New(sha256.New, []byte(testWebhookSecret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func postWebhook(r *gin.Engine, body []byte, signature string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/payments/webhook", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if signature != "" {
		req.Header.Set("X-Webhook-Signature", signature)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func seedOrder(t *testing.T, db *gorm.DB) models.Order {
	t.Helper()
	user := models.User{Email: fmt.Sprintf("buyer-%p@example.com", t), PasswordHash: "x"}
	require.NoError(t, db.Create(&user).Error)
	order := models.Order{
		OrderNumber:   "ORD-20260830-TESTX",
		UserID:        user.ID,
		TotalAmount:   40,
		Status:        models.OrderStatusPending,
		PaymentStatus: models.PaymentStatusPending,
	}
	require.NoError(t, db.Create(&order).Error)
	return order
}

func succeededPayload(eventID string, orderID uint) []byte {
	return []byte(fmt.Sprintf(
		`{"id":%q,"type":"payment_intent.succeeded","data":{"object":{"id":"pi_123","metadata":{"order_id":"%d"}}}}`,
		eventID, orderID,
	))
}

func TestWebhookMarksOrderPaid(t *testing.T) {
	db := testdb.New(t)
	r := newWebhookRouter(t, db)
	order := seedOrder(t, db)

	body := succeededPayload("evt_1", order.ID)
	w := postWebhook(r, body, sign(body))
	assert.Equal(t, http.StatusOK, w.Code)

	var got models.Order
	require.NoError(t, db.First(&got, order.ID).Error)
	assert.Equal(t, models.PaymentStatusPaid, got.PaymentStatus)
	assert.Equal(t, models.OrderStatusProcessing, got.Status)
	assert.Equal(t, "pi_123", got.PaymentRef)
}

func TestWebhookDuplicateEventIsIdempotent(t *testing.T) {
	db := testdb.New(t)
	r := newWebhookRouter(t, db)
	order := seedOrder(t, db)

	body := succeededPayload("evt_dup", order.ID)
	assert.Equal(t, http.StatusOK, postWebhook(r, body, sign(body)).Code)

	// Redelivery of the same event id is acknowledged without reapplying.
	w := postWebhook(r, body, sign(body))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Duplicate event ignored")

	var events int64
	require.NoError(t, db.Model(&models.WebhookEvent{}).Count(&events).Error)
	assert.Equal(t, int64(1), events)
}

func TestWebhookPaymentFailed(t *testing.T) {
	db := testdb.New(t)
	r := newWebhookRouter(t, db)
	order := seedOrder(t, db)

	body := []byte(fmt.Sprintf(
		`{"id":"evt_f","type":"payment_intent.payment_failed","data":{"object":{"id":"pi_9","metadata":{"order_id":"%d"}}}}`,
		order.ID,
	))
	w := postWebhook(r, body, sign(body))
	assert.Equal(t, http.StatusOK, w.Code)

	var got models.Order
	require.NoError(t, db.First(&got, order.ID).Error)
	assert.Equal(t, models.PaymentStatusFailed, got.PaymentStatus)
	assert.Equal(t, models.OrderStatusPending, got.Status, "failed payment must not advance the order")
}

func TestWebhookRejectsBadSignature(t *testing.T) {
	db := testdb.New(t)
	r := newWebhookRouter(t, db)
	order := seedOrder(t, db)

	body := succeededPayload("evt_bad", order.ID)

	w := postWebhook(r, body, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = postWebhook(r, body, hex.EncodeToString(bytes.Repeat([]byte{0xab}, 32)))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = postWebhook(r, body, "not-hex")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var got models.Order
	require.NoError(t, db.First(&got, order.ID).Error)
	assert.Equal(t, models.PaymentStatusPending, got.PaymentStatus, "unsigned events must not touch the order")
}

func TestWebhookIgnoresUnknownEventTypes(t *testing.T) {
	db := testdb.New(t)
	r := newWebhookRouter(t, db)

	body := []byte(`{"id":"evt_u","type":"customer.created","data":{"object":{}}}`)
	w := postWebhook(r, body, sign(body))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Event type ignored")
}

func TestWebhookUnknownOrderAcknowledged(t *testing.T) {
	db := testdb.New(t)
	r := newWebhookRouter(t, db)

	body := succeededPayload("evt_ghost", 424242)
	w := postWebhook(r, body, sign(body))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Order not found")
}
