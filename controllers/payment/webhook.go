package paymentControllers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/aurelia-labs/velora-api/events"
	"github.com/aurelia-labs/velora-api/models"
	"github.com/aurelia-labs/velora-api/response"
)

const (
	eventPaymentSucceeded = "payment_intent.succeeded"
	eventPaymentFailed    = "payment_intent.payment_failed"
)

// WebhookEvent is the processor's event envelope. Signature verification
// happens in middleware before this payload is trusted.
type WebhookEvent struct {
	ID   string `json:"id" binding:"required"`
	Type string `json:"type" binding:"required"`
	Data struct {
		Object struct {
			ID       string `json:"id"`
			Metadata struct {
				OrderID string `json:"order_id"`
			} `json:"metadata"`
		} `json:"object"`
	} `json:"data"`
}

var errDuplicateEvent = errors.New("event already processed")

// POST /payments/webhook
//
// Each event id is applied at most once: the event row insert and the
// order update share a transaction, and a duplicate id aborts it before
// any state changes.
func WebhookHandler(db *gorm.DB, pub *events.Publisher) gin.HandlerFunc {
	return func(c *gin.Context) {
		var event WebhookEvent
		if err := c.ShouldBindJSON(&event); err != nil {
			response.Error(c, http.StatusBadRequest, "Invalid webhook payload: "+err.Error())
			return
		}

		var newPaymentStatus models.PaymentStatus
		switch event.Type {
		case eventPaymentSucceeded:
			newPaymentStatus = models.PaymentStatusPaid
		case eventPaymentFailed:
			newPaymentStatus = models.PaymentStatusFailed
		default:
			// Acknowledge unknown event types so the processor stops
			// redelivering them.
			log.Printf("ignoring unhandled webhook event type %q (%s)", event.Type, event.ID)
			response.OK(c, http.StatusOK, gin.H{"message": "Event type ignored"})
			return
		}

		orderID := event.Data.Object.Metadata.OrderID
		if orderID == "" {
			response.Error(c, http.StatusBadRequest, "Missing order_id in event metadata")
			return
		}

		var order models.Order
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&models.WebhookEvent{
				EventID:    event.ID,
				Type:       event.Type,
				ReceivedAt: time.Now(),
			}).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return errDuplicateEvent
				}
				return err
			}

			if err := tx.Where("id = ?", orderID).First(&order).Error; err != nil {
				return err
			}

			updates := map[string]interface{}{"payment_status": newPaymentStatus}
			if newPaymentStatus == models.PaymentStatusPaid {
				updates["status"] = models.OrderStatusProcessing
			}
			if event.Data.Object.ID != "" {
				updates["payment_ref"] = event.Data.Object.ID
			}
			return tx.Model(&order).Updates(updates).Error
		})

		switch {
		case errors.Is(err, errDuplicateEvent):
			response.OK(c, http.StatusOK, gin.H{"message": "Duplicate event ignored"})
			return
		case errors.Is(err, gorm.ErrRecordNotFound):
			// Order is gone; acknowledge to stop redelivery storms.
			log.Printf("webhook %s references unknown order %s", event.ID, orderID)
			response.OK(c, http.StatusOK, gin.H{"message": "Order not found, event ignored"})
			return
		case err != nil:
			response.Error(c, http.StatusInternalServerError, "Failed to process event")
			return
		}

		if newPaymentStatus == models.PaymentStatusPaid {
			pub.OrderPaid(&order)
		}
		response.OK(c, http.StatusOK, gin.H{"message": "Event processed"})
	}
}
