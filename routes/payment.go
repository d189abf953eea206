package routes

import (
	"github.com/gin-gonic/gin"

	paymentControllers "github.com/aurelia-labs/velora-api/controllers/payment"
	"github.com/aurelia-labs/velora-api/middleware"
)

// SetupPaymentRoutes registers the payment intent endpoint and the
// processor webhook. The webhook sits outside JWT auth; it is protected
// by an HMAC signature over the raw body instead.
func SetupPaymentRoutes(r *gin.Engine, d Deps) {
	payments := r.Group("/payments")
	{
		payments.POST("/orders/:orderID/intent", middleware.ValidateToken, paymentControllers.CreateIntentHandler(d.DB))
		payments.POST("/webhook", middleware.VerifyWebhookSignature(), paymentControllers.WebhookHandler(d.DB, d.Events))
	}
}
