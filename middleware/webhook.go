package middleware

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/aurelia-labs/velora-api/response"
)

const webhookSignatureHeader = "X-Webhook-Signature"

// VerifyWebhookSignature checks the processor's HMAC-SHA256 signature over
// the raw request body before any handler trusts the payload.
func VerifyWebhookSignature() gin.HandlerFunc {
	secret := os.Getenv("PAYMENT_WEBHOOK_SECRET")
	if secret == "" {
		panic("PAYMENT_WEBHOOK_SECRET is not set")
	}

	return func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "failed to read request body")
			c.Abort()
			return
		}
		// Handlers downstream still need the body.
		c.Request.Body = io.NopCloser(bytes.NewReader(body))

		provided := c.GetHeader(webhookSignatureHeader)
		if provided == "" {
			response.Error(c, http.StatusBadRequest, "missing webhook signature")
			c.Abort()
			return
		}

		mac := hmac.New(sha256.New, []byte(secret))
		mac.Write(body)

		providedRaw, err := hex.DecodeString(provided)
		if err != nil || !hmac.Equal(providedRaw, mac.Sum(nil)) {
			response.Error(c, http.StatusBadRequest, "invalid webhook signature")
			c.Abort()
			return
		}

		c.Next()
	}
}
