package paymentControllers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/aurelia-labs/velora-api/middleware"
	"github.com/aurelia-labs/velora-api/models"
	"github.com/aurelia-labs/velora-api/response"
)

// transactionResponse is the processor's reply to a create call.
type transactionResponse struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Error        *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func getProcessorConfig() (apiURL, secretKey, currency string, err error) {
	apiURL = os.Getenv("PAYMENT_API_URL")
	secretKey = os.Getenv("PAYMENT_SECRET_KEY")
	currency = os.Getenv("PAYMENT_CURRENCY")
	if currency == "" {
		currency = "usd"
	}
	if apiURL == "" || secretKey == "" {
		return "", "", "", fmt.Errorf("payment processor configuration missing")
	}
	return apiURL, secretKey, currency, nil
}

// CreateTransaction asks the processor for a new card transaction and
// returns its id and the client-side secret. Amounts are sent in minor
// units with the order id in metadata so the webhook can match it back.
func CreateTransaction(order *models.Order) (ref, clientSecret string, err error) {
	apiURL, secretKey, currency, err := getProcessorConfig()
	if err != nil {
		return "", "", err
	}

	payload := map[string]interface{}{
		"amount":   int64(math.Round(order.TotalAmount * 100)),
		"currency": currency,
		"metadata": map[string]string{
			"order_id":     fmt.Sprintf("%d", order.ID),
			"order_number": order.OrderNumber,
		},
	}
	jsonData, _ := json.Marshal(payload)

	req, err := http.NewRequest(http.MethodPost, apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+secretKey)

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return "", "", fmt.Errorf("failed to reach payment processor: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", "", fmt.Errorf("payment processor error (%d): %s", resp.StatusCode, string(body))
	}

	var txResp transactionResponse
	if err := json.Unmarshal(body, &txResp); err != nil {
		return "", "", fmt.Errorf("failed to parse processor response: %v", err)
	}
	if txResp.Error != nil {
		return "", "", fmt.Errorf("payment processor error: %s", txResp.Error.Message)
	}
	if txResp.ClientSecret == "" {
		return "", "", fmt.Errorf("payment processor returned empty client secret")
	}

	return txResp.ID, txResp.ClientSecret, nil
}

// POST /payments/orders/:orderID/intent
func CreateIntentHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "Unauthorized")
			return
		}
		orderID := c.Param("orderID")

		var order models.Order
		err := db.Where("id = ? AND user_id = ?", orderID, userID).First(&order).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				response.Error(c, http.StatusNotFound, "Order not found")
				return
			}
			response.Error(c, http.StatusInternalServerError, "Failed to fetch order")
			return
		}
		if order.PaymentStatus == models.PaymentStatusPaid {
			response.Error(c, http.StatusConflict, "Order is already paid")
			return
		}

		ref, clientSecret, err := CreateTransaction(&order)
		if err != nil {
			response.Error(c, http.StatusBadGateway, err.Error())
			return
		}

		if err := db.Model(&order).Update("payment_ref", ref).Error; err != nil {
			response.Error(c, http.StatusInternalServerError, "Failed to store payment reference")
			return
		}

		response.OK(c, http.StatusOK, gin.H{
			"payment_ref":   ref,
			"client_secret": clientSecret,
		})
	}
}
