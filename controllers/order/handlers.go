package orderControllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/aurelia-labs/velora-api/events"
	"github.com/aurelia-labs/velora-api/mailer"
	"github.com/aurelia-labs/velora-api/middleware"
	"github.com/aurelia-labs/velora-api/models"
	"github.com/aurelia-labs/velora-api/response"
)

// POST /orders
func PlaceOrderHandler(db *gorm.DB, m *mailer.Mailer, pub *events.Publisher) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "Unauthorized")
			return
		}

		var req PlaceOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}

		order, err := PlaceOrder(db, userID, req)
		if err != nil {
			var stockErr *InsufficientStockError
			switch {
			case errors.Is(err, ErrEmptyCart):
				response.Error(c, http.StatusBadRequest, err.Error())
			case errors.Is(err, ErrCouponInvalid):
				response.Error(c, http.StatusBadRequest, err.Error())
			case errors.Is(err, ErrAddressNotFound):
				response.Error(c, http.StatusNotFound, err.Error())
			case errors.As(err, &stockErr):
				response.Error(c, http.StatusConflict, stockErr.Error())
			default:
				log.Printf("place order failed for user %d: %v", userID, err)
				response.Error(c, http.StatusInternalServerError, "Failed to place order")
			}
			return
		}

		// Post-commit side effects are best-effort: the order is already
		// durable, so none of these may fail the request.
		var user models.User
		if err := db.First(&user, userID).Error; err == nil {
			if err := m.SendOrderConfirmation(user.Email, order.OrderNumber, order.TotalAmount); err != nil {
				log.Printf("failed to send confirmation for %s: %v", order.OrderNumber, err)
			}
		}
		pub.OrderCreated(order)
		broadcastNewOrder(*order)

		response.OK(c, http.StatusCreated, order)
	}
}

// GET /orders
func GetUserOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "Unauthorized")
			return
		}

		page, limit := response.PageParams(c)
		query := db.Model(&models.Order{}).Where("user_id = ?", userID)

		var total int64
		if err := query.Count(&total).Error; err != nil {
			response.Error(c, http.StatusInternalServerError, "Failed to fetch orders")
			return
		}

		var orders []models.Order
		if err := query.
			Preload("Items").
			Order("created_at DESC").
			Offset((page - 1) * limit).
			Limit(limit).
			Find(&orders).Error; err != nil {
			response.Error(c, http.StatusInternalServerError, "Failed to fetch orders")
			return
		}

		response.List(c, orders, response.NewPagination(page, limit, total))
	}
}

// GET /orders/:orderID — accepts a numeric id or an order number.
func GetUserOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "Unauthorized")
			return
		}
		ref := c.Param("orderID")

		query := db.Preload("Items").Where("user_id = ?", userID)
		if id, err := strconv.ParseUint(ref, 10, 64); err == nil {
			query = query.Where("id = ?", id)
		} else {
			query = query.Where("order_number = ?", ref)
		}

		var order models.Order
		err := query.First(&order).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				response.Error(c, http.StatusNotFound, "Order not found")
				return
			}
			response.Error(c, http.StatusInternalServerError, "Failed to fetch order")
			return
		}

		response.OK(c, http.StatusOK, order)
	}
}

// -------- Admin handlers --------

// GET /admin/orders
func GetAllOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, limit := response.PageParams(c)

		query := db.Model(&models.Order{})
		if status := c.Query("status"); status != "" {
			mapped, err := mapOrderStatus(status)
			if err != nil {
				response.Error(c, http.StatusBadRequest, err.Error())
				return
			}
			query = query.Where("status = ?", mapped)
		}

		var total int64
		if err := query.Count(&total).Error; err != nil {
			response.Error(c, http.StatusInternalServerError, "Failed to fetch orders")
			return
		}

		var orders []models.Order
		if err := query.
			Preload("User").
			Preload("Items").
			Order("created_at DESC").
			Offset((page - 1) * limit).
			Limit(limit).
			Find(&orders).Error; err != nil {
			response.Error(c, http.StatusInternalServerError, "Failed to fetch orders")
			return
		}

		response.List(c, orders, response.NewPagination(page, limit, total))
	}
}

// GET /admin/orders/:orderID
func GetOrderByIDHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ref := c.Param("orderID")

		query := db.Preload("User").Preload("Items")
		if id, err := strconv.ParseUint(ref, 10, 64); err == nil {
			query = query.Where("id = ?", id)
		} else {
			query = query.Where("order_number = ?", ref)
		}

		var order models.Order
		err := query.First(&order).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				response.Error(c, http.StatusNotFound, "Order not found")
				return
			}
			response.Error(c, http.StatusInternalServerError, "Failed to fetch order")
			return
		}

		response.OK(c, http.StatusOK, order)
	}
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// PUT /admin/orders/:orderID/status
func UpdateOrderStatusHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Param("orderID")

		var req UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}
		newStatus, err := mapOrderStatus(req.Status)
		if err != nil {
			response.Error(c, http.StatusBadRequest, err.Error())
			return
		}

		res := db.Model(&models.Order{}).Where("id = ?", orderID).Update("status", newStatus)
		if res.Error != nil {
			response.Error(c, http.StatusInternalServerError, "Failed to update order status")
			return
		}
		if res.RowsAffected == 0 {
			response.Error(c, http.StatusNotFound, "Order not found")
			return
		}

		response.OK(c, http.StatusOK, gin.H{"message": "Order status updated"})
	}
}

type UpdatePaymentStatusRequest struct {
	PaymentStatus string `json:"payment_status" binding:"required"`
}

// PUT /admin/orders/:orderID/payment-status
func UpdatePaymentStatusHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Param("orderID")

		var req UpdatePaymentStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}
		newStatus, err := mapPaymentStatus(req.PaymentStatus)
		if err != nil {
			response.Error(c, http.StatusBadRequest, err.Error())
			return
		}

		res := db.Model(&models.Order{}).Where("id = ?", orderID).Update("payment_status", newStatus)
		if res.Error != nil {
			response.Error(c, http.StatusInternalServerError, "Failed to update payment status")
			return
		}
		if res.RowsAffected == 0 {
			response.Error(c, http.StatusNotFound, "Order not found")
			return
		}

		response.OK(c, http.StatusOK, gin.H{"message": "Payment status updated"})
	}
}

// DELETE /admin/orders/:orderID
func DeleteOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Param("orderID")

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("order_id = ?", orderID).Delete(&models.OrderItem{}).Error; err != nil {
				return err
			}
			return tx.Where("id = ?", orderID).Delete(&models.Order{}).Error
		})
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "Failed to delete order")
			return
		}

		response.OK(c, http.StatusOK, gin.H{"message": "Order deleted"})
	}
}
