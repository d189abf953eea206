package adminController

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/aurelia-labs/velora-api/models"
	"github.com/aurelia-labs/velora-api/response"
)

type CouponInput struct {
	Code           string     `json:"code" binding:"required"`
	Type           string     `json:"type" binding:"required,oneof=percent fixed"`
	Value          float64    `json:"value" binding:"required,gt=0"`
	MinOrderAmount float64    `json:"min_order_amount"`
	ExpiresAt      *time.Time `json:"expires_at"`
	Active         *bool      `json:"active"`
}

// POST /admin/coupons
func CreateCoupon(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CouponInput
		if err := c.ShouldBindJSON(&input); err != nil {
			response.Error(c, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}
		if input.Type == string(models.CouponTypePercent) && input.Value > 100 {
			response.Error(c, http.StatusBadRequest, "Percent value cannot exceed 100")
			return
		}

		coupon := models.Coupon{
			Code:           strings.ToUpper(strings.TrimSpace(input.Code)),
			Type:           models.CouponType(input.Type),
			Value:          input.Value,
			MinOrderAmount: input.MinOrderAmount,
			ExpiresAt:      input.ExpiresAt,
			Active:         true,
		}
		if input.Active != nil {
			coupon.Active = *input.Active
		}

		if err := db.Create(&coupon).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				response.Error(c, http.StatusConflict, "A coupon with this code already exists")
				return
			}
			response.Error(c, http.StatusInternalServerError, "Failed to create coupon")
			return
		}

		response.OK(c, http.StatusCreated, coupon)
	}
}

// PUT /admin/coupons/:id
func UpdateCoupon(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var coupon models.Coupon
		if err := db.First(&coupon, c.Param("id")).Error; err != nil {
			response.Error(c, http.StatusNotFound, "Coupon not found")
			return
		}

		var input CouponInput
		if err := c.ShouldBindJSON(&input); err != nil {
			response.Error(c, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}
		if input.Type == string(models.CouponTypePercent) && input.Value > 100 {
			response.Error(c, http.StatusBadRequest, "Percent value cannot exceed 100")
			return
		}

		coupon.Code = strings.ToUpper(strings.TrimSpace(input.Code))
		coupon.Type = models.CouponType(input.Type)
		coupon.Value = input.Value
		coupon.MinOrderAmount = input.MinOrderAmount
		coupon.ExpiresAt = input.ExpiresAt
		if input.Active != nil {
			coupon.Active = *input.Active
		}

		if err := db.Save(&coupon).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				response.Error(c, http.StatusConflict, "A coupon with this code already exists")
				return
			}
			response.Error(c, http.StatusInternalServerError, "Failed to update coupon")
			return
		}

		response.OK(c, http.StatusOK, coupon)
	}
}

// GET /admin/coupons
func GetCoupons(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var coupons []models.Coupon
		if err := db.Order("created_at desc").Find(&coupons).Error; err != nil {
			response.Error(c, http.StatusInternalServerError, "Failed to fetch coupons")
			return
		}
		response.OK(c, http.StatusOK, coupons)
	}
}

// DELETE /admin/coupons/:id
func DeleteCoupon(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		res := db.Delete(&models.Coupon{}, c.Param("id"))
		if res.Error != nil {
			response.Error(c, http.StatusInternalServerError, "Failed to delete coupon")
			return
		}
		if res.RowsAffected == 0 {
			response.Error(c, http.StatusNotFound, "Coupon not found")
			return
		}
		response.OK(c, http.StatusOK, gin.H{"message": "Coupon deleted"})
	}
}
