package reviewControllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/aurelia-labs/velora-api/middleware"
	"github.com/aurelia-labs/velora-api/models"
	"github.com/aurelia-labs/velora-api/response"
)

type ReviewInput struct {
	ProductID uint   `json:"product_id" binding:"required"`
	Rating    int    `json:"rating" binding:"required,min=1,max=5"`
	Comment   string `json:"comment"`
}

// POST /user/reviews — one review per user per product.
func CreateReview(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "Unauthorized")
			return
		}

		var input ReviewInput
		if err := c.ShouldBindJSON(&input); err != nil {
			response.Error(c, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}

		var product models.Product
		if err := db.First(&product, input.ProductID).Error; err != nil {
			response.Error(c, http.StatusBadRequest, "Product does not exist")
			return
		}

		review := models.Review{
			UserID:    userID,
			ProductID: input.ProductID,
			Rating:    input.Rating,
			Comment:   input.Comment,
		}
		if err := db.Create(&review).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				response.Error(c, http.StatusConflict, "You have already reviewed this product")
				return
			}
			response.Error(c, http.StatusInternalServerError, "Failed to create review")
			return
		}

		response.OK(c, http.StatusCreated, review)
	}
}

// GET /products/:id/reviews
func GetProductReviews(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "Invalid product ID")
			return
		}

		page, limit := response.PageParams(c)
		query := db.Model(&models.Review{}).Where("product_id = ?", productID)

		var total int64
		if err := query.Count(&total).Error; err != nil {
			response.Error(c, http.StatusInternalServerError, "Failed to fetch reviews")
			return
		}

		var reviews []models.Review
		if err := query.
			Order("created_at desc").
			Offset((page - 1) * limit).
			Limit(limit).
			Find(&reviews).Error; err != nil {
			response.Error(c, http.StatusInternalServerError, "Failed to fetch reviews")
			return
		}

		response.List(c, reviews, response.NewPagination(page, limit, total))
	}
}

// DELETE /user/reviews/:id
func DeleteReview(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "Unauthorized")
			return
		}

		res := db.Where("id = ? AND user_id = ?", c.Param("id"), userID).Delete(&models.Review{})
		if res.Error != nil {
			response.Error(c, http.StatusInternalServerError, "Failed to delete review")
			return
		}
		if res.RowsAffected == 0 {
			response.Error(c, http.StatusNotFound, "Review not found")
			return
		}

		response.OK(c, http.StatusOK, gin.H{"message": "Review deleted"})
	}
}
