package wishlistControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/aurelia-labs/velora-api/middleware"
	"github.com/aurelia-labs/velora-api/models"
	"github.com/aurelia-labs/velora-api/response"
)

type WishlistInput struct {
	ProductID uint `json:"product_id" binding:"required"`
}

// GET /user/wishlist
func GetWishlist(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "Unauthorized")
			return
		}

		var items []models.WishlistItem
		if err := db.Preload("Product").Where("user_id = ?", userID).Order("created_at desc").Find(&items).Error; err != nil {
			response.Error(c, http.StatusInternalServerError, "Failed to fetch wishlist")
			return
		}

		response.OK(c, http.StatusOK, items)
	}
}

// POST /user/wishlist
func AddToWishlist(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "Unauthorized")
			return
		}

		var input WishlistInput
		if err := c.ShouldBindJSON(&input); err != nil {
			response.Error(c, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}

		var product models.Product
		if err := db.First(&product, input.ProductID).Error; err != nil {
			response.Error(c, http.StatusBadRequest, "Product does not exist")
			return
		}

		item := models.WishlistItem{UserID: userID, ProductID: input.ProductID}
		if err := db.Create(&item).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				response.Error(c, http.StatusConflict, "Product is already in your wishlist")
				return
			}
			response.Error(c, http.StatusInternalServerError, "Failed to add to wishlist")
			return
		}

		item.Product = product
		response.OK(c, http.StatusCreated, item)
	}
}

// DELETE /user/wishlist/:productID
func RemoveFromWishlist(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "Unauthorized")
			return
		}

		res := db.Where("user_id = ? AND product_id = ?", userID, c.Param("productID")).Delete(&models.WishlistItem{})
		if res.Error != nil {
			response.Error(c, http.StatusInternalServerError, "Failed to remove from wishlist")
			return
		}
		if res.RowsAffected == 0 {
			response.Error(c, http.StatusNotFound, "Wishlist item not found")
			return
		}

		response.OK(c, http.StatusOK, gin.H{"message": "Removed from wishlist"})
	}
}
