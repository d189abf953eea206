package cartControllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/aurelia-labs/velora-api/middleware"
	"github.com/aurelia-labs/velora-api/models"
	"github.com/aurelia-labs/velora-api/response"
)

type CartItemInput struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
}

// getOrCreateCart loads the user's cart, creating it lazily on first use.
func getOrCreateCart(db *gorm.DB, userID uint) (*models.Cart, error) {
	var cart models.Cart
	err := db.Where("user_id = ?", userID).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cart = models.Cart{UserID: userID}
		if err := db.Create(&cart).Error; err != nil {
			return nil, err
		}
		return &cart, nil
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// GET /user/cart
func GetUserCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "Unauthorized")
			return
		}

		cart, err := getOrCreateCart(db, userID)
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "Failed to fetch cart")
			return
		}
		if err := db.Preload("Items.Product").First(cart, cart.ID).Error; err != nil {
			response.Error(c, http.StatusInternalServerError, "Failed to fetch cart")
			return
		}

		response.OK(c, http.StatusOK, gin.H{
			"items":    cart.Items,
			"subtotal": cart.Subtotal(),
		})
	}
}

// POST /user/cart/items — adds the product or updates its quantity.
func UpsertCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "Unauthorized")
			return
		}

		var input CartItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			response.Error(c, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}

		var product models.Product
		if err := db.First(&product, input.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				response.Error(c, http.StatusBadRequest, "Product does not exist")
				return
			}
			response.Error(c, http.StatusInternalServerError, "Failed to validate product")
			return
		}
		if input.Quantity > product.Stock {
			response.Error(c, http.StatusBadRequest, "Requested quantity exceeds available stock")
			return
		}

		cart, err := getOrCreateCart(db, userID)
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "Failed to fetch cart")
			return
		}

		var item models.CartItem
		err = db.Where("cart_id = ? AND product_id = ?", cart.ID, input.ProductID).First(&item).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			item = models.CartItem{
				CartID:    cart.ID,
				ProductID: product.ID,
				Quantity:  input.Quantity,
				AddedAt:   time.Now(),
			}
			if err := db.Create(&item).Error; err != nil {
				response.Error(c, http.StatusInternalServerError, "Failed to add item to cart")
				return
			}
			item.Product = product
			response.OK(c, http.StatusCreated, item)
			return
		}
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "Failed to fetch cart item")
			return
		}

		item.Quantity = input.Quantity
		item.AddedAt = time.Now()
		if err := db.Save(&item).Error; err != nil {
			response.Error(c, http.StatusInternalServerError, "Failed to update cart item")
			return
		}

		item.Product = product
		response.OK(c, http.StatusOK, item)
	}
}

// DELETE /user/cart/items/:productID
func DeleteCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "Unauthorized")
			return
		}
		productID := c.Param("productID")

		var cart models.Cart
		if err := db.Where("user_id = ?", userID).First(&cart).Error; err != nil {
			response.Error(c, http.StatusNotFound, "Cart not found")
			return
		}

		res := db.Where("cart_id = ? AND product_id = ?", cart.ID, productID).Delete(&models.CartItem{})
		if res.Error != nil {
			response.Error(c, http.StatusInternalServerError, "Failed to delete item")
			return
		}
		if res.RowsAffected == 0 {
			response.Error(c, http.StatusNotFound, "Cart item not found")
			return
		}

		response.OK(c, http.StatusOK, gin.H{"message": "Cart item deleted"})
	}
}

// DELETE /user/cart
func ClearUserCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "Unauthorized")
			return
		}

		var cart models.Cart
		if err := db.Where("user_id = ?", userID).First(&cart).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				response.OK(c, http.StatusOK, gin.H{"message": "Cart cleared"})
				return
			}
			response.Error(c, http.StatusInternalServerError, "Failed to fetch cart")
			return
		}

		if err := db.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
			response.Error(c, http.StatusInternalServerError, "Failed to clear cart")
			return
		}

		response.OK(c, http.StatusOK, gin.H{"message": "Cart cleared"})
	}
}

// GET /admin/user-cart/:userID — back-office view of a customer's cart.
func GetAdminUserCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Param("userID")

		var cart models.Cart
		if err := db.Preload("Items.Product").Where("user_id = ?", userID).First(&cart).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				response.Error(c, http.StatusNotFound, "Cart not found")
				return
			}
			response.Error(c, http.StatusInternalServerError, "Failed to fetch cart")
			return
		}

		response.OK(c, http.StatusOK, gin.H{
			"items":    cart.Items,
			"subtotal": cart.Subtotal(),
		})
	}
}
