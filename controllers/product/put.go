package productcontroller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/aurelia-labs/velora-api/cache"
	"github.com/aurelia-labs/velora-api/models"
	"github.com/aurelia-labs/velora-api/response"
)

type ProductUpdateInput struct {
	Name        *string  `json:"name"`
	Slug        *string  `json:"slug"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	SalePrice   *float64 `json:"sale_price"`
	Image       *string  `json:"image"`
	Stock       *int     `json:"stock"`
	BrandID     *uint    `json:"brand_id"`
	CategoryIDs []uint   `json:"category_ids"`
}

// PUT /admin/products/:id — partial update; only sent fields change.
func UpdateProduct(db *gorm.DB, pc *cache.ProductCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "Invalid product ID")
			return
		}

		var product models.Product
		if err := db.Preload("Categories").First(&product, id).Error; err != nil {
			response.Error(c, http.StatusNotFound, "Product not found")
			return
		}

		var input ProductUpdateInput
		if err := c.ShouldBindJSON(&input); err != nil {
			response.Error(c, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}

		if input.Name != nil {
			product.Name = *input.Name
		}
		if input.Slug != nil {
			product.Slug = *input.Slug
		}
		if input.Description != nil {
			product.Description = *input.Description
		}
		if input.Price != nil {
			if *input.Price <= 0 {
				response.Error(c, http.StatusBadRequest, "Price must be positive")
				return
			}
			product.Price = *input.Price
		}
		if input.SalePrice != nil {
			product.SalePrice = *input.SalePrice
		}
		if input.Image != nil {
			product.Image = *input.Image
		}
		if input.Stock != nil {
			if *input.Stock < 0 {
				response.Error(c, http.StatusBadRequest, "Stock cannot be negative")
				return
			}
			product.Stock = *input.Stock
		}
		if input.BrandID != nil {
			product.BrandID = input.BrandID
		}

		if len(input.CategoryIDs) > 0 {
			categories, err := loadCategories(db, input.CategoryIDs)
			if err != nil {
				response.Error(c, http.StatusInternalServerError, "Failed to fetch categories")
				return
			}
			if err := db.Model(&product).Association("Categories").Replace(categories); err != nil {
				response.Error(c, http.StatusInternalServerError, "Failed to update categories")
				return
			}
		}

		if err := db.Save(&product).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				response.Error(c, http.StatusConflict, "A product with this slug already exists")
				return
			}
			response.Error(c, http.StatusInternalServerError, "Failed to update product")
			return
		}

		pc.Invalidate(c.Request.Context(), product.ID)
		response.OK(c, http.StatusOK, product)
	}
}
