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

// GET /products/:id — serves from the redis cache when one is configured.
func GetProductByID(db *gorm.DB, pc *cache.ProductCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "Invalid product ID")
			return
		}

		if cached, ok := pc.Get(c.Request.Context(), uint(id)); ok {
			response.OK(c, http.StatusOK, cached)
			return
		}

		var product models.Product
		if err := db.Preload("Categories").Preload("Brand").First(&product, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				response.Error(c, http.StatusNotFound, "Product not found")
				return
			}
			response.Error(c, http.StatusInternalServerError, "Failed to retrieve product")
			return
		}

		pc.Set(c.Request.Context(), &product)
		response.OK(c, http.StatusOK, product)
	}
}
