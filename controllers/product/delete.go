package productcontroller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/aurelia-labs/velora-api/cache"
	"github.com/aurelia-labs/velora-api/models"
	"github.com/aurelia-labs/velora-api/response"
)

// DELETE /admin/products/:id — soft delete, keeps order history intact.
func DeleteProduct(db *gorm.DB, pc *cache.ProductCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "Invalid product ID")
			return
		}

		res := db.Delete(&models.Product{}, id)
		if res.Error != nil {
			response.Error(c, http.StatusInternalServerError, "Failed to delete product")
			return
		}
		if res.RowsAffected == 0 {
			response.Error(c, http.StatusNotFound, "Product not found")
			return
		}

		pc.Invalidate(c.Request.Context(), uint(id))
		response.OK(c, http.StatusOK, gin.H{"message": "Product deleted"})
	}
}
