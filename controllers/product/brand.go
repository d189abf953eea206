package productcontroller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/aurelia-labs/velora-api/models"
	"github.com/aurelia-labs/velora-api/response"
)

type BrandInput struct {
	Name string `json:"name" binding:"required"`
	Slug string `json:"slug"`
	Logo string `json:"logo"`
}

// POST /admin/brands
func CreateBrand(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input BrandInput
		if err := c.ShouldBindJSON(&input); err != nil {
			response.Error(c, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}

		slug := input.Slug
		if slug == "" {
			slug = Slugify(input.Name)
		}

		brand := models.Brand{Name: input.Name, Slug: slug, Logo: input.Logo}
		if err := db.Create(&brand).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				response.Error(c, http.StatusConflict, "A brand with this name or slug already exists")
				return
			}
			response.Error(c, http.StatusInternalServerError, "Failed to create brand")
			return
		}

		response.OK(c, http.StatusCreated, brand)
	}
}

// PUT /admin/brands/:id
func UpdateBrand(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var brand models.Brand
		if err := db.First(&brand, c.Param("id")).Error; err != nil {
			response.Error(c, http.StatusNotFound, "Brand not found")
			return
		}

		var input BrandInput
		if err := c.ShouldBindJSON(&input); err != nil {
			response.Error(c, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}

		brand.Name = input.Name
		if input.Slug != "" {
			brand.Slug = input.Slug
		}
		if input.Logo != "" {
			brand.Logo = input.Logo
		}

		if err := db.Save(&brand).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				response.Error(c, http.StatusConflict, "A brand with this name or slug already exists")
				return
			}
			response.Error(c, http.StatusInternalServerError, "Failed to update brand")
			return
		}

		response.OK(c, http.StatusOK, brand)
	}
}

// GET /brands
func GetAllBrands(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var brands []models.Brand
		if err := db.Order("name asc").Find(&brands).Error; err != nil {
			response.Error(c, http.StatusInternalServerError, "Failed to fetch brands")
			return
		}
		response.OK(c, http.StatusOK, brands)
	}
}

// DELETE /admin/brands/:id
func DeleteBrand(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		res := db.Delete(&models.Brand{}, c.Param("id"))
		if res.Error != nil {
			response.Error(c, http.StatusInternalServerError, "Failed to delete brand")
			return
		}
		if res.RowsAffected == 0 {
			response.Error(c, http.StatusNotFound, "Brand not found")
			return
		}
		response.OK(c, http.StatusOK, gin.H{"message": "Brand deleted"})
	}
}
