package adminController

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/aurelia-labs/velora-api/models"
	"github.com/aurelia-labs/velora-api/response"
)

type BannerInput struct {
	Title    string `json:"title"`
	Image    string `json:"image" binding:"required"`
	LinkURL  string `json:"link_url"`
	Position int    `json:"position"`
	Active   *bool  `json:"active"`
}

// POST /admin/banners
func CreateBanner(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input BannerInput
		if err := c.ShouldBindJSON(&input); err != nil {
			response.Error(c, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}

		banner := models.Banner{
			Title:    input.Title,
			Image:    input.Image,
			LinkURL:  input.LinkURL,
			Position: input.Position,
			Active:   true,
		}
		if input.Active != nil {
			banner.Active = *input.Active
		}

		if err := db.Create(&banner).Error; err != nil {
			response.Error(c, http.StatusInternalServerError, "Failed to create banner")
			return
		}

		response.OK(c, http.StatusCreated, banner)
	}
}

// PUT /admin/banners/:id
func UpdateBanner(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var banner models.Banner
		if err := db.First(&banner, c.Param("id")).Error; err != nil {
			response.Error(c, http.StatusNotFound, "Banner not found")
			return
		}

		var input BannerInput
		if err := c.ShouldBindJSON(&input); err != nil {
			response.Error(c, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}

		banner.Title = input.Title
		banner.Image = input.Image
		banner.LinkURL = input.LinkURL
		banner.Position = input.Position
		if input.Active != nil {
			banner.Active = *input.Active
		}

		if err := db.Save(&banner).Error; err != nil {
			response.Error(c, http.StatusInternalServerError, "Failed to update banner")
			return
		}

		response.OK(c, http.StatusOK, banner)
	}
}

// GET /banners — public, active banners in display order.
func GetActiveBanners(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var banners []models.Banner
		if err := db.Where("active = ?", true).Order("position asc").Find(&banners).Error; err != nil {
			response.Error(c, http.StatusInternalServerError, "Failed to fetch banners")
			return
		}
		response.OK(c, http.StatusOK, banners)
	}
}

// GET /admin/banners
func GetBanners(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var banners []models.Banner
		if err := db.Order("position asc").Find(&banners).Error; err != nil {
			response.Error(c, http.StatusInternalServerError, "Failed to fetch banners")
			return
		}
		response.OK(c, http.StatusOK, banners)
	}
}

// DELETE /admin/banners/:id
func DeleteBanner(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		res := db.Delete(&models.Banner{}, c.Param("id"))
		if res.Error != nil {
			response.Error(c, http.StatusInternalServerError, "Failed to delete banner")
			return
		}
		if res.RowsAffected == 0 {
			response.Error(c, http.StatusNotFound, "Banner not found")
			return
		}
		response.OK(c, http.StatusOK, gin.H{"message": "Banner deleted"})
	}
}
