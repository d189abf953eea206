package userControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/aurelia-labs/velora-api/middleware"
	"github.com/aurelia-labs/velora-api/models"
	"github.com/aurelia-labs/velora-api/response"
)

type AddressInput struct {
	Label      string `json:"label"`
	Line1      string `json:"line1" binding:"required"`
	Line2      string `json:"line2"`
	City       string `json:"city" binding:"required"`
	State      string `json:"state"`
	Country    string `json:"country" binding:"required"`
	PostalCode string `json:"postal_code"`
	IsDefault  bool   `json:"is_default"`
}

// GET /user/addresses
func GetAddresses(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.UserID(c)

		var addresses []models.Address
		if err := db.Where("user_id = ?", userID).Order("is_default desc, created_at desc").Find(&addresses).Error; err != nil {
			response.Error(c, http.StatusInternalServerError, "Failed to fetch addresses")
			return
		}

		response.OK(c, http.StatusOK, addresses)
	}
}

// POST /user/addresses
func CreateAddress(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.UserID(c)

		var input AddressInput
		if err := c.ShouldBindJSON(&input); err != nil {
			response.Error(c, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}

		address := models.Address{
			UserID:     userID,
			Label:      input.Label,
			Line1:      input.Line1,
			Line2:      input.Line2,
			City:       input.City,
			State:      input.State,
			Country:    input.Country,
			PostalCode: input.PostalCode,
			IsDefault:  input.IsDefault,
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if input.IsDefault {
				if err := tx.Model(&models.Address{}).
					Where("user_id = ?", userID).
					Update("is_default", false).Error; err != nil {
					return err
				}
			}
			return tx.Create(&address).Error
		})
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "Failed to create address")
			return
		}

		response.OK(c, http.StatusCreated, address)
	}
}

// PUT /user/addresses/:id
func UpdateAddress(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.UserID(c)

		var address models.Address
		err := db.Where("id = ? AND user_id = ?", c.Param("id"), userID).First(&address).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				response.Error(c, http.StatusNotFound, "Address not found")
				return
			}
			response.Error(c, http.StatusInternalServerError, "Failed to fetch address")
			return
		}

		var input AddressInput
		if err := c.ShouldBindJSON(&input); err != nil {
			response.Error(c, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}

		address.Label = input.Label
		address.Line1 = input.Line1
		address.Line2 = input.Line2
		address.City = input.City
		address.State = input.State
		address.Country = input.Country
		address.PostalCode = input.PostalCode
		address.IsDefault = input.IsDefault

		err = db.Transaction(func(tx *gorm.DB) error {
			if input.IsDefault {
				if err := tx.Model(&models.Address{}).
					Where("user_id = ? AND id <> ?", userID, address.ID).
					Update("is_default", false).Error; err != nil {
					return err
				}
			}
			return tx.Save(&address).Error
		})
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "Failed to update address")
			return
		}

		response.OK(c, http.StatusOK, address)
	}
}

// DELETE /user/addresses/:id
func DeleteAddress(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.UserID(c)

		res := db.Where("id = ? AND user_id = ?", c.Param("id"), userID).Delete(&models.Address{})
		if res.Error != nil {
			response.Error(c, http.StatusInternalServerError, "Failed to delete address")
			return
		}
		if res.RowsAffected == 0 {
			response.Error(c, http.StatusNotFound, "Address not found")
			return
		}

		response.OK(c, http.StatusOK, gin.H{"message": "Address deleted"})
	}
}
