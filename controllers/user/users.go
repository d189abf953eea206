package userControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/aurelia-labs/velora-api/middleware"
	"github.com/aurelia-labs/velora-api/models"
	"github.com/aurelia-labs/velora-api/response"
)

type UpdateUserInput struct {
	Name  *string `json:"name"`
	Phone *string `json:"phone"`
}

// GET /user/profile
func GetUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.UserID(c)

		var user models.User
		if err := db.Preload("Addresses").First(&user, userID).Error; err != nil {
			response.Error(c, http.StatusNotFound, "User not found")
			return
		}

		response.OK(c, http.StatusOK, user)
	}
}

// PUT /user/profile
func UpdateUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.UserID(c)

		var user models.User
		if err := db.First(&user, userID).Error; err != nil {
			response.Error(c, http.StatusNotFound, "User not found")
			return
		}

		var input UpdateUserInput
		if err := c.ShouldBindJSON(&input); err != nil {
			response.Error(c, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}

		updates := make(map[string]interface{})
		if input.Name != nil {
			updates["name"] = *input.Name
		}
		if input.Phone != nil {
			updates["phone"] = *input.Phone
		}

		if len(updates) > 0 {
			if err := db.Model(&user).Updates(updates).Error; err != nil {
				response.Error(c, http.StatusInternalServerError, "Failed to update user")
				return
			}
		}

		response.OK(c, http.StatusOK, user)
	}
}

type ChangePasswordInput struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

// PUT /user/password
func ChangePassword(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.UserID(c)

		var input ChangePasswordInput
		if err := c.ShouldBindJSON(&input); err != nil {
			response.Error(c, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}

		var user models.User
		if err := db.First(&user, userID).Error; err != nil {
			response.Error(c, http.StatusNotFound, "User not found")
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.CurrentPassword)); err != nil {
			response.Error(c, http.StatusUnauthorized, "Current password is incorrect")
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "Failed to hash password")
			return
		}
		if err := db.Model(&user).Update("password_hash", string(hash)).Error; err != nil {
			response.Error(c, http.StatusInternalServerError, "Failed to update password")
			return
		}

		response.OK(c, http.StatusOK, gin.H{"message": "Password updated"})
	}
}

// GET /admin/users
func GetAllUsers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, limit := response.PageParams(c)

		var total int64
		if err := db.Model(&models.User{}).Count(&total).Error; err != nil {
			response.Error(c, http.StatusInternalServerError, "Failed to fetch users")
			return
		}

		var users []models.User
		if err := db.
			Select("id", "email", "name", "phone", "role", "verified", "created_at").
			Order("created_at desc").
			Offset((page - 1) * limit).
			Limit(limit).
			Find(&users).Error; err != nil {
			response.Error(c, http.StatusInternalServerError, "Failed to fetch users")
			return
		}

		response.List(c, users, response.NewPagination(page, limit, total))
	}
}
