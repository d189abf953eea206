package auth

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/aurelia-labs/velora-api/mailer"
	"github.com/aurelia-labs/velora-api/models"
	"github.com/aurelia-labs/velora-api/response"
)

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Phone    string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// POST /auth/register
func Register(db *gorm.DB, m *mailer.Mailer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "Failed to hash password")
			return
		}

		user := models.User{
			Name:         req.Name,
			Email:        req.Email,
			Phone:        req.Phone,
			PasswordHash: string(hash),
			Role:         models.RoleCustomer,
			Cart:         models.Cart{},
		}
		if err := db.Create(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				response.Error(c, http.StatusConflict, "Email already registered")
				return
			}
			response.Error(c, http.StatusInternalServerError, "Failed to create user")
			return
		}

		code, err := issueOTP(db, user.Email, models.OTPPurposeVerifyEmail)
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "Failed to issue verification code")
			return
		}
		if err := m.SendOTP(user.Email, code, models.OTPPurposeVerifyEmail); err != nil {
			log.Printf("failed to send verification email to %s: %v", user.Email, err)
		}

		response.OK(c, http.StatusCreated, gin.H{
			"user":    user,
			"message": "Registered. Check your email for the verification code.",
		})
	}
}

type VerifyOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required"`
}

// POST /auth/verify-otp
func VerifyOTP(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req VerifyOTPRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}

		if err := consumeOTP(db, req.Email, req.Code, models.OTPPurposeVerifyEmail); err != nil {
			if errors.Is(err, ErrOTPInvalid) {
				response.Error(c, http.StatusBadRequest, "Invalid or expired code")
				return
			}
			response.Error(c, http.StatusInternalServerError, "Failed to verify code")
			return
		}

		if err := db.Model(&models.User{}).
			Where("email = ?", req.Email).
			Update("verified", true).Error; err != nil {
			response.Error(c, http.StatusInternalServerError, "Failed to update user")
			return
		}

		response.OK(c, http.StatusOK, gin.H{"message": "Email verified"})
	}
}

// POST /auth/login
func Login(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}

		var user models.User
		if err := db.Where("email = ?", req.Email).First(&user).Error; err != nil {
			response.Error(c, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
			response.Error(c, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		if !user.Verified {
			response.Error(c, http.StatusForbidden, "Email not verified")
			return
		}

		access, refresh, err := IssueTokenPair(&user)
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "Token generation failed")
			return
		}

		response.OK(c, http.StatusOK, gin.H{
			"user":          user,
			"token":         access,
			"refresh_token": refresh,
		})
	}
}

// POST /auth/refresh
func Refresh(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RefreshRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}

		claims, err := ParseToken(req.RefreshToken)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "Invalid or expired token")
			return
		}
		if tokenType, _ := claims["token_type"].(string); tokenType != TokenTypeRefresh {
			response.Error(c, http.StatusUnauthorized, "Not a refresh token")
			return
		}
		userID, ok := UserIDFromClaims(claims)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "Invalid token claims")
			return
		}

		var user models.User
		if err := db.First(&user, userID).Error; err != nil {
			response.Error(c, http.StatusUnauthorized, "User no longer exists")
			return
		}

		access, refresh, err := IssueTokenPair(&user)
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "Token generation failed")
			return
		}

		response.OK(c, http.StatusOK, gin.H{
			"token":         access,
			"refresh_token": refresh,
		})
	}
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// POST /auth/forgot-password
func ForgotPassword(db *gorm.DB, m *mailer.Mailer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ForgotPasswordRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}

		var user models.User
		if err := db.Where("email = ?", req.Email).First(&user).Error; err != nil {
			// Do not reveal whether the email exists.
			response.OK(c, http.StatusOK, gin.H{"message": "If the email exists, a code has been sent"})
			return
		}

		code, err := issueOTP(db, user.Email, models.OTPPurposeResetPassword)
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "Failed to issue reset code")
			return
		}
		if err := m.SendOTP(user.Email, code, models.OTPPurposeResetPassword); err != nil {
			log.Printf("failed to send reset email to %s: %v", user.Email, err)
		}

		response.OK(c, http.StatusOK, gin.H{"message": "If the email exists, a code has been sent"})
	}
}

type ResetPasswordRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Code        string `json:"code" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

// POST /auth/reset-password
func ResetPassword(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ResetPasswordRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}

		if err := consumeOTP(db, req.Email, req.Code, models.OTPPurposeResetPassword); err != nil {
			if errors.Is(err, ErrOTPInvalid) {
				response.Error(c, http.StatusBadRequest, "Invalid or expired code")
				return
			}
			response.Error(c, http.StatusInternalServerError, "Failed to verify code")
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "Failed to hash password")
			return
		}
		if err := db.Model(&models.User{}).
			Where("email = ?", req.Email).
			Update("password_hash", string(hash)).Error; err != nil {
			response.Error(c, http.StatusInternalServerError, "Failed to update password")
			return
		}

		response.OK(c, http.StatusOK, gin.H{"message": "Password updated"})
	}
}
