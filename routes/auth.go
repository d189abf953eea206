package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/aurelia-labs/velora-api/auth"
)

// SetupAuthRoutes registers all "/auth/*" endpoints.
func SetupAuthRoutes(r *gin.Engine, d Deps) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", auth.Register(d.DB, d.Mailer))
		authGroup.POST("/verify-otp", auth.VerifyOTP(d.DB))
		authGroup.POST("/login", auth.Login(d.DB))
		authGroup.POST("/refresh", auth.Refresh(d.DB))
		authGroup.POST("/forgot-password", auth.ForgotPassword(d.DB, d.Mailer))
		authGroup.POST("/reset-password", auth.ResetPassword(d.DB))
	}
}
