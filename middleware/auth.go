package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/aurelia-labs/velora-api/auth"
	"github.com/aurelia-labs/velora-api/response"
)

// ValidateToken authenticates the request from the Authorization header
// and stores user_id, email and role on the context.
func ValidateToken(c *gin.Context) {
	tokenString := c.GetHeader("Authorization")
	if tokenString == "" {
		response.Error(c, http.StatusUnauthorized, "Authorization header is missing")
		c.Abort()
		return
	}
	tokenString = strings.TrimPrefix(tokenString, "Bearer ")

	claims, err := auth.ParseToken(tokenString)
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "Invalid or expired token")
		c.Abort()
		return
	}
	if tokenType, _ := claims["token_type"].(string); tokenType != auth.TokenTypeAccess {
		response.Error(c, http.StatusUnauthorized, "Not an access token")
		c.Abort()
		return
	}

	userID, ok := auth.UserIDFromClaims(claims)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Invalid token claims")
		c.Abort()
		return
	}

	c.Set("user_id", userID)
	c.Set("email", claims["email"])
	c.Set("role", claims["role"])

	c.Next()
}

// RequireAdmin must run after ValidateToken.
func RequireAdmin(c *gin.Context) {
	role, _ := c.Get("role")
	if role != "admin" {
		response.Error(c, http.StatusForbidden, "Admin access required")
		c.Abort()
		return
	}
	c.Next()
}

// UserID reads the authenticated user id set by ValidateToken.
func UserID(c *gin.Context) (uint, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}
