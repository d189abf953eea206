package routes

import (
	"github.com/gin-gonic/gin"

	cartControllers "github.com/aurelia-labs/velora-api/controllers/cart"
	reviewControllers "github.com/aurelia-labs/velora-api/controllers/review"
	userControllers "github.com/aurelia-labs/velora-api/controllers/user"
	wishlistControllers "github.com/aurelia-labs/velora-api/controllers/wishlist"
	"github.com/aurelia-labs/velora-api/middleware"
)

// SetupUserRoutes registers all "/user/*" endpoints. Requires a valid access token.
func SetupUserRoutes(r *gin.Engine, d Deps) {
	userGroup := r.Group("/user")
	userGroup.Use(middleware.ValidateToken)
	{
		userGroup.GET("/profile", userControllers.GetUser(d.DB))
		userGroup.PUT("/profile", userControllers.UpdateUser(d.DB))
		userGroup.PUT("/password", userControllers.ChangePassword(d.DB))

		addresses := userGroup.Group("/addresses")
		{
			addresses.GET("", userControllers.GetAddresses(d.DB))
			addresses.POST("", userControllers.CreateAddress(d.DB))
			addresses.PUT("/:id", userControllers.UpdateAddress(d.DB))
			addresses.DELETE("/:id", userControllers.DeleteAddress(d.DB))
		}

		cart := userGroup.Group("/cart")
		{
			cart.GET("", cartControllers.GetUserCart(d.DB))
			cart.POST("/items", cartControllers.UpsertCartItem(d.DB))
			cart.DELETE("/items/:productID", cartControllers.DeleteCartItem(d.DB))
			cart.DELETE("", cartControllers.ClearUserCart(d.DB))
		}

		wishlist := userGroup.Group("/wishlist")
		{
			wishlist.GET("", wishlistControllers.GetWishlist(d.DB))
			wishlist.POST("", wishlistControllers.AddToWishlist(d.DB))
			wishlist.DELETE("/:productID", wishlistControllers.RemoveFromWishlist(d.DB))
		}

		reviews := userGroup.Group("/reviews")
		{
			reviews.POST("", reviewControllers.CreateReview(d.DB))
			reviews.DELETE("/:id", reviewControllers.DeleteReview(d.DB))
		}
	}
}
