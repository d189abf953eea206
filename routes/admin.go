package routes

import (
	"github.com/gin-gonic/gin"

	adminController "github.com/aurelia-labs/velora-api/controllers/admin"
	cartControllers "github.com/aurelia-labs/velora-api/controllers/cart"
	orderControllers "github.com/aurelia-labs/velora-api/controllers/order"
	productcontroller "github.com/aurelia-labs/velora-api/controllers/product"
	userControllers "github.com/aurelia-labs/velora-api/controllers/user"
	"github.com/aurelia-labs/velora-api/middleware"
)

// SetupAdminRoutes registers all "/admin/*" endpoints. Requires an
// access token carrying the admin role.
func SetupAdminRoutes(r *gin.Engine, d Deps) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.ValidateToken, middleware.RequireAdmin)
	{
		// ─────────── User Management ───────────
		adminGroup.GET("/users", userControllers.GetAllUsers(d.DB))
		adminGroup.GET("/user-cart/:userID", cartControllers.GetAdminUserCart(d.DB))

		// ─────────── Product Management ───────────
		productAdmin := adminGroup.Group("/products")
		{
			productAdmin.POST("", productcontroller.CreateProduct(d.DB))
			productAdmin.PUT("/:id", productcontroller.UpdateProduct(d.DB, d.Cache))
			productAdmin.DELETE("/:id", productcontroller.DeleteProduct(d.DB, d.Cache))
			productAdmin.POST("/import-excel", productcontroller.ImportProductsFromExcel(d.DB))
			productAdmin.GET("/export-excel", productcontroller.ExportProductsToExcel(d.DB))
		}

		// ─────────── Category Management ───────────
		categoryAdmin := adminGroup.Group("/categories")
		{
			categoryAdmin.POST("", productcontroller.CreateCategory(d.DB))
			categoryAdmin.PUT("/:id", productcontroller.UpdateCategory(d.DB))
			categoryAdmin.DELETE("/:id", productcontroller.DeleteCategory(d.DB))
		}

		// ─────────── Brand Management ───────────
		brandAdmin := adminGroup.Group("/brands")
		{
			brandAdmin.POST("", productcontroller.CreateBrand(d.DB))
			brandAdmin.PUT("/:id", productcontroller.UpdateBrand(d.DB))
			brandAdmin.DELETE("/:id", productcontroller.DeleteBrand(d.DB))
		}

		// ─────────── Banner Management ───────────
		bannerAdmin := adminGroup.Group("/banners")
		{
			bannerAdmin.POST("", adminController.CreateBanner(d.DB))
			bannerAdmin.GET("", adminController.GetBanners(d.DB))
			bannerAdmin.PUT("/:id", adminController.UpdateBanner(d.DB))
			bannerAdmin.DELETE("/:id", adminController.DeleteBanner(d.DB))
		}

		// ─────────── Coupon Management ───────────
		couponAdmin := adminGroup.Group("/coupons")
		{
			couponAdmin.POST("", adminController.CreateCoupon(d.DB))
			couponAdmin.GET("", adminController.GetCoupons(d.DB))
			couponAdmin.PUT("/:id", adminController.UpdateCoupon(d.DB))
			couponAdmin.DELETE("/:id", adminController.DeleteCoupon(d.DB))
		}

		// ─────────── Order Management ───────────
		orderAdmin := adminGroup.Group("/orders")
		{
			orderAdmin.GET("", orderControllers.GetAllOrdersHandler(d.DB))
			orderAdmin.GET("/ws", orderControllers.OrderWebSocketHandler)
			orderAdmin.GET("/:orderID", orderControllers.GetOrderByIDHandler(d.DB))
			orderAdmin.PUT("/:orderID/status", orderControllers.UpdateOrderStatusHandler(d.DB))
			orderAdmin.PUT("/:orderID/payment-status", orderControllers.UpdatePaymentStatusHandler(d.DB))
			orderAdmin.DELETE("/:orderID", orderControllers.DeleteOrderHandler(d.DB))
		}
	}
}
