package routes

import (
	"github.com/gin-gonic/gin"

	adminController "github.com/aurelia-labs/velora-api/controllers/admin"
	productcontroller "github.com/aurelia-labs/velora-api/controllers/product"
	reviewControllers "github.com/aurelia-labs/velora-api/controllers/review"
)

// SetupCatalogRoutes registers the public storefront endpoints.
func SetupCatalogRoutes(r *gin.Engine, d Deps) {
	products := r.Group("/products")
	{
		products.GET("", productcontroller.GetProducts(d.DB))
		products.GET("/:id", productcontroller.GetProductByID(d.DB, d.Cache))
		products.GET("/:id/reviews", reviewControllers.GetProductReviews(d.DB))
	}

	r.GET("/categories", productcontroller.GetAllCategories(d.DB))
	r.GET("/brands", productcontroller.GetAllBrands(d.DB))
	r.GET("/banners", adminController.GetActiveBanners(d.DB))
}
