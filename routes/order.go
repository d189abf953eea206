package routes

import (
	"github.com/gin-gonic/gin"

	orderControllers "github.com/aurelia-labs/velora-api/controllers/order"
	"github.com/aurelia-labs/velora-api/middleware"
)

// SetupOrderRoutes registers the customer-facing order endpoints.
func SetupOrderRoutes(r *gin.Engine, d Deps) {
	orders := r.Group("/orders")
	orders.Use(middleware.ValidateToken)
	{
		orders.POST("", orderControllers.PlaceOrderHandler(d.DB, d.Mailer, d.Events))
		orders.GET("", orderControllers.GetUserOrdersHandler(d.DB))
		orders.GET("/:orderID", orderControllers.GetUserOrderHandler(d.DB))
	}
}
