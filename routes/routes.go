package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/aurelia-labs/velora-api/cache"
	"github.com/aurelia-labs/velora-api/events"
	"github.com/aurelia-labs/velora-api/mailer"
)

// Deps holds the shared infrastructure handed to route groups.
// Cache, Mailer and Events may be nil; handlers degrade gracefully.
type Deps struct {
	DB     *gorm.DB
	Cache  *cache.ProductCache
	Mailer *mailer.Mailer
	Events *events.Publisher
}

// SetupRoutes registers every route group on the engine.
func SetupRoutes(r *gin.Engine, d Deps) {
	SetupAuthRoutes(r, d)
	SetupCatalogRoutes(r, d)
	SetupUserRoutes(r, d)
	SetupOrderRoutes(r, d)
	SetupPaymentRoutes(r, d)
	SetupAdminRoutes(r, d)
}
