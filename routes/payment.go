package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	checkoutControllers "github.com/blueprint-wear/storefront-api/controllers/checkout"
	maibControllers "github.com/blueprint-wear/storefront-api/controllers/maib"
	"github.com/blueprint-wear/storefront-api/middleware"
)

func SetupPaymentRoutes(r *gin.Engine, db *gorm.DB, deps Deps) {
	r.POST("/checkout", checkoutControllers.Checkout(db, deps.MAIB))

	// Webhook endpoint: middleware verifies the gateway signature before the
	// handler touches any state.
	r.POST("/webhooks/payment",
		middleware.MAIBWebhookAuth(deps.MAIB),
		maibControllers.WebhookHandler(db, deps.NP, deps.Hub, deps.Mailer),
	)
}
