package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/blueprint-wear/storefront-api/cart"
	maibControllers "github.com/blueprint-wear/storefront-api/controllers/maib"
	npControllers "github.com/blueprint-wear/storefront-api/controllers/novaposhta"
	orderControllers "github.com/blueprint-wear/storefront-api/controllers/order"
	"github.com/blueprint-wear/storefront-api/mailer"
)

// Deps carries everything the route groups need beyond the database.
// All clients are constructed once in main.
type Deps struct {
	MAIB     *maibControllers.Client
	NP       *npControllers.Client
	Hub      *orderControllers.Hub
	Mailer   *mailer.Mailer
	CartRepo cart.Repository
}

// SetupRoutes is the single entry-point that wires up all route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB, deps Deps) {
	// Public storefront reads
	SetupProductRoutes(r, db)

	// Cart contract (server-side implementation)
	SetupCartRoutes(r, deps.CartRepo)

	// Checkout + payment webhook
	SetupPaymentRoutes(r, db, deps)

	// Nova Poshta lookups and shipment creation
	SetupShippingRoutes(r, db, deps.NP)

	// Order success page + admin surface
	SetupOrderRoutes(r, db, deps.Hub)
}
