package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	orderControllers "github.com/blueprint-wear/storefront-api/controllers/order"
	"github.com/blueprint-wear/storefront-api/middleware"
)

func SetupOrderRoutes(r *gin.Engine, db *gorm.DB, hub *orderControllers.Hub) {
	r.GET("/orders/:id", orderControllers.GetOrder(db))

	// Admin surface (API-key protected)
	admin := r.Group("/admin", middleware.ValidateAPIKey)
	{
		admin.GET("/orders", orderControllers.ListOrders(db))
		admin.GET("/orders/export", orderControllers.ExportOrdersToExcel(db))
		admin.GET("/orders/stream", hub.StreamOrders())
	}
}
