package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	npControllers "github.com/blueprint-wear/storefront-api/controllers/novaposhta"
)

func SetupShippingRoutes(r *gin.Engine, db *gorm.DB, np *npControllers.Client) {
	shipping := r.Group("/shipping")
	{
		shipping.GET("/cities", npControllers.GetCities(np))
		shipping.GET("/warehouses", npControllers.GetWarehouses(np))
		shipping.POST("/create", npControllers.CreateShipment(db, np))
	}
}
