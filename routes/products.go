package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	productcontroller "github.com/blueprint-wear/storefront-api/controllers/product"
	recoControllers "github.com/blueprint-wear/storefront-api/controllers/reco"
)

func SetupProductRoutes(r *gin.Engine, db *gorm.DB) {
	products := r.Group("/products")
	{
		products.GET("", productcontroller.GetProducts(db))
		products.GET("/search", productcontroller.SearchProducts(db))
		products.GET("/recent", productcontroller.GetRecentProducts(db))
		products.GET("/:slug", productcontroller.GetProductBySlug(db))
	}

	recommendations := r.Group("/recommendations")
	{
		recommendations.GET("/trending", recoControllers.GetTrending(db))
		recommendations.GET("/session", recoControllers.GetSessionRecommendations(db))
	}

	r.POST("/events", recoControllers.PostEvent(db))
}
