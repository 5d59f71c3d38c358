package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/blueprint-wear/storefront-api/cart"
	cartControllers "github.com/blueprint-wear/storefront-api/controllers/cart"
)

func SetupCartRoutes(r *gin.Engine, repo cart.Repository) {
	group := r.Group("/cart")
	{
		group.GET("", cartControllers.GetCart(repo))
		group.PUT("", cartControllers.ReplaceCart(repo))
		group.DELETE("", cartControllers.ClearCart(repo))
		group.POST("/items", cartControllers.AddItem(repo))
	}
}
