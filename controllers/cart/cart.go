package cartControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/blueprint-wear/storefront-api/cart"
)

// The browser keeps its own localStorage cart; these endpoints expose the
// same contract server-side for clients without local storage.

func sessionID(c *gin.Context) (string, bool) {
	id := c.Query("session_id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "session_id is required"})
		return "", false
	}
	return id, true
}

// GetCart handles GET /cart?session_id=.
func GetCart(repo cart.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := sessionID(c)
		if !ok {
			return
		}

		items, err := repo.Read(c.Request.Context(), id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read cart"})
			return
		}
		if items == nil {
			items = []cart.Item{}
		}
		c.JSON(http.StatusOK, gin.H{"items": items})
	}
}

// ReplaceCart handles PUT /cart?session_id= with the full item list.
func ReplaceCart(repo cart.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := sessionID(c)
		if !ok {
			return
		}

		var input struct {
			Items []cart.Item `json:"items" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		if err := repo.Write(c.Request.Context(), id, input.Items); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"items": input.Items})
	}
}

// AddItem handles POST /cart/items?session_id=, merging on (slug,size,color).
func AddItem(repo cart.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := sessionID(c)
		if !ok {
			return
		}

		var item cart.Item
		if err := c.ShouldBindJSON(&item); err != nil || item.Slug == "" || item.Qty < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cart item"})
			return
		}

		items, err := repo.Add(c.Request.Context(), id, item)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item to cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"items": items})
	}
}

// ClearCart handles DELETE /cart?session_id=.
func ClearCart(repo cart.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := sessionID(c)
		if !ok {
			return
		}

		if err := repo.Clear(c.Request.Context(), id); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}
