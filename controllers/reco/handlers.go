package recoControllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func parseLimit(c *gin.Context) int {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(DefaultLimit)))
	if err != nil || limit <= 0 || limit > 24 {
		return DefaultLimit
	}
	return limit
}

// GetTrending handles GET /recommendations/trending?limit=.
func GetTrending(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := TrendingProducts(db, parseLimit(c))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute trending products"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"products": products})
	}
}

// GetSessionRecommendations handles GET /recommendations/session?session_id=.
func GetSessionRecommendations(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.Query("session_id")
		if sessionID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "session_id is required"})
			return
		}

		products, err := SessionRecommendations(db, sessionID, parseLimit(c))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute recommendations"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"products": products})
	}
}

// PostEvent handles POST /events. Always 202: event logging must never block
// or fail the storefront.
func PostEvent(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			SessionID string `json:"sessionId" binding:"required"`
			Type      string `json:"type" binding:"required,oneof=view add"`
			ProductID string `json:"productId"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		go LogEvent(db, input.SessionID, input.Type, input.ProductID)
		c.JSON(http.StatusAccepted, gin.H{"ok": true})
	}
}
