package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/blueprint-wear/storefront-api/models"
)

const searchLimit = 10

type searchResult struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Slug       string `json:"slug"`
	PriceCents int64  `json:"priceCents"`
	Currency   string `json:"currency"`
	Thumb      string `json:"thumb"`
}

// SearchProducts handles GET /products/search?q= for the search drawer.
func SearchProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := c.Query("q")
		if query == "" {
			c.JSON(http.StatusOK, gin.H{"results": []searchResult{}})
			return
		}

		likePattern := "%" + query + "%"
		var products []models.Product
		if err := db.
			Where("name ILIKE ? OR description ILIKE ?", likePattern, likePattern).
			Limit(searchLimit).
			Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search products"})
			return
		}

		results := make([]searchResult, 0, len(products))
		for _, p := range products {
			results = append(results, searchResult{
				ID:         p.ID,
				Name:       p.Name,
				Slug:       p.Slug,
				PriceCents: p.PriceCents,
				Currency:   p.Currency,
				Thumb:      p.Thumb(),
			})
		}

		c.JSON(http.StatusOK, gin.H{"results": results})
	}
}
