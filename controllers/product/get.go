package productcontroller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/blueprint-wear/storefront-api/models"
)

// GetProductBySlug returns a single product.
// URL param: /products/:slug
func GetProductBySlug(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		slug := c.Param("slug")
		if slug == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Product slug is required"})
			return
		}

		var product models.Product
		if err := db.First(&product, "slug = ?", slug).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve product"})
			}
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

// GetRecentProducts handles GET /products/recent?slug=a&slug=b for the
// recently-viewed strip, preserving the submitted slug order.
func GetRecentProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		slugs := c.QueryArray("slug")
		filtered := slugs[:0]
		for _, slug := range slugs {
			if slug != "" {
				filtered = append(filtered, slug)
			}
		}
		if len(filtered) == 0 {
			c.JSON(http.StatusOK, gin.H{"products": []models.Product{}})
			return
		}

		var products []models.Product
		if err := db.Where("slug IN ?", filtered).Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}

		bySlug := make(map[string]models.Product, len(products))
		for _, p := range products {
			bySlug[p.Slug] = p
		}

		ordered := make([]models.Product, 0, len(filtered))
		for _, slug := range filtered {
			if p, ok := bySlug[slug]; ok {
				ordered = append(ordered, p)
			}
		}

		c.JSON(http.StatusOK, gin.H{"products": ordered})
	}
}
