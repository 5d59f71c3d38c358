package productcontroller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/blueprint-wear/storefront-api/models"
)

const ProductPageSize = 12

// sortClause maps the public sort options onto order-by clauses.
// "featured" is simply the most recently touched products.
func sortClause(sort string) string {
	switch sort {
	case "price_asc":
		return "price_cents ASC"
	case "price_desc":
		return "price_cents DESC"
	case "new":
		return "created_at DESC"
	default: // featured
		return "updated_at DESC"
	}
}

// GetProducts handles GET /products with paging, color/size/price filters
// and sorting. One extra row is fetched to compute hasMore.
func GetProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, _ := strconv.Atoi(c.DefaultQuery("page", "0"))
		if page < 0 {
			page = 0
		}
		color := c.Query("color")
		size := c.Query("size")
		sort := c.DefaultQuery("sort", "featured")
		priceMin, _ := strconv.ParseInt(c.DefaultQuery("price_min", "0"), 10, 64)
		priceMax, _ := strconv.ParseInt(c.DefaultQuery("price_max", "0"), 10, 64)

		query := db.Model(&models.Product{})
		if color != "" {
			query = query.Where("? = ANY(colors)", color)
		}
		if size != "" {
			query = query.Where("? = ANY(sizes)", size)
		}
		if priceMin > 0 {
			query = query.Where("price_cents >= ?", priceMin)
		}
		if priceMax > 0 {
			query = query.Where("price_cents <= ?", priceMax)
		}

		var products []models.Product
		if err := query.
			Order(sortClause(sort)).
			Offset(page * ProductPageSize).
			Limit(ProductPageSize + 1).
			Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}

		hasMore := len(products) > ProductPageSize
		if hasMore {
			products = products[:ProductPageSize]
		}

		c.JSON(http.StatusOK, gin.H{
			"products": products,
			"page":     page,
			"hasMore":  hasMore,
		})
	}
}
