package npControllers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/blueprint-wear/storefront-api/models"
)

const (
	filteredCityLimit   = 30
	unfilteredCityLimit = 100
)

type locationDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type,omitempty"`
}

// GetCities handles GET /shipping/cities?q=. The full city list is served
// from cache and filtered here, case-insensitively.
func GetCities(np *Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := strings.ToLower(c.Query("q"))

		cities, err := np.FetchCities(c.Request.Context())
		if err != nil {
			log.Printf("NP cities error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"cities": []locationDTO{}})
			return
		}

		limit := unfilteredCityLimit
		if query != "" {
			limit = filteredCityLimit
		}

		results := make([]locationDTO, 0, limit)
		for _, city := range cities {
			if query != "" && !strings.Contains(strings.ToLower(city.Description), query) {
				continue
			}
			results = append(results, locationDTO{ID: city.Ref, Name: city.Description})
			if len(results) == limit {
				break
			}
		}

		c.JSON(http.StatusOK, gin.H{"cities": results})
	}
}

// GetWarehouses handles GET /shipping/warehouses?cityRef=&type=.
func GetWarehouses(np *Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		cityRef := c.Query("cityRef")
		if cityRef == "" {
			c.JSON(http.StatusBadRequest, gin.H{"warehouses": []locationDTO{}})
			return
		}

		var deliveryType models.DeliveryType
		switch c.Query("type") {
		case string(models.DeliveryTypeLocker):
			deliveryType = models.DeliveryTypeLocker
		case string(models.DeliveryTypeWarehouse):
			deliveryType = models.DeliveryTypeWarehouse
		}

		warehouses, err := np.FetchWarehouses(c.Request.Context(), cityRef, deliveryType)
		if err != nil {
			log.Printf("NP warehouses error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"warehouses": []locationDTO{}})
			return
		}

		results := make([]locationDTO, 0, len(warehouses))
		for _, warehouse := range warehouses {
			results = append(results, locationDTO{
				ID:   warehouse.Ref,
				Name: warehouse.Description,
				Type: warehouse.TypeOfWarehouse,
			})
		}

		c.JSON(http.StatusOK, gin.H{"warehouses": results})
	}
}

// CreateShipment handles POST /shipping/create. It is the manual retry path
// for paid orders that did not get a TTN from the webhook flow.
func CreateShipment(db *gorm.DB, np *Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			OrderID string `json:"orderId"`
		}
		if err := c.ShouldBindJSON(&input); err != nil || input.OrderID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing orderId"})
			return
		}

		var order models.Order
		if err := db.First(&order, "id = ?", input.OrderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
			return
		}

		if !order.HasDeliveryPoint() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Order is missing Nova Poshta details"})
			return
		}

		ttn, err := np.CreateShipment(c.Request.Context(), &order)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}

		if err := db.Model(&order).Updates(map[string]interface{}{
			"shipment_status": models.ShipmentStatusCreated,
			"shipment_ttn":    ttn,
		}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store tracking number"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"ttn": ttn})
	}
}
