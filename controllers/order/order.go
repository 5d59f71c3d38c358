package orderControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/blueprint-wear/storefront-api/models"
)

// TransitionPaymentStatus flips paymentStatus from -> to with a guarded
// update. Only one of several concurrent webhook deliveries can win the
// transition; the rest see zero rows affected and skip side effects.
func TransitionPaymentStatus(db *gorm.DB, orderID string, from, to models.PaymentStatus) (bool, error) {
	res := db.Model(&models.Order{}).
		Where("id = ? AND payment_status = ?", orderID, from).
		Update("payment_status", to)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// GetOrder handles GET /orders/:id for the order-success page. A missing id
// and an unknown order get distinct friendly messages.
func GetOrder(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Param("id")
		if orderID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Order id is missing"})
			return
		}

		var order models.Order
		if err := db.Preload("Items").First(&order, "id = ?", orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "We could not find this order"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
			return
		}

		c.JSON(http.StatusOK, order)
	}
}

// ListOrders handles GET /admin/orders, newest first.
func ListOrders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		if err := db.Preload("Items").Order("created_at DESC").Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}
