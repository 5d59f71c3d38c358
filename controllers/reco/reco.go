package recoControllers

import (
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/blueprint-wear/storefront-api/models"
)

const (
	DefaultLimit = 4

	// Window for the trending aggregation.
	trendingWindow = 7 * 24 * time.Hour

	// Two products "go together" price-wise inside this absolute band.
	priceBandCents = 5000
)

type trendingRow struct {
	ProductID string
	Total     int64
}

// TrendingProducts ranks products by quantity sold over the trailing window.
// With no sales in the window it falls back to the newest products, so the
// storefront strip is never empty.
func TrendingProducts(db *gorm.DB, limit int) ([]models.Product, error) {
	since := time.Now().Add(-trendingWindow)

	var rows []trendingRow
	if err := db.Model(&models.OrderItem{}).
		Select("order_items.product_id AS product_id, SUM(order_items.qty) AS total").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.created_at >= ?", since).
		Group("order_items.product_id").
		Order("total DESC").
		Limit(limit).
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		var products []models.Product
		err := db.Order("created_at DESC").Limit(limit).Find(&products).Error
		return products, err
	}

	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ProductID)
	}

	var products []models.Product
	if err := db.Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, err
	}

	byID := make(map[string]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	ranked := make([]models.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			ranked = append(ranked, p)
		}
	}
	return ranked, nil
}

// ComplementaryProducts picks products sharing at least one color with the
// reference, or priced within the band around it, newest first.
func ComplementaryProducts(db *gorm.DB, productID string, limit int) ([]models.Product, error) {
	var product models.Product
	if err := db.First(&product, "id = ?", productID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	var products []models.Product
	err := db.
		Where("id <> ?", product.ID).
		Where("colors && ? OR (price_cents BETWEEN ? AND ?)",
			product.Colors,
			product.PriceCents-priceBandCents,
			product.PriceCents+priceBandCents,
		).
		Order("updated_at DESC").
		Limit(limit).
		Find(&products).Error
	return products, err
}

// SessionRecommendations follows the shopper's last browsed product; with no
// signal it falls back to trending.
func SessionRecommendations(db *gorm.DB, sessionID string, limit int) ([]models.Product, error) {
	var events []models.Event
	if err := db.
		Where("session_id = ? AND product_id <> ''", sessionID).
		Order("created_at DESC").
		Limit(10).
		Find(&events).Error; err != nil {
		return nil, err
	}

	if len(events) == 0 {
		return TrendingProducts(db, limit)
	}
	return ComplementaryProducts(db, events[0].ProductID, limit)
}

// LogEvent records a browsing signal. Fire-and-forget: failures are logged
// and discarded, never surfaced to the caller.
func LogEvent(db *gorm.DB, sessionID, eventType, productID string) {
	event := models.Event{
		SessionID: sessionID,
		Type:      eventType,
		ProductID: productID,
	}
	if err := db.Create(&event).Error; err != nil {
		log.Printf("Failed to log event: %v", err)
	}
}
