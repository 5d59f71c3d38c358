package checkoutControllers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	maibControllers "github.com/blueprint-wear/storefront-api/controllers/maib"
	"github.com/blueprint-wear/storefront-api/models"
)

const defaultCurrency = "MDL"

type checkoutItemInput struct {
	Slug  string `json:"slug" binding:"required"`
	Qty   int    `json:"qty" binding:"required,min=1"`
	Size  string `json:"size"`
	Color string `json:"color"`
}

type checkoutInput struct {
	Email          string              `json:"email" binding:"required,email"`
	Phone          string              `json:"phone" binding:"required,min=6"`
	CustomerName   string              `json:"customerName" binding:"required,min=2"`
	Address        string              `json:"address"`
	DeliveryType   string              `json:"deliveryType" binding:"omitempty,oneof=Locker Warehouse"`
	NPCity         string              `json:"np_city"`
	NPCityRef      string              `json:"np_city_ref"`
	NPWarehouse    string              `json:"np_warehouse"`
	NPWarehouseRef string              `json:"np_warehouse_ref"`
	Items          []checkoutItemInput `json:"items" binding:"required,min=1,dive"`
}

type fieldIssue struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

// validationIssues flattens validator errors into one issue per failing
// field, so the client can highlight all of them at once.
func validationIssues(err error) []fieldIssue {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	issues := make([]fieldIssue, 0, len(verrs))
	for _, fe := range verrs {
		issues = append(issues, fieldIssue{Field: fe.Field(), Rule: fe.Tag()})
	}
	return issues
}

// buildOrderItems re-prices every submitted line from the catalog. The
// client-held price is never trusted. Returns the slugs it could not resolve.
func buildOrderItems(items []checkoutItemInput, products []models.Product) ([]models.OrderItem, []string) {
	bySlug := make(map[string]*models.Product, len(products))
	for i := range products {
		bySlug[products[i].Slug] = &products[i]
	}

	orderItems := make([]models.OrderItem, 0, len(items))
	var missing []string
	for _, item := range items {
		product, ok := bySlug[item.Slug]
		if !ok {
			missing = append(missing, item.Slug)
			continue
		}
		orderItems = append(orderItems, models.OrderItem{
			ProductID:  product.ID,
			Name:       product.Name,
			Slug:       product.Slug,
			Size:       item.Size,
			Color:      item.Color,
			Qty:        item.Qty,
			PriceCents: product.PriceCents,
		})
	}
	return orderItems, missing
}

func orderTotal(items []models.OrderItem) int64 {
	var total int64
	for _, item := range items {
		total += item.PriceCents * int64(item.Qty)
	}
	return total
}

// Checkout handles POST /checkout: validate, re-price, persist the order with
// its items atomically, open a payment session, return the redirect.
func Checkout(db *gorm.DB, maib *maibControllers.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input checkoutInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload", "issues": validationIssues(err)})
			return
		}

		slugs := make([]string, 0, len(input.Items))
		for _, item := range input.Items {
			slugs = append(slugs, item.Slug)
		}

		var products []models.Product
		if err := db.Where("slug IN ?", slugs).Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve products"})
			return
		}

		orderItems, missing := buildOrderItems(input.Items, products)
		if len(missing) > 0 {
			// The whole order is rejected; nothing is partially created.
			c.JSON(http.StatusNotFound, gin.H{"error": "Products not found: " + strings.Join(missing, ", ")})
			return
		}

		// Currency follows the first line item, like the rest of the catalog.
		currency := defaultCurrency
		for _, p := range products {
			if p.Slug == input.Items[0].Slug {
				if p.Currency != "" {
					currency = p.Currency
				}
				break
			}
		}

		deliveryType := models.DeliveryTypeLocker
		if input.DeliveryType == string(models.DeliveryTypeWarehouse) {
			deliveryType = models.DeliveryTypeWarehouse
		}

		order := models.Order{
			Email:          input.Email,
			Phone:          input.Phone,
			CustomerName:   input.CustomerName,
			Address:        input.Address,
			NPCity:         input.NPCity,
			NPCityRef:      input.NPCityRef,
			NPWarehouse:    input.NPWarehouse,
			NPWarehouseRef: input.NPWarehouseRef,
			NPDeliveryType: deliveryType,
			TotalCents:     orderTotal(orderItems),
			Currency:       currency,
			PaymentStatus:  models.PaymentStatusPending,
			Items:          orderItems,
		}

		if err := db.Transaction(func(tx *gorm.DB) error {
			return tx.Create(&order).Error
		}); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
			return
		}

		paymentID, redirectURL, err := maib.CreatePayment(
			c.Request.Context(),
			order.ID,
			order.TotalCents,
			order.Currency,
			fmt.Sprintf("Order #%d", order.Number),
		)
		if err != nil {
			// The order stays pending; the shopper sees a retry prompt.
			log.Printf("MAIB create payment failed for order %s: %v", order.ID, err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "Payment gateway unavailable, please retry"})
			return
		}

		if err := db.Model(&order).Update("payment_id", paymentID).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store payment session"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"redirectUrl": redirectURL})
	}
}
