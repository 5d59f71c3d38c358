package maibControllers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	npControllers "github.com/blueprint-wear/storefront-api/controllers/novaposhta"
	orderControllers "github.com/blueprint-wear/storefront-api/controllers/order"
	"github.com/blueprint-wear/storefront-api/mailer"
	"github.com/blueprint-wear/storefront-api/models"
)

// WebhookPayloadKey is where the signature middleware stores the verified
// payload for the handler.
const WebhookPayloadKey = "maibWebhookPayload"

var errOrderNotFound = errors.New("order not found")

// orderStore is the slice of persistence the webhook needs.
type orderStore interface {
	FindOrder(orderID string) (*models.Order, error)
	Transition(orderID string, from, to models.PaymentStatus) (bool, error)
	SaveShipment(orderID, ttn string) error
}

type shipmentCreator interface {
	CreateShipment(ctx context.Context, order *models.Order) (string, error)
}

type confirmationSender interface {
	SendOrderConfirmation(order models.Order) error
}

type gormOrderStore struct {
	db *gorm.DB
}

func (s gormOrderStore) FindOrder(orderID string) (*models.Order, error) {
	var order models.Order
	if err := s.db.Preload("Items").First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (s gormOrderStore) Transition(orderID string, from, to models.PaymentStatus) (bool, error) {
	return orderControllers.TransitionPaymentStatus(s.db, orderID, from, to)
}

func (s gormOrderStore) SaveShipment(orderID, ttn string) error {
	return s.db.Model(&models.Order{}).Where("id = ?", orderID).Updates(map[string]interface{}{
		"shipment_status": models.ShipmentStatusCreated,
		"shipment_ttn":    ttn,
	}).Error
}

// WebhookHandler handles POST /webhooks/payment. The signature has already
// been verified by middleware; nothing here runs on an unauthenticated body.
func WebhookHandler(db *gorm.DB, np *npControllers.Client, hub *orderControllers.Hub, mail *mailer.Mailer) gin.HandlerFunc {
	var sender confirmationSender
	if mail != nil {
		sender = mail
	}
	return webhookHandler(gormOrderStore{db: db}, np, hub, sender)
}

// webhookHandler advances the order payment state machine:
// pending -> paid on "approved", pending -> failed on "declined", both
// guarded so only one of several concurrent deliveries wins the transition.
//
// Shipment creation after an approved payment is best-effort: a carrier
// failure is logged and the order stays paid without a TTN, to be retried
// via POST /shipping/create.
func webhookHandler(store orderStore, shipper shipmentCreator, hub *orderControllers.Hub, mail confirmationSender) gin.HandlerFunc {
	return func(c *gin.Context) {
		payload := c.MustGet(WebhookPayloadKey).(map[string]interface{})

		orderID, _ := payload["orderId"].(string)
		status, _ := payload["status"].(string)
		if orderID == "" || status == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload"})
			return
		}

		switch status {
		case "approved":
			order, err := store.FindOrder(orderID)
			if err != nil {
				if errors.Is(err, errOrderNotFound) {
					c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
					return
				}
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
				return
			}

			transitioned, err := store.Transition(orderID, models.PaymentStatusPending, models.PaymentStatusPaid)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order"})
				return
			}
			if !transitioned {
				// Replayed delivery; the first one already did the work.
				log.Printf("Duplicate approved webhook for order %s ignored", orderID)
				break
			}
			order.PaymentStatus = models.PaymentStatusPaid

			if order.HasDeliveryPoint() {
				createShipment(store, shipper, order)
			}

			hub.BroadcastPaidOrder(*order)
			if mail != nil {
				go func(order models.Order) {
					if err := mail.SendOrderConfirmation(order); err != nil {
						log.Printf("Failed to send confirmation for order %s: %v", order.ID, err)
					}
				}(*order)
			}

		case "declined":
			transitioned, err := store.Transition(orderID, models.PaymentStatusPending, models.PaymentStatusFailed)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order"})
				return
			}
			if !transitioned {
				// Unknown order or a replay; keep it visible in the logs.
				log.Printf("Declined webhook for order %s matched no pending order", orderID)
			}

		default:
			// Unknown gateway statuses are acknowledged as no-ops so new
			// MAIB statuses never bounce as errors.
			log.Printf("Ignoring webhook status %q for order %s", status, orderID)
		}

		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

func createShipment(store orderStore, shipper shipmentCreator, order *models.Order) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	ttn, err := shipper.CreateShipment(ctx, order)
	if err != nil {
		// Payment confirmation must not be reverted over a carrier failure.
		log.Printf("Nova Poshta shipment for order %s failed: %v", order.ID, err)
		return
	}

	if err := store.SaveShipment(order.ID, ttn); err != nil {
		log.Printf("Failed to store TTN for order %s: %v", order.ID, err)
		return
	}
	order.ShipmentStatus = models.ShipmentStatusCreated
	order.ShipmentTTN = ttn
}
