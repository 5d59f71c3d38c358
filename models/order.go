package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentStatus string
type DeliveryType string

const (
	// Payment statuses
	PaymentStatusPending PaymentStatus = "pending" // Order created, awaiting gateway callback
	PaymentStatusPaid    PaymentStatus = "paid"    // Gateway reported the payment approved
	PaymentStatusFailed  PaymentStatus = "failed"  // Gateway reported the payment declined

	// Nova Poshta delivery types
	DeliveryTypeLocker    DeliveryType = "Locker"    // Self-service postomat
	DeliveryTypeWarehouse DeliveryType = "Warehouse" // Staffed depot

	ShipmentStatusCreated = "created"
)

// Order is created once at checkout submission and only ever advanced by the
// payment webhook and the shipment path. Rows are never deleted.
type Order struct {
	ID             string        `gorm:"type:uuid;primaryKey" json:"id"`
	Number         int64         `gorm:"autoIncrement;uniqueIndex" json:"number"`
	Email          string        `gorm:"not null" json:"email"`
	Phone          string        `gorm:"not null" json:"phone"`
	CustomerName   string        `gorm:"not null" json:"customerName"`
	Address        string        `json:"address,omitempty"`
	NPCity         string        `gorm:"column:np_city" json:"np_city,omitempty"`
	NPWarehouse    string        `gorm:"column:np_warehouse" json:"np_warehouse,omitempty"`
	NPCityRef      string        `gorm:"column:np_city_ref" json:"np_city_ref,omitempty"`
	NPWarehouseRef string        `gorm:"column:np_warehouse_ref" json:"np_warehouse_ref,omitempty"`
	NPDeliveryType DeliveryType  `gorm:"column:np_delivery_type;type:VARCHAR(20);default:'Locker'" json:"np_deliveryType"`
	TotalCents     int64         `gorm:"not null" json:"totalCents"`
	Currency       string        `gorm:"type:VARCHAR(3);not null" json:"currency"`
	PaymentID      string        `json:"paymentId,omitempty"`
	PaymentStatus  PaymentStatus `gorm:"type:VARCHAR(20);default:'pending'" json:"paymentStatus"`
	ShipmentStatus string        `json:"shipmentStatus,omitempty"`
	ShipmentTTN    string        `gorm:"column:shipment_ttn" json:"shipmentTTN,omitempty"`
	Items          []OrderItem   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt      time.Time     `json:"createdAt"`
}

// OrderItem snapshots the catalog price at order-creation time; it never
// changes afterwards, even if the product price does.
type OrderItem struct {
	ID         uint   `gorm:"primaryKey" json:"-"`
	OrderID    string `gorm:"type:uuid;index" json:"-"`
	ProductID  string `gorm:"type:uuid;not null" json:"productId"`
	Name       string `gorm:"not null" json:"name"`
	Slug       string `gorm:"not null" json:"slug"`
	Size       string `json:"size,omitempty"`
	Color      string `json:"color,omitempty"`
	Qty        int    `gorm:"not null" json:"qty"`
	PriceCents int64  `gorm:"not null" json:"priceCents"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}

// HasDeliveryPoint reports whether the order carries enough Nova Poshta
// details to create a shipment.
func (o *Order) HasDeliveryPoint() bool {
	return o.NPCity != "" && o.NPWarehouse != ""
}
