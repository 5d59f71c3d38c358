package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Product is the catalog source of truth for price and availability.
// The checkout flow only ever reads it.
type Product struct {
	ID          string         `gorm:"type:uuid;primaryKey" json:"id"`
	Slug        string         `gorm:"uniqueIndex;not null" json:"slug"`
	Name        string         `gorm:"not null" json:"name"`
	Description string         `json:"description"`
	PriceCents  int64          `gorm:"not null" json:"priceCents"`
	Currency    string         `gorm:"type:VARCHAR(3);default:'MDL'" json:"currency"`
	Images      pq.StringArray `gorm:"type:text[]" json:"images"`
	Colors      pq.StringArray `gorm:"type:text[]" json:"colors"`
	Sizes       pq.StringArray `gorm:"type:text[]" json:"sizes"`
	Stock       int            `json:"stock"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// Thumb returns the first product image, used by search results.
func (p *Product) Thumb() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}
