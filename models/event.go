package models

import "time"

const (
	EventTypeView = "view"
	EventTypeAdd  = "add"
)

// Event is a best-effort browsing signal used by the recommendation queries.
type Event struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	SessionID string    `gorm:"index;not null" json:"sessionId"`
	Type      string    `gorm:"type:VARCHAR(10);not null" json:"type"`
	ProductID string    `gorm:"index" json:"productId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
