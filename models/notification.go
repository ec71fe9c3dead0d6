package models

import (
	"time"
)

// DeliveryNotification tells delivery staff that an order is ready for pickup.
type DeliveryNotification struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	OrderID        uint       `gorm:"not null;index" json:"order_id"`
	Message        string     `gorm:"type:text;not null" json:"message"`
	Acknowledged   bool       `gorm:"not null;default:false" json:"acknowledged"`
	AcknowledgedAt *time.Time `json:"acknowledged_at,omitempty"`
	CreatedAt      time.Time  `gorm:"not null" json:"created_at"`
}
