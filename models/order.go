package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Order struct {
	ID               uint            `gorm:"primaryKey" json:"id"`
	UserID           *uint           `gorm:"index" json:"user_id"`
	ReservationID    *uint           `gorm:"index" json:"reservation_id"`
	ServiceMode      ServiceMode     `gorm:"type:varchar(20);not null" json:"service_mode"`
	Subtotal         decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"subtotal"`
	Tax              decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"vat"`
	Total            decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total"`
	Status           OrderStatus     `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	Paid             bool            `gorm:"not null;default:false" json:"paid"`
	DeliveryAddress  *string         `gorm:"type:text" json:"delivery_address,omitempty"`
	ConfirmationPin  *string         `gorm:"type:varchar(8)" json:"confirmation_pin,omitempty"`
	Verified         bool            `gorm:"not null;default:false" json:"verified"`
	VerifiedAt       *time.Time      `json:"verified_at,omitempty"`
	Served           bool            `gorm:"not null;default:false" json:"served"`
	ServedAt         *time.Time      `json:"served_at,omitempty"`
	OutForDeliveryAt *time.Time      `json:"out_for_delivery_at,omitempty"`
	DeliveredAt      *time.Time      `json:"delivered_at,omitempty"`
	CreatedAt        time.Time       `gorm:"not null;index" json:"created_at"`
	UpdatedAt        time.Time       `gorm:"not null" json:"updated_at"`
	Items            []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"items"`
}

// Redacted returns a copy safe to hand to staff dashboards: the
// confirmation PIN is only ever shown to the customer who placed the order.
func (o Order) Redacted() Order {
	o.ConfirmationPin = nil
	if o.Items != nil {
		items := make([]OrderItem, len(o.Items))
		copy(items, o.Items)
		o.Items = items
	}
	return o
}

// IncompleteItems counts the items that keep the order from completing.
func (o *Order) IncompleteItems() int {
	n := 0
	for _, item := range o.Items {
		if item.Status.OrDefault() != ItemCompleted {
			n++
		}
	}
	return n
}

type OrderStatusHistory struct {
	ID         uint        `gorm:"primaryKey" json:"id"`
	OrderID    uint        `gorm:"not null;index" json:"order_id"`
	FromStatus OrderStatus `gorm:"type:varchar(20)" json:"from_status"`
	ToStatus   OrderStatus `gorm:"type:varchar(20);not null" json:"to_status"`
	ActorRole  Role        `gorm:"type:varchar(20)" json:"actor_role"`
	ActorID    *uint       `json:"actor_id,omitempty"`
	Note       string      `gorm:"type:varchar(255)" json:"note"`
	CreatedAt  time.Time   `gorm:"not null" json:"created_at"`
}

// DeliveryConfirmation is written when the customer's PIN is accepted at handoff.
type DeliveryConfirmation struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	OrderID     uint      `gorm:"not null;uniqueIndex" json:"order_id"`
	Method      string    `gorm:"type:varchar(20);not null;default:'PIN'" json:"method"`
	ConfirmedBy *uint     `json:"confirmed_by,omitempty"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
}
