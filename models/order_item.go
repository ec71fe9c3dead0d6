package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderItem struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	OrderID    uint `gorm:"not null;index" json:"order_id"`
	MenuItemID uint `gorm:"not null" json:"menu_item_id"`
	// MenuItemName is filled by the read views from the live menu; it is not stored.
	MenuItemName string          `gorm:"-" json:"menu_item_name,omitempty"`
	Quantity     int             `gorm:"not null" json:"quantity"`
	Price        decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Status       ItemStatus      `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	Notes        *string         `gorm:"type:text" json:"notes"`
	CreatedAt    time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"not null" json:"updated_at"`
}

func (i OrderItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
