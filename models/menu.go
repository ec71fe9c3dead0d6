package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type MenuItem struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Name        string          `gorm:"type:varchar(255);not null" json:"name"`
	Description string          `gorm:"type:text" json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"priceEGP"`
	Category    string          `gorm:"type:varchar(100);not null;index" json:"category"`
	Image       string          `gorm:"type:varchar(255)" json:"image"`
	Popular     bool            `gorm:"not null;default:false" json:"popular"`
	Spicy       int             `gorm:"not null;default:0" json:"spicy"`
	CreatedAt   time.Time       `gorm:"not null" json:"created_at"`
}
