package models

import (
	"time"
)

// Product is the catalog record the returns desk reads for pricing and
// restocks on completed returns.
type Product struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	SKU       string    `json:"sku" gorm:"index"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Stock     int       `json:"stock"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
