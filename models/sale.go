package models

import (
	"time"
)

// Sale status constants
const (
	SaleStatusCompleted = "completed"
	SaleStatusVoided    = "voided"
)

// Sale is the originating transaction a return is raised against. The sales
// counter owns these records; the returns desk only reads them.
type Sale struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	CustomerID    uint       `json:"customer_id" gorm:"index"`
	Customer      Customer   `json:"customer" gorm:"foreignKey:CustomerID"`
	TotalAmount   float64    `json:"total_amount"`
	PaymentMethod string     `json:"payment_method"`
	PaymentRef    string     `json:"payment_ref,omitempty"`
	Status        string     `json:"status"`
	SoldBy        string     `json:"sold_by,omitempty"`
	SoldAt        time.Time  `json:"sold_at"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	Items         []SaleItem `json:"items" gorm:"foreignKey:SaleID"`
}

// SaleItem is one line of a sale; UnitPrice is the price actually charged.
type SaleItem struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	SaleID    uint    `json:"sale_id" gorm:"index"`
	ProductID uint    `json:"product_id"`
	Product   Product `json:"product" gorm:"foreignKey:ProductID"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Total     float64 `json:"total"`
}
