package models

import (
	"time"

	"gorm.io/gorm"
)

// StoreCredit represents a customer's running store-credit balance.
// Balance is only ever mutated through StoreCreditTransaction entries.
type StoreCredit struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	CustomerID uint           `json:"customer_id" gorm:"index"`
	Customer   Customer       `json:"-" gorm:"foreignKey:CustomerID"`
	Amount     float64        `json:"amount"`
	Balance    float64        `json:"balance"`
	ExpiresAt  *time.Time     `json:"expires_at,omitempty"`
	Notes      string         `json:"notes,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// StoreCreditTransaction represents one ledger entry against a StoreCredit
type StoreCreditTransaction struct {
	ID              uint        `gorm:"primaryKey" json:"id"`
	StoreCreditID   uint        `json:"store_credit_id" gorm:"index"`
	StoreCredit     StoreCredit `json:"-" gorm:"foreignKey:StoreCreditID"`
	TransactionType string      `json:"transaction_type"` // credit, debit
	Amount          float64     `json:"amount"`
	Description     string      `json:"description"`
	Reference       string      `json:"reference"`
	RelatedSaleID   *uint       `json:"related_sale_id,omitempty"`
	RelatedReturnID *uint       `json:"related_return_id,omitempty"`
	CreatedAt       time.Time   `json:"created_at"`
}

// TransactionType constants
const (
	TransactionTypeCredit = "credit"
	TransactionTypeDebit  = "debit"
)
