package models

import (
	"time"
)

// Return type constants
const (
	ReturnTypeReturn   = "return"
	ReturnTypeExchange = "exchange"
)

// Return reason constants
const (
	ReturnReasonDefective  = "defective"
	ReturnReasonWrongSize  = "wrong_size"
	ReturnReasonWrongColor = "wrong_color"
	ReturnReasonNotLiked   = "not_liked"
	ReturnReasonOther      = "other"
)

// Return status constants
const (
	ReturnStatusPending   = "pending"
	ReturnStatusApproved  = "approved"
	ReturnStatusRejected  = "rejected"
	ReturnStatusCompleted = "completed"
)

// Refund method constants
const (
	RefundMethodSamePayment = "same_payment"
	RefundMethodStoreCredit = "store_credit"
	RefundMethodExchange    = "exchange"
)

// Return represents one customer return/exchange event against a prior sale.
type Return struct {
	ID                uint           `gorm:"primaryKey" json:"id"`
	SaleID            uint           `json:"sale_id" gorm:"index"`
	Sale              Sale           `json:"-" gorm:"foreignKey:SaleID"`
	CustomerID        uint           `json:"customer_id" gorm:"index"`
	Customer          Customer       `json:"-" gorm:"foreignKey:CustomerID"`
	ReturnType        string         `json:"return_type"`
	ReturnReason      string         `json:"return_reason"`
	Status            string         `json:"status"`
	RefundMethod      string         `json:"refund_method"`
	RefundAmount      float64        `json:"refund_amount"`
	StoreCreditAmount float64        `json:"store_credit_amount"`
	Notes             string         `json:"notes,omitempty"`
	ProcessedBy       string         `json:"processed_by,omitempty"`
	ProcessedAt       *time.Time     `json:"processed_at,omitempty"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	Items             []ReturnItem   `json:"items" gorm:"foreignKey:ReturnID"`
	ExchangeItems     []ExchangeItem `json:"exchange_items,omitempty" gorm:"foreignKey:ReturnID"`
}

// ReturnItem represents one returned unit-group within a return.
// OriginalPrice is copied from the sale line at creation and never changes.
type ReturnItem struct {
	ID                   uint    `gorm:"primaryKey" json:"id"`
	ReturnID             uint    `json:"return_id" gorm:"index"`
	SaleItemID           uint    `json:"sale_item_id"`
	ProductID            uint    `json:"product_id"`
	Product              Product `json:"product" gorm:"foreignKey:ProductID"`
	Quantity             int     `json:"quantity"`
	OriginalPrice        float64 `json:"original_price"`
	RefundPrice          float64 `json:"refund_price"`
	ConditionDescription string  `json:"condition_description,omitempty"`
}

// ExchangeItem represents one product substitution within an exchange return.
// PriceDifference is new product price minus original item price and may be
// negative.
type ExchangeItem struct {
	ID                uint    `gorm:"primaryKey" json:"id"`
	ReturnID          uint    `json:"return_id" gorm:"index"`
	OriginalProductID uint    `json:"original_product_id"`
	NewProductID      uint    `json:"new_product_id"`
	NewProduct        Product `json:"new_product" gorm:"foreignKey:NewProductID"`
	Quantity          int     `json:"quantity"`
	PriceDifference   float64 `json:"price_difference"`
}
