package services

import (
	"gorm.io/gorm"
)

// ReturnService owns the returns ledger: request validation, the compensated
// write sequence, the status lifecycle, queries and statistics.
type ReturnService struct {
	db *gorm.DB
}

// NewReturnService creates a ReturnService backed by the given database
func NewReturnService(db *gorm.DB) *ReturnService {
	return &ReturnService{db: db}
}

// CreateReturnItemData is one returned unit-group in a create request
type CreateReturnItemData struct {
	SaleItemID           uint    `json:"sale_item_id" binding:"required"`
	ProductID            uint    `json:"product_id" binding:"required"`
	Quantity             int     `json:"quantity" binding:"required"`
	OriginalPrice        float64 `json:"original_price"`
	RefundPrice          float64 `json:"refund_price"`
	ConditionDescription string  `json:"condition_description"`
}

// CreateExchangeItemData is one product substitution in an exchange request
type CreateExchangeItemData struct {
	OriginalProductID uint    `json:"original_product_id" binding:"required"`
	NewProductID      uint    `json:"new_product_id" binding:"required"`
	Quantity          int     `json:"quantity" binding:"required"`
	PriceDifference   float64 `json:"price_difference"`
}

// CreateReturnData is the request payload for creating a return or exchange
type CreateReturnData struct {
	SaleID        uint                     `json:"sale_id" binding:"required"`
	CustomerID    uint                     `json:"customer_id" binding:"required"`
	ReturnType    string                   `json:"return_type" binding:"required"`
	ReturnReason  string                   `json:"return_reason" binding:"required"`
	RefundMethod  string                   `json:"refund_method" binding:"required"`
	Notes         string                   `json:"notes"`
	Items         []CreateReturnItemData   `json:"items"`
	ExchangeItems []CreateExchangeItemData `json:"exchange_items"`
}
