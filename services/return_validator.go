package services

import (
	"errors"
	"fmt"

	"github.com/storeops/retaildesk/models"
	"gorm.io/gorm"
)

var validReturnTypes = map[string]bool{
	models.ReturnTypeReturn:   true,
	models.ReturnTypeExchange: true,
}

var validReturnReasons = map[string]bool{
	models.ReturnReasonDefective:  true,
	models.ReturnReasonWrongSize:  true,
	models.ReturnReasonWrongColor: true,
	models.ReturnReasonNotLiked:   true,
	models.ReturnReasonOther:      true,
}

var validRefundMethods = map[string]bool{
	models.RefundMethodSamePayment: true,
	models.RefundMethodStoreCredit: true,
	models.RefundMethodExchange:    true,
}

// ValidateReturnRequest checks a candidate return against its originating
// sale. It performs no writes; a nil error means the request is safe to hand
// to the ledger writer. The returned sale carries the lines the writer copies
// original prices from.
func (s *ReturnService) ValidateReturnRequest(data CreateReturnData) (*models.Sale, error) {
	if !validReturnTypes[data.ReturnType] {
		return nil, NewValidationError("return_type", fmt.Sprintf("unknown return type %q", data.ReturnType))
	}
	if !validReturnReasons[data.ReturnReason] {
		return nil, NewValidationError("return_reason", fmt.Sprintf("unknown return reason %q", data.ReturnReason))
	}
	if !validRefundMethods[data.RefundMethod] {
		return nil, NewValidationError("refund_method", fmt.Sprintf("unknown refund method %q", data.RefundMethod))
	}
	if len(data.Items) == 0 {
		return nil, NewValidationError("items", "at least one item is required")
	}
	if data.ReturnType == models.ReturnTypeExchange && len(data.ExchangeItems) == 0 {
		return nil, NewValidationError("exchange_items", "exchange returns require at least one exchange item")
	}

	var sale models.Sale
	if err := s.db.Preload("Items").First(&sale, data.SaleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewValidationError("sale_id", fmt.Sprintf("sale %d not found", data.SaleID))
		}
		return nil, &PersistenceError{Step: "load_sale", Err: err}
	}
	if sale.CustomerID != data.CustomerID {
		return nil, NewValidationError("customer_id", "sale does not belong to this customer")
	}

	lines := make(map[uint]models.SaleItem, len(sale.Items))
	for _, line := range sale.Items {
		lines[line.ID] = line
	}

	// Quantities are bounded per sale line, not per request item, so several
	// items referencing the same line cannot jointly exceed what was sold.
	requested := make(map[uint]int, len(data.Items))
	for i, item := range data.Items {
		line, ok := lines[item.SaleItemID]
		if !ok {
			return nil, NewValidationError("items",
				fmt.Sprintf("item %d references sale line %d which is not part of sale %d", i, item.SaleItemID, sale.ID))
		}
		if line.ProductID != item.ProductID {
			return nil, NewValidationError("items",
				fmt.Sprintf("item %d product %d does not match sale line product %d", i, item.ProductID, line.ProductID))
		}
		if item.Quantity < 1 || item.Quantity > line.Quantity {
			return nil, NewValidationError("items",
				fmt.Sprintf("item %d quantity %d exceeds sold quantity %d", i, item.Quantity, line.Quantity))
		}
		requested[item.SaleItemID] += item.Quantity
		if requested[item.SaleItemID] > line.Quantity {
			return nil, NewValidationError("items",
				fmt.Sprintf("items request %d units of sale line %d in total, only %d were sold",
					requested[item.SaleItemID], item.SaleItemID, line.Quantity))
		}
		if item.RefundPrice < 0 {
			return nil, NewValidationError("items",
				fmt.Sprintf("item %d refund price cannot be negative", i))
		}
		if item.RefundPrice > line.UnitPrice {
			return nil, NewValidationError("items",
				fmt.Sprintf("item %d refund price %.2f exceeds original price %.2f", i, item.RefundPrice, line.UnitPrice))
		}
	}

	// A sale with an approved or completed return is no longer eligible;
	// pending and rejected priors do not block a new request.
	var prior int64
	if err := s.db.Model(&models.Return{}).
		Where("sale_id = ? AND status IN ?", sale.ID,
			[]string{models.ReturnStatusApproved, models.ReturnStatusCompleted}).
		Count(&prior).Error; err != nil {
		return nil, &PersistenceError{Step: "check_prior_returns", Err: err}
	}
	if prior > 0 {
		return nil, NewValidationError("sale_id",
			fmt.Sprintf("sale %d already has an approved or completed return", sale.ID))
	}

	return &sale, nil
}
