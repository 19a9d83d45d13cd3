package services

import (
	"github.com/storeops/retaildesk/models"
	"github.com/storeops/retaildesk/utils"
)

// CreateReturn validates the request and persists the return header, its
// items and, for exchanges, the exchange items. The backing store only
// guarantees atomicity per single write, so the sequence compensates on
// failure: whatever was inserted before the failing step is deleted again in
// reverse order before the error is surfaced. Callers either see the full
// return or no trace of it.
func (s *ReturnService) CreateReturn(data CreateReturnData) (*models.Return, error) {
	sale, err := s.ValidateReturnRequest(data)
	if err != nil {
		return nil, err
	}

	lines := make(map[uint]models.SaleItem, len(sale.Items))
	for _, line := range sale.Items {
		lines[line.ID] = line
	}

	// Refund amount is derived from the items, never taken from the request.
	var refundAmount float64
	for _, item := range data.Items {
		refundAmount += item.RefundPrice * float64(item.Quantity)
	}
	var storeCreditAmount float64
	if data.RefundMethod == models.RefundMethodStoreCredit {
		storeCreditAmount = refundAmount
	}

	ret := models.Return{
		SaleID:            sale.ID,
		CustomerID:        data.CustomerID,
		ReturnType:        data.ReturnType,
		ReturnReason:      data.ReturnReason,
		Status:            models.ReturnStatusPending,
		RefundMethod:      data.RefundMethod,
		RefundAmount:      refundAmount,
		StoreCreditAmount: storeCreditAmount,
		Notes:             data.Notes,
	}
	if err := s.db.Create(&ret).Error; err != nil {
		utils.LogError("Failed to insert return header for sale %d: %v", sale.ID, err)
		return nil, &PersistenceError{Step: "return_header", Err: err}
	}
	utils.LogDebug("Inserted return header %d for sale %d", ret.ID, sale.ID)

	items := make([]models.ReturnItem, 0, len(data.Items))
	for _, item := range data.Items {
		// Original price is copied from the sale line, not from the request.
		line := lines[item.SaleItemID]
		items = append(items, models.ReturnItem{
			ReturnID:             ret.ID,
			SaleItemID:           item.SaleItemID,
			ProductID:            item.ProductID,
			Quantity:             item.Quantity,
			OriginalPrice:        line.UnitPrice,
			RefundPrice:          item.RefundPrice,
			ConditionDescription: item.ConditionDescription,
		})
	}
	if err := s.db.Create(&items).Error; err != nil {
		utils.LogError("Failed to insert return items for return %d, rolling back header: %v", ret.ID, err)
		s.compensateReturn(ret.ID, false)
		return nil, &PersistenceError{Step: "return_items", Compensated: true, Err: err}
	}
	utils.LogDebug("Inserted %d return items for return %d", len(items), ret.ID)

	if data.ReturnType == models.ReturnTypeExchange {
		exchangeItems := make([]models.ExchangeItem, 0, len(data.ExchangeItems))
		for _, ex := range data.ExchangeItems {
			exchangeItems = append(exchangeItems, models.ExchangeItem{
				ReturnID:          ret.ID,
				OriginalProductID: ex.OriginalProductID,
				NewProductID:      ex.NewProductID,
				Quantity:          ex.Quantity,
				PriceDifference:   ex.PriceDifference,
			})
		}
		if err := s.db.Create(&exchangeItems).Error; err != nil {
			utils.LogError("Failed to insert exchange items for return %d, rolling back items and header: %v", ret.ID, err)
			s.compensateReturn(ret.ID, true)
			return nil, &PersistenceError{Step: "exchange_items", Compensated: true, Err: err}
		}
		utils.LogDebug("Inserted %d exchange items for return %d", len(exchangeItems), ret.ID)
		ret.ExchangeItems = exchangeItems
	}

	ret.Items = items
	utils.LogInfo("Created return %d for sale %d (%s, refund %.2f)",
		ret.ID, sale.ID, ret.ReturnType, ret.RefundAmount)
	return &ret, nil
}

// compensateReturn deletes the partial records of a failed create in reverse
// write order. Delete failures are logged and swallowed: the original write
// error is the one the caller needs to see.
func (s *ReturnService) compensateReturn(returnID uint, withItems bool) {
	if withItems {
		if err := s.db.Where("return_id = ?", returnID).Delete(&models.ReturnItem{}).Error; err != nil {
			utils.LogError("Compensation failed to delete items of return %d: %v", returnID, err)
		}
	}
	if err := s.db.Delete(&models.Return{}, returnID).Error; err != nil {
		utils.LogError("Compensation failed to delete header of return %d: %v", returnID, err)
	}
}
