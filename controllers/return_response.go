package controllers

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/storeops/retaildesk/models"
	"github.com/storeops/retaildesk/services"
	"github.com/storeops/retaildesk/utils"
	"gorm.io/gorm"
)

// handleServiceError maps the service error taxonomy onto HTTP responses.
// Validation and state errors mean nothing was written; persistence errors
// after partial success mean the partial work was rolled back.
func handleServiceError(c *gin.Context, err error) {
	var ve *services.ValidationError
	var se *services.StateTransitionError
	var ie *services.InsufficientCreditError
	var pe *services.PersistenceError

	switch {
	case errors.As(err, &ve):
		utils.ValidationError(c, ve.Message, gin.H{"field": ve.Field})
	case errors.As(err, &se):
		utils.Conflict(c, "Return status does not permit this action", gin.H{
			"current_status":  se.Current,
			"expected_status": se.Expected,
		})
	case errors.As(err, &ie):
		utils.BadRequest(c, "Insufficient store credit balance", gin.H{
			"balance":   fmt.Sprintf("%.2f", ie.Balance),
			"requested": fmt.Sprintf("%.2f", ie.Requested),
		})
	case errors.Is(err, gorm.ErrRecordNotFound):
		utils.NotFound(c, "Record not found")
	case errors.As(err, &pe):
		utils.InternalServerError(c, "Failed to persist changes", err.Error())
	default:
		utils.InternalServerError(c, "Unexpected error", err.Error())
	}
}

// returnItemResponse shapes one return item for API responses
func returnItemResponse(item models.ReturnItem) gin.H {
	return gin.H{
		"id":                    item.ID,
		"sale_item_id":          item.SaleItemID,
		"product_id":            item.ProductID,
		"quantity":              item.Quantity,
		"original_price":        fmt.Sprintf("%.2f", item.OriginalPrice),
		"refund_price":          fmt.Sprintf("%.2f", item.RefundPrice),
		"condition_description": item.ConditionDescription,
	}
}

// returnResponse shapes a return with its items for API responses
func returnResponse(ret *models.Return) gin.H {
	items := make([]gin.H, 0, len(ret.Items))
	for _, item := range ret.Items {
		items = append(items, returnItemResponse(item))
	}

	resp := gin.H{
		"id":                  ret.ID,
		"sale_id":             ret.SaleID,
		"customer_id":         ret.CustomerID,
		"return_type":         ret.ReturnType,
		"return_reason":       ret.ReturnReason,
		"status":              ret.Status,
		"refund_method":       ret.RefundMethod,
		"refund_amount":       fmt.Sprintf("%.2f", ret.RefundAmount),
		"store_credit_amount": fmt.Sprintf("%.2f", ret.StoreCreditAmount),
		"notes":               ret.Notes,
		"created_at":          ret.CreatedAt,
		"items":               items,
	}
	if ret.ProcessedBy != "" {
		resp["processed_by"] = ret.ProcessedBy
		resp["processed_at"] = ret.ProcessedAt
	}
	if ret.ReturnType == models.ReturnTypeExchange {
		exchangeItems := make([]gin.H, 0, len(ret.ExchangeItems))
		for _, ex := range ret.ExchangeItems {
			exchangeItems = append(exchangeItems, gin.H{
				"id":                  ex.ID,
				"original_product_id": ex.OriginalProductID,
				"new_product_id":      ex.NewProductID,
				"quantity":            ex.Quantity,
				"price_difference":    fmt.Sprintf("%.2f", ex.PriceDifference),
			})
		}
		resp["exchange_items"] = exchangeItems
	}
	return resp
}
