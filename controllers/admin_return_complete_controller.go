package controllers

import (
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"
	razorpay "github.com/razorpay/razorpay-go"
	"github.com/storeops/retaildesk/config"
	"github.com/storeops/retaildesk/models"
	"github.com/storeops/retaildesk/services"
	"github.com/storeops/retaildesk/utils"
)

// CompleteReturn moves an approved return to completed and then runs the
// collaborator side of completion: restocking resalable merchandise and
// executing the refund for the chosen method. The status transition itself
// carries no side effects; everything after it is an explicit call.
func CompleteReturn(c *gin.Context) {
	utils.LogInfo("CompleteReturn called")
	staff, ok := staffFromContext(c)
	if !ok {
		return
	}

	returnID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.LogError("Invalid return ID format: %v", err)
		utils.BadRequest(c, "Invalid return ID", nil)
		return
	}

	var req struct {
		Quality string `json:"quality" binding:"omitempty,oneof=good damaged unusable"`
	}
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		utils.LogError("Invalid request body for return %d: %v", returnID, err)
		utils.BadRequest(c, "Invalid request body", err.Error())
		return
	}
	if req.Quality == "" {
		req.Quality = "good"
	}
	utils.LogDebug("Processing completion for return ID: %d by %s, quality: %s", returnID, staff.Username, req.Quality)

	svc := services.NewReturnService(config.DB)
	ret, err := svc.CompleteReturn(uint(returnID), staff.Username)
	if err != nil {
		utils.LogError("Failed to complete return %d: %v", returnID, err)
		handleServiceError(c, err)
		return
	}
	utils.LogInfo("Return %d completed by %s", ret.ID, staff.Username)

	// Merchandise goes back on the shelf only when fit for resale.
	restocked := false
	if req.Quality == "good" {
		if err := svc.RestockReturnItems(ret); err != nil {
			utils.LogError("Restock failed for return %d: %v", ret.ID, err)
		} else {
			restocked = true
		}
	}

	refundStatus, refundDetail := executeRefund(ret)

	notifyCustomer(ret, "completed", refundDetail)

	utils.Success(c, "Return completed successfully", gin.H{
		"return":        returnResponse(ret),
		"restocked":     restocked,
		"refund_status": refundStatus,
		"refund_detail": refundDetail,
	})
}

// gatewayAmount converts a refund amount to the gateway's smallest currency
// unit. Rounded, not truncated: float products like 0.29*100 land just below
// the integer and truncation would short the customer by one unit.
func gatewayAmount(amount float64) int {
	return int(math.Round(amount * 100))
}

// executeRefund carries out the monetary side of a completed return and
// reports what happened for the response and the customer notification.
func executeRefund(ret *models.Return) (string, string) {
	switch ret.RefundMethod {
	case models.RefundMethodStoreCredit:
		creditSvc := services.NewStoreCreditService(config.DB)
		credit, err := creditSvc.Issue(services.IssueStoreCreditData{
			CustomerID: ret.CustomerID,
			Amount:     ret.StoreCreditAmount,
			Notes:      fmt.Sprintf("Issued for return #%d", ret.ID),
		})
		if err != nil {
			utils.LogError("Failed to issue store credit for return %d: %v", ret.ID, err)
			return "failed", "Store credit issuance failed and will be retried by staff."
		}
		utils.LogInfo("Issued store credit %d of %.2f for return %d", credit.ID, credit.Amount, ret.ID)
		return "completed", fmt.Sprintf("Store credit of %.2f has been added to your account.", credit.Amount)

	case models.RefundMethodSamePayment:
		var sale models.Sale
		if err := config.DB.First(&sale, ret.SaleID).Error; err != nil {
			utils.LogError("Failed to load sale %d for refund: %v", ret.SaleID, err)
			return "failed", "Refund could not be initiated; staff will process it manually."
		}
		if sale.PaymentRef == "" {
			utils.LogError("Sale %d has no payment reference, manual refund needed for return %d", sale.ID, ret.ID)
			return "manual", "The original payment cannot be refunded automatically; staff will process it manually."
		}

		client := razorpay.NewClient(os.Getenv("RAZORPAY_KEY"), os.Getenv("RAZORPAY_SECRET"))
		data := map[string]interface{}{
			"notes": map[string]interface{}{
				"return_id": fmt.Sprintf("%d", ret.ID),
			},
		}
		refund, err := client.Payment.Refund(sale.PaymentRef, gatewayAmount(ret.RefundAmount), data, nil)
		if err != nil {
			utils.LogError("Gateway refund failed for return %d, payment %s: %v", ret.ID, sale.PaymentRef, err)
			return "failed", "The refund to your original payment method failed; staff will process it manually."
		}
		utils.LogInfo("Gateway refund %v issued for return %d", refund["id"], ret.ID)
		return "completed", fmt.Sprintf("%.2f has been refunded to your original payment method.", ret.RefundAmount)

	case models.RefundMethodExchange:
		return "not_applicable", "Your exchange items are ready; any price difference is settled at the counter."
	}
	return "not_applicable", ""
}
