package controllers

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/storeops/retaildesk/config"
	"github.com/storeops/retaildesk/models"
	"github.com/storeops/retaildesk/services"
	"github.com/storeops/retaildesk/utils"
)

// storeCreditResponse shapes a store credit for API responses
func storeCreditResponse(credit *models.StoreCredit) gin.H {
	resp := gin.H{
		"id":          credit.ID,
		"customer_id": credit.CustomerID,
		"amount":      fmt.Sprintf("%.2f", credit.Amount),
		"balance":     fmt.Sprintf("%.2f", credit.Balance),
		"notes":       credit.Notes,
		"created_at":  credit.CreatedAt,
	}
	if credit.ExpiresAt != nil {
		resp["expires_at"] = credit.ExpiresAt
	}
	return resp
}

// IssueStoreCredit creates a store credit for a customer
func IssueStoreCredit(c *gin.Context) {
	utils.LogInfo("IssueStoreCredit called")
	staff, ok := staffFromContext(c)
	if !ok {
		return
	}

	var req services.IssueStoreCreditData
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid store credit request: %v", err)
		utils.BadRequest(c, "Invalid request body", err.Error())
		return
	}
	utils.LogDebug("Issuing store credit of %.2f to customer %d by %s", req.Amount, req.CustomerID, staff.Username)

	svc := services.NewStoreCreditService(config.DB)
	credit, err := svc.Issue(req)
	if err != nil {
		utils.LogError("Failed to issue store credit for customer %d: %v", req.CustomerID, err)
		handleServiceError(c, err)
		return
	}
	utils.LogInfo("Store credit %d issued by %s", credit.ID, staff.Username)

	utils.Created(c, "Store credit issued successfully", gin.H{
		"store_credit": storeCreditResponse(credit),
	})
}

// RecordStoreCreditTransaction appends a debit or credit to a store credit
func RecordStoreCreditTransaction(c *gin.Context) {
	utils.LogInfo("RecordStoreCreditTransaction called")
	staff, ok := staffFromContext(c)
	if !ok {
		return
	}

	creditID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.LogError("Invalid store credit ID format: %v", err)
		utils.BadRequest(c, "Invalid store credit ID", nil)
		return
	}

	var req struct {
		TransactionType string  `json:"transaction_type" binding:"required,oneof=credit debit"`
		Amount          float64 `json:"amount" binding:"required"`
		Description     string  `json:"description" binding:"required"`
		RelatedSaleID   *uint   `json:"related_sale_id"`
		RelatedReturnID *uint   `json:"related_return_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid transaction request: %v", err)
		utils.BadRequest(c, "Invalid request body", err.Error())
		return
	}
	utils.LogDebug("Recording %s of %.2f on store credit %d by %s", req.TransactionType, req.Amount, creditID, staff.Username)

	svc := services.NewStoreCreditService(config.DB)
	transaction, err := svc.RecordTransaction(uint(creditID), req.TransactionType, req.Amount,
		req.Description, req.RelatedSaleID, req.RelatedReturnID)
	if err != nil {
		utils.LogError("Failed to record transaction on store credit %d: %v", creditID, err)
		handleServiceError(c, err)
		return
	}

	utils.Created(c, "Transaction recorded successfully", gin.H{
		"transaction": gin.H{
			"id":               transaction.ID,
			"store_credit_id":  transaction.StoreCreditID,
			"transaction_type": transaction.TransactionType,
			"amount":           fmt.Sprintf("%.2f", transaction.Amount),
			"description":      transaction.Description,
			"reference":        transaction.Reference,
		},
	})
}

// ListStoreCredits lists store credits, optionally filtered by customer
func ListStoreCredits(c *gin.Context) {
	utils.LogInfo("ListStoreCredits called")

	var customerID uint
	if customerIDStr := c.Query("customer_id"); customerIDStr != "" {
		parsed, err := strconv.ParseUint(customerIDStr, 10, 32)
		if err != nil {
			utils.LogError("Invalid customer_id filter: %s", customerIDStr)
			utils.BadRequest(c, "Invalid customer_id", nil)
			return
		}
		customerID = uint(parsed)
	}

	svc := services.NewStoreCreditService(config.DB)
	credits, err := svc.LoadStoreCredits(customerID)
	if err != nil {
		utils.LogError("Failed to load store credits: %v", err)
		handleServiceError(c, err)
		return
	}
	utils.LogDebug("Retrieved %d store credits", len(credits))

	list := make([]gin.H, 0, len(credits))
	for i := range credits {
		list = append(list, storeCreditResponse(&credits[i]))
	}

	utils.Success(c, "Store credits retrieved successfully", gin.H{
		"store_credits": list,
	})
}

// GetStoreCreditTransactions returns the ledger history of one store credit
func GetStoreCreditTransactions(c *gin.Context) {
	utils.LogInfo("GetStoreCreditTransactions called")

	creditID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.LogError("Invalid store credit ID format: %v", err)
		utils.BadRequest(c, "Invalid store credit ID", nil)
		return
	}

	svc := services.NewStoreCreditService(config.DB)
	transactions, err := svc.GetTransactions(uint(creditID))
	if err != nil {
		utils.LogError("Failed to load transactions for store credit %d: %v", creditID, err)
		handleServiceError(c, err)
		return
	}

	list := make([]gin.H, 0, len(transactions))
	for _, t := range transactions {
		entry := gin.H{
			"id":               t.ID,
			"transaction_type": t.TransactionType,
			"amount":           fmt.Sprintf("%.2f", t.Amount),
			"description":      t.Description,
			"reference":        t.Reference,
			"created_at":       t.CreatedAt,
		}
		if t.RelatedSaleID != nil {
			entry["related_sale_id"] = *t.RelatedSaleID
		}
		if t.RelatedReturnID != nil {
			entry["related_return_id"] = *t.RelatedReturnID
		}
		list = append(list, entry)
	}

	utils.Success(c, "Transactions retrieved successfully", gin.H{
		"transactions": list,
	})
}
