package controllers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/storeops/retaildesk/config"
	"github.com/storeops/retaildesk/services"
	"github.com/storeops/retaildesk/utils"
)

// ListReturns lists returns with optional status/type/customer/date filters
func ListReturns(c *gin.Context) {
	utils.LogInfo("ListReturns called")

	filters := services.ReturnFilters{
		Status:     c.Query("status"),
		ReturnType: c.Query("return_type"),
	}
	if customerIDStr := c.Query("customer_id"); customerIDStr != "" {
		customerID, err := strconv.ParseUint(customerIDStr, 10, 32)
		if err != nil {
			utils.LogError("Invalid customer_id filter: %s", customerIDStr)
			utils.BadRequest(c, "Invalid customer_id", nil)
			return
		}
		filters.CustomerID = uint(customerID)
	}
	if fromStr := c.Query("date_from"); fromStr != "" {
		from, err := time.Parse("2006-01-02", fromStr)
		if err != nil {
			utils.LogError("Invalid date_from filter: %s", fromStr)
			utils.BadRequest(c, "Invalid date_from", "Date must be in YYYY-MM-DD format")
			return
		}
		filters.DateFrom = &from
	}
	if toStr := c.Query("date_to"); toStr != "" {
		to, err := time.Parse("2006-01-02", toStr)
		if err != nil {
			utils.LogError("Invalid date_to filter: %s", toStr)
			utils.BadRequest(c, "Invalid date_to", "Date must be in YYYY-MM-DD format")
			return
		}
		// Include the whole end day
		to = to.Add(24*time.Hour - time.Nanosecond)
		filters.DateTo = &to
	}

	pagination := utils.NewPagination(c)
	svc := services.NewReturnService(config.DB)
	returns, total, err := svc.LoadReturns(filters, pagination.Offset, pagination.Limit)
	if err != nil {
		utils.LogError("Failed to load returns: %v", err)
		handleServiceError(c, err)
		return
	}
	pagination.SetTotal(total)
	utils.LogDebug("Retrieved %d returns (total %d)", len(returns), total)

	list := make([]gin.H, 0, len(returns))
	for i := range returns {
		list = append(list, returnResponse(&returns[i]))
	}

	utils.Success(c, "Returns retrieved successfully", gin.H{
		"returns":    list,
		"pagination": pagination.Meta(),
	})
}

// GetReturnDetails returns a single return with its items
func GetReturnDetails(c *gin.Context) {
	utils.LogInfo("GetReturnDetails called")

	returnID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.LogError("Invalid return ID format: %v", err)
		utils.BadRequest(c, "Invalid return ID", nil)
		return
	}

	svc := services.NewReturnService(config.DB)
	ret, err := svc.GetReturn(uint(returnID))
	if err != nil {
		utils.LogError("Return %d not found: %v", returnID, err)
		handleServiceError(c, err)
		return
	}

	utils.Success(c, "Return retrieved successfully", gin.H{
		"return": returnResponse(ret),
	})
}
