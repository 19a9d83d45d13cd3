package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/storeops/retaildesk/config"
	"github.com/storeops/retaildesk/models"
	"github.com/storeops/retaildesk/services"
	"github.com/storeops/retaildesk/utils"
)

// CreateReturn records a new return or exchange request against a sale
func CreateReturn(c *gin.Context) {
	utils.LogInfo("CreateReturn called")
	staffVal, exists := c.Get("staff")
	if !exists {
		utils.LogError("Staff not found in context")
		utils.Unauthorized(c, "Unauthorized")
		return
	}
	staff := staffVal.(models.Staff)
	utils.LogInfo("Processing return creation by staff: %s", staff.Username)

	var req services.CreateReturnData
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid return request body: %v", err)
		utils.BadRequest(c, "Invalid request body", err.Error())
		return
	}
	utils.LogDebug("Return request received for sale ID: %d with %d items", req.SaleID, len(req.Items))

	svc := services.NewReturnService(config.DB)
	ret, err := svc.CreateReturn(req)
	if err != nil {
		utils.LogError("Failed to create return for sale ID: %d: %v", req.SaleID, err)
		handleServiceError(c, err)
		return
	}
	utils.LogInfo("Created return %d for sale %d", ret.ID, ret.SaleID)

	utils.Created(c, "Return request recorded successfully", gin.H{
		"return": returnResponse(ret),
		"note":   "The request is pending review. Refunds are processed once a manager approves and completes the return.",
	})
}
