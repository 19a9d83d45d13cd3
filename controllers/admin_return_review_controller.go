package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/storeops/retaildesk/config"
	"github.com/storeops/retaildesk/models"
	"github.com/storeops/retaildesk/services"
	"github.com/storeops/retaildesk/utils"
)

// ApproveReturn moves a pending return to approved
func ApproveReturn(c *gin.Context) {
	utils.LogInfo("ApproveReturn called")
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
	utils.LogDebug("Processing approval for return ID: %d by %s", returnID, staff.Username)

	svc := services.NewReturnService(config.DB)
	ret, err := svc.ApproveReturn(uint(returnID), staff.Username)
	if err != nil {
		utils.LogError("Failed to approve return %d: %v", returnID, err)
		handleServiceError(c, err)
		return
	}
	utils.LogInfo("Return %d approved by %s", ret.ID, staff.Username)

	notifyCustomer(ret, "approved",
		"Bring the merchandise to the store if you have not already. Your refund will be processed on completion.")

	utils.Success(c, "Return approved successfully", gin.H{
		"return": returnResponse(ret),
	})
}

// RejectReturn moves a pending return to rejected, recording the reason
func RejectReturn(c *gin.Context) {
	utils.LogInfo("RejectReturn called")
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
		Reason string `json:"reason" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Missing rejection reason for return %d: %v", returnID, err)
		utils.BadRequest(c, "Reason is required when rejecting a return", nil)
		return
	}
	utils.LogDebug("Processing rejection for return ID: %d by %s", returnID, staff.Username)

	svc := services.NewReturnService(config.DB)
	ret, err := svc.RejectReturn(uint(returnID), staff.Username, req.Reason)
	if err != nil {
		utils.LogError("Failed to reject return %d: %v", returnID, err)
		handleServiceError(c, err)
		return
	}
	utils.LogInfo("Return %d rejected by %s", ret.ID, staff.Username)

	notifyCustomer(ret, "rejected", "Reason: "+req.Reason)

	utils.Success(c, "Return rejected successfully", gin.H{
		"return": returnResponse(ret),
	})
}

// staffFromContext pulls the authenticated staff record set by the auth
// middleware, responding 401 itself when missing.
func staffFromContext(c *gin.Context) (models.Staff, bool) {
	staffVal, exists := c.Get("staff")
	if !exists {
		utils.LogError("Staff not found in context")
		utils.Unauthorized(c, "Unauthorized")
		return models.Staff{}, false
	}
	staff, ok := staffVal.(models.Staff)
	if !ok {
		utils.LogError("Invalid staff type in context")
		utils.Unauthorized(c, "Unauthorized")
		return models.Staff{}, false
	}
	return staff, true
}

// notifyCustomer emails the return's customer about a status change. Email
// delivery is best effort: failures are logged, never surfaced.
func notifyCustomer(ret *models.Return, status, detail string) {
	var customer models.Customer
	if err := config.DB.First(&customer, ret.CustomerID).Error; err != nil {
		utils.LogError("Failed to load customer %d for notification: %v", ret.CustomerID, err)
		return
	}
	if customer.Email == "" {
		utils.LogDebug("Customer %d has no email, skipping notification", customer.ID)
		return
	}
	if err := utils.SendReturnStatusEmail(customer.Email, customer.Name, ret.ID, status, detail); err != nil {
		utils.LogError("Failed to send %s notification for return %d: %v", status, ret.ID, err)
	}
}
