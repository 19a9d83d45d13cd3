package controllers

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/storeops/retaildesk/config"
	"github.com/storeops/retaildesk/services"
	"github.com/storeops/retaildesk/utils"
)

// GetReturnStats summarizes the returns ledger by reason and status
func GetReturnStats(c *gin.Context) {
	utils.LogInfo("GetReturnStats called")

	svc := services.NewReturnService(config.DB)
	stats, err := svc.GetReturnStats()
	if err != nil {
		utils.LogError("Failed to aggregate return stats: %v", err)
		handleServiceError(c, err)
		return
	}
	utils.LogDebug("Aggregated stats over %d returns", stats.TotalReturns+stats.TotalExchanges)

	utils.Success(c, "Return statistics retrieved successfully", gin.H{
		"total_returns":       stats.TotalReturns,
		"total_exchanges":     stats.TotalExchanges,
		"total_refunded":      fmt.Sprintf("%.2f", stats.TotalRefunded),
		"total_store_credits": fmt.Sprintf("%.2f", stats.TotalStoreCredits),
		"returns_by_reason":   stats.ReturnsByReason,
		"returns_by_status":   stats.ReturnsByStatus,
	})
}
