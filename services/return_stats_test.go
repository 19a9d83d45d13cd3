package services

import (
	"testing"

	"github.com/storeops/retaildesk/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetReturnStats(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReturnService(db)

	t.Run("empty ledger still reports every bucket", func(t *testing.T) {
		stats, err := svc.GetReturnStats()
		require.NoError(t, err)
		assert.Zero(t, stats.TotalReturns)
		assert.Zero(t, stats.TotalExchanges)
		assert.Len(t, stats.ReturnsByReason, 5)
		assert.Len(t, stats.ReturnsByStatus, 4)
		assert.Zero(t, stats.ReturnsByReason[models.ReturnReasonDefective])
		assert.Zero(t, stats.ReturnsByStatus[models.ReturnStatusCompleted])
	})

	t.Run("every return lands in exactly one bucket per dimension", func(t *testing.T) {
		seed := []models.Return{
			{SaleID: 1, CustomerID: 1, ReturnType: models.ReturnTypeReturn, ReturnReason: models.ReturnReasonDefective, Status: models.ReturnStatusPending, RefundMethod: models.RefundMethodSamePayment, RefundAmount: 20.00},
			{SaleID: 2, CustomerID: 1, ReturnType: models.ReturnTypeReturn, ReturnReason: models.ReturnReasonWrongSize, Status: models.ReturnStatusCompleted, RefundMethod: models.RefundMethodStoreCredit, RefundAmount: 90.00, StoreCreditAmount: 90.00},
			{SaleID: 3, CustomerID: 2, ReturnType: models.ReturnTypeExchange, ReturnReason: models.ReturnReasonWrongSize, Status: models.ReturnStatusApproved, RefundMethod: models.RefundMethodExchange, RefundAmount: 30.00},
			{SaleID: 4, CustomerID: 3, ReturnType: models.ReturnTypeReturn, ReturnReason: models.ReturnReasonNotLiked, Status: models.ReturnStatusRejected, RefundMethod: models.RefundMethodSamePayment, RefundAmount: 15.00},
		}
		for i := range seed {
			require.NoError(t, db.Create(&seed[i]).Error)
		}

		stats, err := svc.GetReturnStats()
		require.NoError(t, err)

		assert.Equal(t, 3, stats.TotalReturns)
		assert.Equal(t, 1, stats.TotalExchanges)
		assert.Equal(t, 155.00, stats.TotalRefunded)
		assert.Equal(t, 90.00, stats.TotalStoreCredits)

		assert.Equal(t, 1, stats.ReturnsByReason[models.ReturnReasonDefective])
		assert.Equal(t, 2, stats.ReturnsByReason[models.ReturnReasonWrongSize])
		assert.Equal(t, 1, stats.ReturnsByReason[models.ReturnReasonNotLiked])
		assert.Equal(t, 0, stats.ReturnsByReason[models.ReturnReasonWrongColor])

		assert.Equal(t, 1, stats.ReturnsByStatus[models.ReturnStatusPending])
		assert.Equal(t, 1, stats.ReturnsByStatus[models.ReturnStatusApproved])
		assert.Equal(t, 1, stats.ReturnsByStatus[models.ReturnStatusRejected])
		assert.Equal(t, 1, stats.ReturnsByStatus[models.ReturnStatusCompleted])

		reasonSum := 0
		for _, n := range stats.ReturnsByReason {
			reasonSum += n
		}
		statusSum := 0
		for _, n := range stats.ReturnsByStatus {
			statusSum += n
		}
		assert.Equal(t, stats.TotalReturns+stats.TotalExchanges, reasonSum)
		assert.Equal(t, stats.TotalReturns+stats.TotalExchanges, statusSum)
	})
}
