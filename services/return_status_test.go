package services

import (
	"testing"

	"github.com/storeops/retaildesk/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedPendingReturn(t *testing.T, svc *ReturnService, db *gorm.DB) *models.Return {
	customer, sale, item := seedSale(t, db, 2, 50.00)
	ret, err := svc.CreateReturn(validRequest(customer, sale, item))
	require.NoError(t, err)
	return ret
}

func TestReturnStatusTransitions(t *testing.T) {
	t.Run("approve stamps the acting user", func(t *testing.T) {
		db := setupTestDB(t)
		svc := NewReturnService(db)
		ret := seedPendingReturn(t, svc, db)

		approved, err := svc.ApproveReturn(ret.ID, "alice")
		require.NoError(t, err)
		assert.Equal(t, models.ReturnStatusApproved, approved.Status)
		assert.Equal(t, "alice", approved.ProcessedBy)
		require.NotNil(t, approved.ProcessedAt)
	})

	t.Run("reject overwrites notes with the reason", func(t *testing.T) {
		db := setupTestDB(t)
		svc := NewReturnService(db)
		ret := seedPendingReturn(t, svc, db)

		rejected, err := svc.RejectReturn(ret.ID, "alice", "worn merchandise")
		require.NoError(t, err)
		assert.Equal(t, models.ReturnStatusRejected, rejected.Status)
		assert.Equal(t, "worn merchandise", rejected.Notes)
	})

	t.Run("approving twice fails with the stored status", func(t *testing.T) {
		db := setupTestDB(t)
		svc := NewReturnService(db)
		ret := seedPendingReturn(t, svc, db)

		_, err := svc.ApproveReturn(ret.ID, "alice")
		require.NoError(t, err)

		_, err = svc.ApproveReturn(ret.ID, "bob")
		require.Error(t, err)
		var ste *StateTransitionError
		require.ErrorAs(t, err, &ste)
		assert.Equal(t, models.ReturnStatusApproved, ste.Current)
		assert.Equal(t, models.ReturnStatusPending, ste.Expected)
	})

	t.Run("completing before approval is illegal", func(t *testing.T) {
		db := setupTestDB(t)
		svc := NewReturnService(db)
		ret := seedPendingReturn(t, svc, db)

		_, err := svc.CompleteReturn(ret.ID, "alice")
		require.Error(t, err)
		assert.True(t, IsStateTransitionError(err))
	})

	t.Run("rejecting after approval is illegal", func(t *testing.T) {
		db := setupTestDB(t)
		svc := NewReturnService(db)
		ret := seedPendingReturn(t, svc, db)

		_, err := svc.ApproveReturn(ret.ID, "alice")
		require.NoError(t, err)

		_, err = svc.RejectReturn(ret.ID, "alice", "changed my mind")
		require.Error(t, err)
		assert.True(t, IsStateTransitionError(err))
	})

	t.Run("completed returns are terminal", func(t *testing.T) {
		db := setupTestDB(t)
		svc := NewReturnService(db)
		ret := seedPendingReturn(t, svc, db)

		_, err := svc.ApproveReturn(ret.ID, "alice")
		require.NoError(t, err)
		_, err = svc.CompleteReturn(ret.ID, "alice")
		require.NoError(t, err)

		_, err = svc.ApproveReturn(ret.ID, "alice")
		assert.True(t, IsStateTransitionError(err))
		_, err = svc.CompleteReturn(ret.ID, "alice")
		assert.True(t, IsStateTransitionError(err))
	})

	t.Run("unknown return id surfaces as not found", func(t *testing.T) {
		db := setupTestDB(t)
		svc := NewReturnService(db)

		_, err := svc.ApproveReturn(9999, "alice")
		require.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})
}

func TestRestockReturnItems(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReturnService(db)
	customer, sale, item := seedSale(t, db, 3, 20.00)

	req := validRequest(customer, sale, item)
	req.Items[0].Quantity = 2
	ret, err := svc.CreateReturn(req)
	require.NoError(t, err)

	var before models.Product
	require.NoError(t, db.First(&before, item.ProductID).Error)

	require.NoError(t, svc.RestockReturnItems(ret))

	var after models.Product
	require.NoError(t, db.First(&after, item.ProductID).Error)
	assert.Equal(t, before.Stock+2, after.Stock)
}
