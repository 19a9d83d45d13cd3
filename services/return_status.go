package services

import (
	"errors"
	"time"

	"github.com/storeops/retaildesk/models"
	"github.com/storeops/retaildesk/utils"
	"gorm.io/gorm"
)

// transition applies a guarded status update: the row is only touched when its
// stored status still equals the expected pre-state. Running the guard inside
// the UPDATE itself closes the read-then-write race between concurrent
// reviewers; zero affected rows means someone else got there first (or the
// return never existed).
func (s *ReturnService) transition(returnID uint, expected, target, actingUser string, extra map[string]interface{}) (*models.Return, error) {
	updates := map[string]interface{}{
		"status":       target,
		"processed_by": actingUser,
		"processed_at": time.Now(),
	}
	for k, v := range extra {
		updates[k] = v
	}

	res := s.db.Model(&models.Return{}).
		Where("id = ? AND status = ?", returnID, expected).
		Updates(updates)
	if res.Error != nil {
		utils.LogError("Status update failed for return %d: %v", returnID, res.Error)
		return nil, &PersistenceError{Step: "status_update", Err: res.Error}
	}

	if res.RowsAffected == 0 {
		var current models.Return
		if err := s.db.Select("status").First(&current, returnID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, gorm.ErrRecordNotFound
			}
			return nil, &PersistenceError{Step: "status_check", Err: err}
		}
		utils.LogError("Illegal transition for return %d: status %s, expected %s", returnID, current.Status, expected)
		return nil, &StateTransitionError{
			ReturnID: returnID,
			Current:  current.Status,
			Expected: expected,
			Target:   target,
		}
	}

	var ret models.Return
	if err := s.db.Preload("Items").Preload("ExchangeItems").First(&ret, returnID).Error; err != nil {
		return nil, &PersistenceError{Step: "reload_return", Err: err}
	}
	utils.LogInfo("Return %d moved %s -> %s by %s", returnID, expected, target, actingUser)
	return &ret, nil
}

// ApproveReturn moves a pending return to approved and stamps the audit
// fields with the acting user.
func (s *ReturnService) ApproveReturn(returnID uint, actingUser string) (*models.Return, error) {
	return s.transition(returnID, models.ReturnStatusPending, models.ReturnStatusApproved, actingUser, nil)
}

// RejectReturn moves a pending return to rejected. A non-empty notes value
// overwrites the return's notes with the rejection reason.
func (s *ReturnService) RejectReturn(returnID uint, actingUser, notes string) (*models.Return, error) {
	var extra map[string]interface{}
	if notes != "" {
		extra = map[string]interface{}{"notes": notes}
	}
	return s.transition(returnID, models.ReturnStatusPending, models.ReturnStatusRejected, actingUser, extra)
}

// CompleteReturn moves an approved return to completed. Inventory restitution
// and refund execution are explicit collaborator calls made by the caller
// alongside this transition, never implicit side effects of it.
func (s *ReturnService) CompleteReturn(returnID uint, actingUser string) (*models.Return, error) {
	return s.transition(returnID, models.ReturnStatusApproved, models.ReturnStatusCompleted, actingUser, nil)
}

// RestockReturnItems puts the returned quantities back into product stock.
// Called by the completion workflow for merchandise fit for resale; each
// product row is adjusted with a single atomic increment.
func (s *ReturnService) RestockReturnItems(ret *models.Return) error {
	for _, item := range ret.Items {
		if err := s.db.Model(&models.Product{}).
			Where("id = ?", item.ProductID).
			UpdateColumn("stock", gorm.Expr("stock + ?", item.Quantity)).Error; err != nil {
			utils.LogError("Failed to restock product %d for return %d: %v", item.ProductID, ret.ID, err)
			return &PersistenceError{Step: "restock", Err: err}
		}
		utils.LogDebug("Restocked product %d by %d for return %d", item.ProductID, item.Quantity, ret.ID)
	}
	return nil
}
