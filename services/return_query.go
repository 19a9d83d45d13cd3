package services

import (
	"time"

	"github.com/storeops/retaildesk/models"
)

// ReturnFilters narrows a LoadReturns query. Zero values mean "no filter".
type ReturnFilters struct {
	Status     string
	ReturnType string
	CustomerID uint
	DateFrom   *time.Time
	DateTo     *time.Time
}

// LoadReturns lists returns newest-first with their items preloaded. A
// negative offset or non-positive limit disables pagination.
func (s *ReturnService) LoadReturns(filters ReturnFilters, offset, limit int) ([]models.Return, int64, error) {
	query := s.db.Model(&models.Return{})
	if filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
	}
	if filters.ReturnType != "" {
		query = query.Where("return_type = ?", filters.ReturnType)
	}
	if filters.CustomerID != 0 {
		query = query.Where("customer_id = ?", filters.CustomerID)
	}
	if filters.DateFrom != nil {
		query = query.Where("created_at >= ?", *filters.DateFrom)
	}
	if filters.DateTo != nil {
		query = query.Where("created_at <= ?", *filters.DateTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, &PersistenceError{Step: "count_returns", Err: err}
	}

	if offset >= 0 && limit > 0 {
		query = query.Offset(offset).Limit(limit)
	}

	var returns []models.Return
	if err := query.
		Preload("Items").
		Preload("ExchangeItems").
		Order("created_at DESC").
		Find(&returns).Error; err != nil {
		return nil, 0, &PersistenceError{Step: "load_returns", Err: err}
	}
	return returns, total, nil
}

// GetReturn loads a single return with items and exchange items
func (s *ReturnService) GetReturn(returnID uint) (*models.Return, error) {
	var ret models.Return
	if err := s.db.
		Preload("Items").
		Preload("ExchangeItems").
		First(&ret, returnID).Error; err != nil {
		return nil, err
	}
	return &ret, nil
}
