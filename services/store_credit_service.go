package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/storeops/retaildesk/models"
	"github.com/storeops/retaildesk/utils"
	"gorm.io/gorm"
)

// StoreCreditService issues store credit and records its debit/credit
// history. Balance is mutated only through RecordTransaction, never directly.
type StoreCreditService struct {
	db *gorm.DB
}

// NewStoreCreditService creates a StoreCreditService backed by the given database
func NewStoreCreditService(db *gorm.DB) *StoreCreditService {
	return &StoreCreditService{db: db}
}

// IssueStoreCreditData is the request payload for issuing store credit
type IssueStoreCreditData struct {
	CustomerID uint       `json:"customer_id" binding:"required"`
	Amount     float64    `json:"amount" binding:"required"`
	ExpiresAt  *time.Time `json:"expires_at"`
	Notes      string     `json:"notes"`
}

// Issue creates a new store credit with balance equal to the issued amount
func (s *StoreCreditService) Issue(data IssueStoreCreditData) (*models.StoreCredit, error) {
	if data.Amount <= 0 {
		return nil, NewValidationError("amount", "issued amount must be positive")
	}

	var customer models.Customer
	if err := s.db.First(&customer, data.CustomerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewValidationError("customer_id", fmt.Sprintf("customer %d not found", data.CustomerID))
		}
		return nil, &PersistenceError{Step: "load_customer", Err: err}
	}

	credit := models.StoreCredit{
		CustomerID: data.CustomerID,
		Amount:     data.Amount,
		Balance:    data.Amount,
		ExpiresAt:  data.ExpiresAt,
		Notes:      data.Notes,
	}
	if err := s.db.Create(&credit).Error; err != nil {
		utils.LogError("Failed to issue store credit for customer %d: %v", data.CustomerID, err)
		return nil, &PersistenceError{Step: "store_credit", Err: err}
	}
	utils.LogInfo("Issued store credit %d of %.2f to customer %d", credit.ID, credit.Amount, credit.CustomerID)
	return &credit, nil
}

// RecordTransaction appends a ledger entry and adjusts the balance. The
// balance change is a single guarded UPDATE so a debit can never take the
// balance below zero, even under concurrent callers. If the ledger append
// fails afterwards the balance change is reversed before the error surfaces,
// keeping the balance replayable from the transaction history.
func (s *StoreCreditService) RecordTransaction(creditID uint, transactionType string, amount float64, description string, relatedSaleID, relatedReturnID *uint) (*models.StoreCreditTransaction, error) {
	if transactionType != models.TransactionTypeCredit && transactionType != models.TransactionTypeDebit {
		return nil, NewValidationError("transaction_type", fmt.Sprintf("unknown transaction type %q", transactionType))
	}
	if amount <= 0 {
		return nil, NewValidationError("amount", "transaction amount must be positive")
	}

	query := s.db.Model(&models.StoreCredit{}).Where("id = ?", creditID)
	var expr interface{}
	if transactionType == models.TransactionTypeDebit {
		query = query.Where("balance >= ?", amount)
		expr = gorm.Expr("balance - ?", amount)
	} else {
		expr = gorm.Expr("balance + ?", amount)
	}

	res := query.UpdateColumn("balance", expr)
	if res.Error != nil {
		utils.LogError("Balance update failed for store credit %d: %v", creditID, res.Error)
		return nil, &PersistenceError{Step: "balance_update", Err: res.Error}
	}
	if res.RowsAffected == 0 {
		var credit models.StoreCredit
		if err := s.db.First(&credit, creditID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, NewValidationError("store_credit_id", fmt.Sprintf("store credit %d not found", creditID))
			}
			return nil, &PersistenceError{Step: "load_store_credit", Err: err}
		}
		utils.LogError("Debit of %.2f rejected on store credit %d, balance %.2f", amount, creditID, credit.Balance)
		return nil, &InsufficientCreditError{
			StoreCreditID: creditID,
			Requested:     amount,
			Balance:       credit.Balance,
		}
	}

	transaction := models.StoreCreditTransaction{
		StoreCreditID:   creditID,
		TransactionType: transactionType,
		Amount:          amount,
		Description:     description,
		Reference:       uuid.NewString(),
		RelatedSaleID:   relatedSaleID,
		RelatedReturnID: relatedReturnID,
	}
	if err := s.db.Create(&transaction).Error; err != nil {
		utils.LogError("Ledger append failed for store credit %d, reversing balance change: %v", creditID, err)
		s.reverseBalanceChange(creditID, transactionType, amount)
		return nil, &PersistenceError{Step: "credit_transaction", Compensated: true, Err: err}
	}

	utils.LogInfo("Recorded %s of %.2f on store credit %d", transactionType, amount, creditID)
	return &transaction, nil
}

func (s *StoreCreditService) reverseBalanceChange(creditID uint, transactionType string, amount float64) {
	expr := gorm.Expr("balance - ?", amount)
	if transactionType == models.TransactionTypeDebit {
		expr = gorm.Expr("balance + ?", amount)
	}
	if err := s.db.Model(&models.StoreCredit{}).
		Where("id = ?", creditID).
		UpdateColumn("balance", expr).Error; err != nil {
		utils.LogError("Failed to reverse balance change on store credit %d: %v", creditID, err)
	}
}

// LoadStoreCredits lists store credits newest-first, optionally for one customer
func (s *StoreCreditService) LoadStoreCredits(customerID uint) ([]models.StoreCredit, error) {
	query := s.db.Model(&models.StoreCredit{})
	if customerID != 0 {
		query = query.Where("customer_id = ?", customerID)
	}
	var credits []models.StoreCredit
	if err := query.Order("created_at DESC").Find(&credits).Error; err != nil {
		return nil, &PersistenceError{Step: "load_store_credits", Err: err}
	}
	return credits, nil
}

// GetTransactions returns the ledger history of one store credit, oldest first
func (s *StoreCreditService) GetTransactions(creditID uint) ([]models.StoreCreditTransaction, error) {
	var transactions []models.StoreCreditTransaction
	if err := s.db.
		Where("store_credit_id = ?", creditID).
		Order("created_at ASC").
		Find(&transactions).Error; err != nil {
		return nil, &PersistenceError{Step: "load_credit_transactions", Err: err}
	}
	return transactions, nil
}
