package services

import (
	"testing"

	"github.com/storeops/retaildesk/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedCustomer(t *testing.T, db *gorm.DB) models.Customer {
	customer := models.Customer{Name: "Priya Shah", Email: "priya@example.com"}
	require.NoError(t, db.Create(&customer).Error)
	return customer
}

func TestIssueStoreCredit(t *testing.T) {
	db := setupTestDB(t)
	svc := NewStoreCreditService(db)
	customer := seedCustomer(t, db)

	t.Run("balance starts at the issued amount", func(t *testing.T) {
		credit, err := svc.Issue(IssueStoreCreditData{CustomerID: customer.ID, Amount: 90.00, Notes: "Issued for return #1"})
		require.NoError(t, err)
		assert.Equal(t, 90.00, credit.Amount)
		assert.Equal(t, 90.00, credit.Balance)
	})

	t.Run("rejects non-positive amounts", func(t *testing.T) {
		_, err := svc.Issue(IssueStoreCreditData{CustomerID: customer.ID, Amount: 0})
		require.Error(t, err)
		assert.True(t, IsValidationError(err))

		_, err = svc.Issue(IssueStoreCreditData{CustomerID: customer.ID, Amount: -5})
		require.Error(t, err)
		assert.True(t, IsValidationError(err))
	})

	t.Run("rejects unknown customer", func(t *testing.T) {
		_, err := svc.Issue(IssueStoreCreditData{CustomerID: 9999, Amount: 10})
		require.Error(t, err)
		assert.True(t, IsValidationError(err))
	})
}

func TestRecordTransaction(t *testing.T) {
	t.Run("balance stays replayable from the history", func(t *testing.T) {
		db := setupTestDB(t)
		svc := NewStoreCreditService(db)
		customer := seedCustomer(t, db)

		credit, err := svc.Issue(IssueStoreCreditData{CustomerID: customer.ID, Amount: 100.00})
		require.NoError(t, err)

		_, err = svc.RecordTransaction(credit.ID, models.TransactionTypeDebit, 30.00, "used at register 2", nil, nil)
		require.NoError(t, err)
		_, err = svc.RecordTransaction(credit.ID, models.TransactionTypeCredit, 15.00, "price adjustment", nil, nil)
		require.NoError(t, err)
		_, err = svc.RecordTransaction(credit.ID, models.TransactionTypeDebit, 85.00, "used at register 1", nil, nil)
		require.NoError(t, err)

		var stored models.StoreCredit
		require.NoError(t, db.First(&stored, credit.ID).Error)
		assert.Equal(t, 0.00, stored.Balance)

		transactions, err := svc.GetTransactions(credit.ID)
		require.NoError(t, err)
		require.Len(t, transactions, 3)

		replayed := stored.Amount
		for _, tx := range transactions {
			if tx.TransactionType == models.TransactionTypeDebit {
				replayed -= tx.Amount
			} else {
				replayed += tx.Amount
			}
			assert.NotEmpty(t, tx.Reference)
		}
		assert.Equal(t, stored.Balance, replayed)
	})

	t.Run("debit beyond the balance is refused", func(t *testing.T) {
		db := setupTestDB(t)
		svc := NewStoreCreditService(db)
		customer := seedCustomer(t, db)

		credit, err := svc.Issue(IssueStoreCreditData{CustomerID: customer.ID, Amount: 50.00})
		require.NoError(t, err)

		_, err = svc.RecordTransaction(credit.ID, models.TransactionTypeDebit, 50.01, "overdraw attempt", nil, nil)
		require.Error(t, err)
		var ice *InsufficientCreditError
		require.ErrorAs(t, err, &ice)
		assert.Equal(t, 50.01, ice.Requested)
		assert.Equal(t, 50.00, ice.Balance)

		// The refused debit leaves no trace
		var stored models.StoreCredit
		require.NoError(t, db.First(&stored, credit.ID).Error)
		assert.Equal(t, 50.00, stored.Balance)
		transactions, err := svc.GetTransactions(credit.ID)
		require.NoError(t, err)
		assert.Empty(t, transactions)
	})

	t.Run("rejects bad type and amount", func(t *testing.T) {
		db := setupTestDB(t)
		svc := NewStoreCreditService(db)
		customer := seedCustomer(t, db)

		credit, err := svc.Issue(IssueStoreCreditData{CustomerID: customer.ID, Amount: 50.00})
		require.NoError(t, err)

		_, err = svc.RecordTransaction(credit.ID, "transfer", 10, "", nil, nil)
		assert.True(t, IsValidationError(err))

		_, err = svc.RecordTransaction(credit.ID, models.TransactionTypeDebit, 0, "", nil, nil)
		assert.True(t, IsValidationError(err))
	})

	t.Run("unknown credit id is a validation error", func(t *testing.T) {
		db := setupTestDB(t)
		svc := NewStoreCreditService(db)

		_, err := svc.RecordTransaction(9999, models.TransactionTypeCredit, 10, "", nil, nil)
		require.Error(t, err)
		assert.True(t, IsValidationError(err))
	})

	t.Run("reverses the balance when the ledger append fails", func(t *testing.T) {
		db := setupTestDB(t)
		svc := NewStoreCreditService(db)
		customer := seedCustomer(t, db)

		credit, err := svc.Issue(IssueStoreCreditData{CustomerID: customer.ID, Amount: 80.00})
		require.NoError(t, err)

		require.NoError(t, db.Migrator().DropTable(&models.StoreCreditTransaction{}))

		_, err = svc.RecordTransaction(credit.ID, models.TransactionTypeDebit, 30.00, "used at register 2", nil, nil)
		require.Error(t, err)
		var pe *PersistenceError
		require.ErrorAs(t, err, &pe)
		assert.True(t, pe.Compensated)

		var stored models.StoreCredit
		require.NoError(t, db.First(&stored, credit.ID).Error)
		assert.Equal(t, 80.00, stored.Balance)
	})
}

func TestLoadStoreCredits(t *testing.T) {
	db := setupTestDB(t)
	svc := NewStoreCreditService(db)
	first := seedCustomer(t, db)
	second := models.Customer{Name: "Omar Reyes", Email: "omar@example.com"}
	require.NoError(t, db.Create(&second).Error)

	_, err := svc.Issue(IssueStoreCreditData{CustomerID: first.ID, Amount: 20})
	require.NoError(t, err)
	_, err = svc.Issue(IssueStoreCreditData{CustomerID: first.ID, Amount: 30})
	require.NoError(t, err)
	_, err = svc.Issue(IssueStoreCreditData{CustomerID: second.ID, Amount: 40})
	require.NoError(t, err)

	all, err := svc.LoadStoreCredits(0)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	mine, err := svc.LoadStoreCredits(first.ID)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	for _, credit := range mine {
		assert.Equal(t, first.ID, credit.CustomerID)
	}
}
