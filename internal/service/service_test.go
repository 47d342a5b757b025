package service

import (
	"testing"
	"time"

	"expense-tracker-backend/internal/database"
	"expense-tracker-backend/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a fresh in-memory database for one test.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err, "open test database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// a single connection keeps :memory: one database
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.AutoMigrate(db))
	return db
}

func createUser(t *testing.T, db *gorm.DB, name, email string) *models.User {
	t.Helper()
	user := &models.User{Name: name, Email: email, Password: "hash"}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createGlobalCategory(t *testing.T, db *gorm.DB, name string) *models.Category {
	t.Helper()
	category := &models.Category{Name: name}
	require.NoError(t, db.Create(category).Error)
	return category
}

func createOwnedCategory(t *testing.T, db *gorm.DB, name string, userID uint) *models.Category {
	t.Helper()
	category := &models.Category{Name: name, UserID: &userID}
	require.NoError(t, db.Create(category).Error)
	return category
}

func createTx(t *testing.T, ledger *Transactions, userID uint, title string, amount string,
	txType models.TransactionType, categoryID uint, date time.Time) *models.Transaction {
	t.Helper()
	transaction, err := ledger.Create(userID, CreateTransactionInput{
		Title:      title,
		Amount:     decimal.RequireFromString(amount),
		Type:       txType,
		CategoryID: categoryID,
		Date:       &date,
	})
	require.NoError(t, err)
	return transaction
}
