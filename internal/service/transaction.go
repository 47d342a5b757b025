package service

import (
	"errors"
	"time"

	"expense-tracker-backend/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Transactions is the ledger: per-user income/expense records with
// ownership enforced on every read and mutation. A transaction owned by
// another user is reported as not found, never as forbidden, so existence
// is not leaked.
type Transactions struct {
	db         *gorm.DB
	categories *Categories
}

func NewTransactions(db *gorm.DB, categories *Categories) *Transactions {
	return &Transactions{db: db, categories: categories}
}

type CreateTransactionInput struct {
	Title       string
	Amount      decimal.Decimal
	Type        models.TransactionType
	CategoryID  uint
	Description string
	Date        *time.Time
}

// Create records a transaction for callerID. The category must be visible
// to the caller; the date defaults to now.
func (s *Transactions) Create(callerID uint, in CreateTransactionInput) (*models.Transaction, error) {
	if in.Title == "" || in.Amount.IsZero() || in.Type == "" || in.CategoryID == 0 {
		return nil, Validation("Missing required fields")
	}
	if !in.Type.Valid() {
		return nil, Validation("Invalid transaction type")
	}
	if _, err := s.categories.ResolveVisible(in.CategoryID, callerID); err != nil {
		return nil, err
	}

	date := time.Now()
	if in.Date != nil {
		date = *in.Date
	}

	transaction := models.Transaction{
		Title:       in.Title,
		Amount:      in.Amount,
		Type:        in.Type,
		Description: in.Description,
		Date:        date,
		UserID:      callerID,
		CategoryID:  in.CategoryID,
	}
	if err := s.db.Create(&transaction).Error; err != nil {
		return nil, Internal("create transaction", err)
	}
	return &transaction, nil
}

// ListFilters narrows List. Zero values mean "no filter"; date bounds are
// inclusive.
type ListFilters struct {
	Type       models.TransactionType
	CategoryID uint
	StartDate  *time.Time
	EndDate    *time.Time
}

// List returns all of callerID's transactions matching the filters,
// newest first, with categories attached.
func (s *Transactions) List(callerID uint, f ListFilters) ([]models.Transaction, error) {
	q := s.db.Where("user_id = ?", callerID)
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}
	if f.CategoryID != 0 {
		q = q.Where("category_id = ?", f.CategoryID)
	}
	if f.StartDate != nil {
		q = q.Where("date >= ?", *f.StartDate)
	}
	if f.EndDate != nil {
		q = q.Where("date <= ?", *f.EndDate)
	}

	transactions := make([]models.Transaction, 0)
	if err := q.Preload("Category").
		Order("date DESC").
		Find(&transactions).Error; err != nil {
		return nil, Internal("query transactions", err)
	}
	return transactions, nil
}

// GetByID returns one of callerID's transactions.
func (s *Transactions) GetByID(id, callerID uint) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := s.db.
		Where("id = ? AND user_id = ?", id, callerID).
		First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("Transaction not found")
		}
		return nil, Internal("query transaction", err)
	}
	return &transaction, nil
}

// UpdateTransactionInput applies partial updates; nil fields are left
// unchanged. CategoryID is always re-validated against the caller's scope.
type UpdateTransactionInput struct {
	Title       *string
	Amount      *decimal.Decimal
	Type        *models.TransactionType
	CategoryID  uint
	Description *string
	Date        *time.Time
}

func (s *Transactions) Update(id, callerID uint, in UpdateTransactionInput) (*models.Transaction, error) {
	transaction, err := s.GetByID(id, callerID)
	if err != nil {
		return nil, err
	}

	if _, err := s.categories.ResolveVisible(in.CategoryID, callerID); err != nil {
		return nil, err
	}
	transaction.CategoryID = in.CategoryID

	if in.Title != nil {
		transaction.Title = *in.Title
	}
	if in.Amount != nil {
		transaction.Amount = *in.Amount
	}
	if in.Type != nil {
		if !in.Type.Valid() {
			return nil, Validation("Invalid transaction type")
		}
		transaction.Type = *in.Type
	}
	if in.Description != nil {
		transaction.Description = *in.Description
	}
	if in.Date != nil {
		transaction.Date = *in.Date
	}

	if err := s.db.Save(transaction).Error; err != nil {
		return nil, Internal("update transaction", err)
	}
	return transaction, nil
}

// Delete removes one of callerID's transactions. Deleting an id that is
// already gone reports not found again, never a crash.
func (s *Transactions) Delete(id, callerID uint) error {
	transaction, err := s.GetByID(id, callerID)
	if err != nil {
		return err
	}
	if err := s.db.Delete(transaction).Error; err != nil {
		return Internal("delete transaction", err)
	}
	return nil
}

// Recent returns the caller's most recent transactions with categories
// attached, newest first.
func (s *Transactions) Recent(callerID uint, limit int) ([]models.Transaction, error) {
	if limit <= 0 {
		limit = 10
	}
	transactions := make([]models.Transaction, 0, limit)
	if err := s.db.
		Where("user_id = ?", callerID).
		Preload("Category").
		Order("date DESC").
		Limit(limit).
		Find(&transactions).Error; err != nil {
		return nil, Internal("query transactions", err)
	}
	return transactions, nil
}
