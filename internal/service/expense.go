package service

import (
	"errors"
	"time"

	"expense-tracker-backend/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Expenses is the legacy expense surface. Unlike the ledger it takes the
// owning user from the request body, does not check category visibility
// and enforces no caller ownership. Kept as-is; see DESIGN.md.
type Expenses struct {
	db *gorm.DB
}

func NewExpenses(db *gorm.DB) *Expenses {
	return &Expenses{db: db}
}

type CreateExpenseInput struct {
	Title       string
	Amount      decimal.Decimal
	Type        string
	CategoryID  *uint
	Description string
	UserID      uint
}

func (s *Expenses) Create(in CreateExpenseInput) (*models.Expense, error) {
	if in.Title == "" || in.Amount.IsZero() || in.Type == "" || in.UserID == 0 {
		return nil, Validation("Title, amount, type, and userId are required")
	}

	expense := models.Expense{
		Title:       in.Title,
		Amount:      in.Amount,
		Type:        in.Type,
		CategoryID:  in.CategoryID,
		Description: in.Description,
		Date:        time.Now(),
		UserID:      in.UserID,
	}
	if err := s.db.Create(&expense).Error; err != nil {
		return nil, Internal("create expense", err)
	}
	return &expense, nil
}

// ListAll returns every expense with its owner attached, newest first.
func (s *Expenses) ListAll() ([]models.Expense, error) {
	expenses := make([]models.Expense, 0)
	if err := s.db.Preload("User").
		Order("date DESC").
		Find(&expenses).Error; err != nil {
		return nil, Internal("query expenses", err)
	}
	return expenses, nil
}

func (s *Expenses) GetByID(id uint) (*models.Expense, error) {
	var expense models.Expense
	if err := s.db.Preload("User").First(&expense, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("Expense not found")
		}
		return nil, Internal("query expense", err)
	}
	return &expense, nil
}

type UpdateExpenseInput struct {
	Title       *string
	Amount      *decimal.Decimal
	Type        *string
	CategoryID  *uint
	Description *string
}

func (s *Expenses) Update(id uint, in UpdateExpenseInput) (*models.Expense, error) {
	var expense models.Expense
	if err := s.db.First(&expense, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("Expense not found")
		}
		return nil, Internal("query expense", err)
	}

	if in.Title != nil {
		expense.Title = *in.Title
	}
	if in.Amount != nil {
		expense.Amount = *in.Amount
	}
	if in.Type != nil {
		expense.Type = *in.Type
	}
	if in.CategoryID != nil {
		expense.CategoryID = in.CategoryID
	}
	if in.Description != nil {
		expense.Description = *in.Description
	}

	if err := s.db.Save(&expense).Error; err != nil {
		return nil, Internal("update expense", err)
	}
	return &expense, nil
}

func (s *Expenses) Delete(id uint) error {
	var expense models.Expense
	if err := s.db.First(&expense, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NotFound("Expense not found")
		}
		return Internal("query expense", err)
	}
	if err := s.db.Delete(&expense).Error; err != nil {
		return Internal("delete expense", err)
	}
	return nil
}

// ListByUser returns one user's expenses with categories attached,
// newest first.
func (s *Expenses) ListByUser(userID uint) ([]models.Expense, error) {
	if userID == 0 {
		return nil, Validation("User ID is required")
	}
	expenses := make([]models.Expense, 0)
	if err := s.db.Where("user_id = ?", userID).
		Preload("Category").
		Order("date DESC").
		Find(&expenses).Error; err != nil {
		return nil, Internal("query expenses", err)
	}
	return expenses, nil
}
