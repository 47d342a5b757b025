package service

import (
	"sort"
	"time"

	"expense-tracker-backend/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Reports computes scoped aggregates over the ledger. Rows are fetched
// with the ownership predicate applied and summed in Go with decimal
// arithmetic; SQLite's SUM over the NUMERIC column runs in float64 and
// would leak rounding error into the totals.
type Reports struct {
	db *gorm.DB
}

func NewReports(db *gorm.DB) *Reports {
	return &Reports{db: db}
}

type CategorySummaryRow struct {
	CategoryID   uint                   `json:"categoryId"`
	CategoryName string                 `json:"categoryName"`
	Type         models.TransactionType `json:"type"`
	TotalAmount  decimal.Decimal        `json:"totalAmount"`
}

// SummaryByCategory sums the caller's transactions grouped by
// (category, type). Categories that no longer resolve are reported as
// "Unknown" rather than dropped.
func (s *Reports) SummaryByCategory(callerID uint) ([]CategorySummaryRow, error) {
	var transactions []models.Transaction
	if err := s.db.
		Where("user_id = ?", callerID).
		Order("id").
		Find(&transactions).Error; err != nil {
		return nil, Internal("query transactions", err)
	}

	type groupKey struct {
		categoryID uint
		txType     models.TransactionType
	}
	totals := make(map[groupKey]decimal.Decimal)
	order := make([]groupKey, 0)
	for _, tx := range transactions {
		k := groupKey{tx.CategoryID, tx.Type}
		if _, ok := totals[k]; !ok {
			order = append(order, k)
		}
		totals[k] = totals[k].Add(tx.Amount)
	}

	rows := make([]CategorySummaryRow, 0, len(order))
	if len(order) == 0 {
		return rows, nil
	}

	ids := make([]uint, 0, len(order))
	seen := make(map[uint]bool)
	for _, k := range order {
		if !seen[k.categoryID] {
			seen[k.categoryID] = true
			ids = append(ids, k.categoryID)
		}
	}
	nameByID, err := s.categoryNames(ids)
	if err != nil {
		return nil, err
	}

	for _, k := range order {
		name, ok := nameByID[k.categoryID]
		if !ok {
			name = "Unknown"
		}
		rows = append(rows, CategorySummaryRow{
			CategoryID:   k.categoryID,
			CategoryName: name,
			Type:         k.txType,
			TotalAmount:  totals[k],
		})
	}
	return rows, nil
}

func (s *Reports) categoryNames(ids []uint) (map[uint]string, error) {
	var categories []models.Category
	if err := s.db.Where("id IN ?", ids).Find(&categories).Error; err != nil {
		return nil, Internal("query categories", err)
	}
	nameByID := make(map[uint]string, len(categories))
	for _, c := range categories {
		nameByID[c.ID] = c.Name
	}
	return nameByID, nil
}

type MonthlySummaryRow struct {
	Year        int                    `json:"year"`
	Month       int                    `json:"month"`
	Type        models.TransactionType `json:"type"`
	TotalAmount decimal.Decimal        `json:"totalAmount"`
}

// MonthlySummary sums the caller's transactions per (year, month, type),
// oldest month first.
func (s *Reports) MonthlySummary(callerID uint) ([]MonthlySummaryRow, error) {
	var transactions []models.Transaction
	if err := s.db.
		Where("user_id = ?", callerID).
		Find(&transactions).Error; err != nil {
		return nil, Internal("query transactions", err)
	}

	type bucket struct {
		year   int
		month  int
		txType models.TransactionType
	}
	totals := make(map[bucket]decimal.Decimal)
	for _, tx := range transactions {
		b := bucket{tx.Date.Year(), int(tx.Date.Month()), tx.Type}
		totals[b] = totals[b].Add(tx.Amount)
	}

	rows := make([]MonthlySummaryRow, 0, len(totals))
	for b, total := range totals {
		rows = append(rows, MonthlySummaryRow{
			Year:        b.year,
			Month:       b.month,
			Type:        b.txType,
			TotalAmount: total,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Year != rows[j].Year {
			return rows[i].Year < rows[j].Year
		}
		if rows[i].Month != rows[j].Month {
			return rows[i].Month < rows[j].Month
		}
		return rows[i].Type < rows[j].Type
	})
	return rows, nil
}

type TopCategoryRow struct {
	CategoryID   uint            `json:"categoryId"`
	CategoryName string          `json:"categoryName"`
	TotalAmount  decimal.Decimal `json:"totalAmount"`
}

// TopCategories ranks the caller's expense categories by spend inside the
// inclusive [start, end] window. Both bounds are required. Groups whose
// category no longer exists are dropped, and ties keep the category scan
// order.
func (s *Reports) TopCategories(callerID uint, start, end *time.Time, limit int) ([]TopCategoryRow, error) {
	if start == nil || end == nil {
		return nil, Validation("startDate and endDate required")
	}
	if limit <= 0 {
		limit = 5
	}

	var transactions []models.Transaction
	if err := s.db.
		Where("user_id = ? AND type = ? AND date BETWEEN ? AND ?",
			callerID, models.TypeExpense, *start, *end).
		Find(&transactions).Error; err != nil {
		return nil, Internal("query transactions", err)
	}

	totals := make(map[uint]decimal.Decimal)
	for _, tx := range transactions {
		totals[tx.CategoryID] = totals[tx.CategoryID].Add(tx.Amount)
	}

	rows := make([]TopCategoryRow, 0, len(totals))
	if len(totals) == 0 {
		return rows, nil
	}

	ids := make([]uint, 0, len(totals))
	for id := range totals {
		ids = append(ids, id)
	}
	var categories []models.Category
	if err := s.db.Where("id IN ?", ids).Order("id").Find(&categories).Error; err != nil {
		return nil, Internal("query categories", err)
	}

	for _, c := range categories {
		rows = append(rows, TopCategoryRow{
			CategoryID:   c.ID,
			CategoryName: c.Name,
			TotalAmount:  totals[c.ID],
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].TotalAmount.GreaterThan(rows[j].TotalAmount)
	})
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}
