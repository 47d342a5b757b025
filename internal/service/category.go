package service

import (
	"errors"
	"strings"

	"expense-tracker-backend/internal/models"

	"gorm.io/gorm"
)

// Categories is the registry of global and user-owned categories.
type Categories struct {
	db *gorm.DB
}

func NewCategories(db *gorm.DB) *Categories {
	return &Categories{db: db}
}

// Create adds a category owned by ownerID. The name must not collide with
// a global category or another category of the same owner.
func (s *Categories) Create(name string, ownerID uint) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, Validation("Category name is required")
	}

	var count int64
	if err := s.db.Model(&models.Category{}).
		Where("name = ? AND (user_id IS NULL OR user_id = ?)", name, ownerID).
		Count(&count).Error; err != nil {
		return nil, Internal("query category", err)
	}
	if count > 0 {
		return nil, Conflict("Category already exists")
	}

	category := models.Category{Name: name, UserID: &ownerID}
	if err := s.db.Create(&category).Error; err != nil {
		return nil, Internal("create category", err)
	}
	return &category, nil
}

// List returns the union of global categories and those owned by ownerID.
func (s *Categories) List(ownerID uint) ([]models.Category, error) {
	categories := make([]models.Category, 0)
	if err := s.db.
		Where("user_id IS NULL OR user_id = ?", ownerID).
		Order("id").
		Find(&categories).Error; err != nil {
		return nil, Internal("query categories", err)
	}
	return categories, nil
}

// Delete removes a category owned by callerID. Global categories are
// caller-immutable.
func (s *Categories) Delete(id, callerID uint) error {
	var category models.Category
	if err := s.db.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NotFound("Category not found")
		}
		return Internal("query category", err)
	}

	if category.UserID == nil {
		return Forbidden("Global categories cannot be deleted")
	}
	if *category.UserID != callerID {
		return Forbidden("Unauthorized")
	}

	if err := s.db.Delete(&category).Error; err != nil {
		return Internal("delete category", err)
	}
	return nil
}

// ResolveVisible returns the category when it is global or owned by
// callerID. The ledger uses this to validate category references; an
// invisible or missing category is reported as an invalid reference.
func (s *Categories) ResolveVisible(categoryID, callerID uint) (*models.Category, error) {
	if categoryID == 0 {
		return nil, Validation("Invalid category")
	}
	var category models.Category
	if err := s.db.First(&category, categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, Validation("Invalid category")
		}
		return nil, Internal("query category", err)
	}
	if !category.VisibleTo(callerID) {
		return nil, Validation("Invalid category")
	}
	return &category, nil
}
