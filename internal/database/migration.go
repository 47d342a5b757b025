package database

import (
	"fmt"

	"expense-tracker-backend/internal/models"

	"gorm.io/gorm"
)

// AutoMigrate runs database schema migrations for all models.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Transaction{},
		&models.Expense{},
		&models.AuditLog{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// defaultCategories are the global categories every user starts with.
var defaultCategories = []string{
	"Food",
	"Entertainment",
	"Transportation",
	"Utilities",
	"Healthcare",
	"Education",
	"Clothing",
	"Travel",
	"Others",
}

// SeedGlobalCategories inserts the shared default categories. Safe to run
// on every startup; existing names are left alone.
func SeedGlobalCategories(db *gorm.DB) error {
	for _, name := range defaultCategories {
		var count int64
		if err := db.Model(&models.Category{}).
			Where("name = ? AND user_id IS NULL", name).
			Count(&count).Error; err != nil {
			return fmt.Errorf("check category %q: %w", name, err)
		}
		if count > 0 {
			continue
		}
		if err := db.Create(&models.Category{Name: name}).Error; err != nil {
			return fmt.Errorf("seed category %q: %w", name, err)
		}
	}
	return nil
}
