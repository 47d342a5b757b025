package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is the legacy record type that predates Transaction. It carries
// no ownership-scoped category validation and its endpoints are not behind
// the auth gate. Kept separate on purpose; do not fold into Transaction.
type Expense struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Title       string          `gorm:"size:255;not null" json:"title"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	Type        string          `gorm:"size:16;not null" json:"type"`
	CategoryID  *uint           `gorm:"index" json:"categoryId"`
	Description string          `gorm:"type:text" json:"description"`
	Date        time.Time       `gorm:"index;not null" json:"date"`
	UserID      uint            `gorm:"index;not null" json:"userId"`
	CreatedAt   time.Time       `json:"createdAt"`

	User     *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}
