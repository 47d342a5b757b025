package models

import "time"

// Category groups transactions. A nil UserID marks a global category
// visible to every user; otherwise it belongs to exactly one user.
type Category struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:64;not null" json:"name"`
	UserID    *uint     `gorm:"index" json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

// VisibleTo reports whether the category is global or owned by userID.
func (c *Category) VisibleTo(userID uint) bool {
	return c.UserID == nil || *c.UserID == userID
}
