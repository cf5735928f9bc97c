package models

import "time"

// Ingredient is a stock item in the household cabinet. NameKey carries the
// case-folded name and is the column uniqueness is enforced on.
type Ingredient struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	NameKey   string    `gorm:"uniqueIndex;not null" json:"-"`
	Category  *string   `json:"category"`
	InStock   bool      `gorm:"not null;default:false" json:"inStock"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// CategoryValue returns the category or an empty string when unset.
func (i Ingredient) CategoryValue() string {
	if i.Category == nil {
		return ""
	}
	return *i.Category
}
