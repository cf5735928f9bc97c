package models

import "time"

type Drink struct {
	ID           uint              `gorm:"primaryKey" json:"id"`
	Name         string            `gorm:"not null" json:"name"`
	NameKey      string            `gorm:"uniqueIndex;not null" json:"-"`
	Instructions string            `gorm:"type:text;not null" json:"instructions"`
	CreatedAt    time.Time         `json:"-"`
	Links        []DrinkIngredient `gorm:"foreignKey:DrinkID;constraint:OnDelete:CASCADE" json:"-"`
}
