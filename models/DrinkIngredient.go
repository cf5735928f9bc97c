package models

// DrinkIngredient links a drink to one of its ingredients. Removing either
// side removes the link.
type DrinkIngredient struct {
	DrinkID      uint `gorm:"primaryKey;autoIncrement:false"`
	IngredientID uint `gorm:"primaryKey;autoIncrement:false;index"`

	Drink      *Drink      `gorm:"foreignKey:DrinkID;constraint:OnDelete:CASCADE"`
	Ingredient *Ingredient `gorm:"foreignKey:IngredientID;constraint:OnDelete:CASCADE"`
}
