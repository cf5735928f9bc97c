// Package recipes owns drinks and their links to ingredients.
package recipes

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"gorm.io/gorm"

	"cabinet/internal/apperr"
	"cabinet/internal/availability"
	"cabinet/internal/inventory"
	applog "cabinet/internal/log"
	"cabinet/internal/names"
	"cabinet/models"
)

// Drink is a drink with its ingredients and availability derived from the
// stock at read time.
type Drink struct {
	ID           uint                 `json:"id"`
	Name         string               `json:"name"`
	Instructions string               `json:"instructions"`
	Ingredients  []models.Ingredient  `json:"ingredients"`
	Availability availability.Summary `json:"availability"`
}

// Item returns the searchable view of the drink.
func (d Drink) Item() availability.Item {
	ingredients := make([]string, 0, len(d.Ingredients))
	for _, ingredient := range d.Ingredients {
		ingredients = append(ingredients, ingredient.Name)
	}
	return availability.Item{
		Name:         d.Name,
		Instructions: d.Instructions,
		Ingredients:  ingredients,
		Summary:      d.Availability,
	}
}

// CreateInput carries a new drink as submitted by a caller.
type CreateInput struct {
	Name         string
	Instructions string
	Ingredients  []string
}

// Store reads and creates drinks.
type Store struct {
	db *gorm.DB
}

// NewStore builds a Store backed by db.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// List returns every drink ordered by name with availability derived from
// the current stock.
func (s *Store) List(ctx context.Context) ([]Drink, error) {
	stock, err := inventory.NewRegistry(s.db).List(ctx)
	if err != nil {
		return nil, err
	}

	var rows []models.Drink
	if err := s.db.WithContext(ctx).
		Preload("Links.Ingredient").
		Order("name_key asc").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list drinks: %w", err)
	}

	lookup := availability.LookupFrom(stock)
	drinks := make([]Drink, 0, len(rows))
	for _, row := range rows {
		drinks = append(drinks, project(row, lookup))
	}
	return drinks, nil
}

// Get loads one drink by id.
func (s *Store) Get(ctx context.Context, id uint) (Drink, error) {
	var row models.Drink
	if err := s.db.WithContext(ctx).Preload("Links.Ingredient").Take(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Drink{}, apperr.NotFound("drink %d", id)
		}
		return Drink{}, fmt.Errorf("load drink %d: %w", id, err)
	}
	return project(row, nil), nil
}

// Create validates and stores a new drink, resolving or creating each of
// its ingredients. The drink, any new ingredients and all links are written
// in one transaction; on any failure none of them persist.
func (s *Store) Create(ctx context.Context, in CreateInput) (Drink, error) {
	name := names.Normalize(in.Name)
	if name == "" {
		return Drink{}, apperr.Invalid("drink name is required")
	}
	instructions := strings.TrimSpace(in.Instructions)
	if instructions == "" {
		return Drink{}, apperr.Invalid("instructions are required")
	}
	ingredientNames := names.Dedupe(in.Ingredients)
	if len(ingredientNames) == 0 {
		return Drink{}, apperr.Invalid("at least one ingredient is required")
	}

	var drinkID uint
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		key := names.Key(name)

		var existing int64
		if err := tx.Model(&models.Drink{}).Where("name_key = ?", key).Count(&existing).Error; err != nil {
			return fmt.Errorf("check drink name: %w", err)
		}
		if existing > 0 {
			return apperr.Conflict("a drink named %q already exists", name)
		}

		drink := models.Drink{Name: name, NameKey: key, Instructions: instructions}
		if err := tx.Create(&drink).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperr.Conflict("a drink named %q already exists", name)
			}
			return fmt.Errorf("insert drink %q: %w", name, err)
		}

		registry := inventory.NewRegistry(tx)
		for _, ingredientName := range ingredientNames {
			ingredient, err := registry.ResolveOrCreate(ctx, ingredientName, inventory.ResolveOptions{})
			if err != nil {
				return err
			}
			link := models.DrinkIngredient{DrinkID: drink.ID, IngredientID: ingredient.ID}
			if err := tx.Create(&link).Error; err != nil {
				return fmt.Errorf("link %q to %q: %w", ingredient.Name, name, err)
			}
		}

		drinkID = drink.ID
		return nil
	})
	if err != nil {
		return Drink{}, err
	}

	applog.Info(ctx, "drink created", "id", drinkID, "name", name, "ingredients", len(ingredientNames))
	return s.Get(ctx, drinkID)
}

// Filter keeps the drinks matching mode and query, preserving order.
func Filter(drinks []Drink, mode availability.Mode, query string) []Drink {
	kept := make([]Drink, 0, len(drinks))
	for _, drink := range drinks {
		if availability.Matches(drink.Item(), mode, query) {
			kept = append(kept, drink)
		}
	}
	return kept
}

func project(row models.Drink, lookup availability.StockLookup) Drink {
	ingredients := make([]models.Ingredient, 0, len(row.Links))
	for _, link := range row.Links {
		if link.Ingredient == nil {
			continue
		}
		ingredient := *link.Ingredient
		ingredient.InStock = lookup.InStock(ingredient)
		ingredients = append(ingredients, ingredient)
	}
	sort.SliceStable(ingredients, func(i, j int) bool {
		return ingredients[i].NameKey < ingredients[j].NameKey
	})

	return Drink{
		ID:           row.ID,
		Name:         row.Name,
		Instructions: row.Instructions,
		Ingredients:  ingredients,
		Availability: availability.Derive(ingredients, lookup),
	}
}
