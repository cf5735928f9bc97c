// Package seed applies the reference catalog of ingredients and drinks. The
// last applied version is kept in a marker row so repeated startups are
// no-ops and version bumps only add what is new.
package seed

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"cabinet/internal/apperr"
	"cabinet/internal/inventory"
	applog "cabinet/internal/log"
	"cabinet/internal/names"
	"cabinet/models"
)

// Result describes what an ApplyIfNeeded call did.
type Result struct {
	PreviousVersion    int      `json:"previousVersion"`
	Version            int      `json:"version"`
	Applied            bool     `json:"applied"`
	IngredientsCreated int      `json:"ingredientsCreated"`
	DrinksCreated      int      `json:"drinksCreated"`
	LinksCreated       int      `json:"linksCreated"`
	SkippedReferences  []string `json:"skippedReferences,omitempty"`
}

// Manager applies seed catalogs.
type Manager struct {
	db *gorm.DB
}

// NewManager builds a Manager backed by db.
func NewManager(db *gorm.DB) *Manager {
	return &Manager{db: db}
}

// StoredVersion returns the last applied catalog version, zero when none.
func (m *Manager) StoredVersion(ctx context.Context) (int, error) {
	return storedVersion(m.db.WithContext(ctx))
}

func storedVersion(db *gorm.DB) (int, error) {
	var marker models.SeedMarker
	err := db.Where(&models.SeedMarker{Key: models.SeedVersionKey}).Take(&marker).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read seed marker: %w", err)
	}
	return marker.Version, nil
}

// ApplyIfNeeded applies catalog when its version is newer than the stored
// marker. Ingredients and drinks are keyed by case-insensitive name, so
// rows already present are never duplicated; the marker is written last in
// the same transaction.
func (m *Manager) ApplyIfNeeded(ctx context.Context, catalog Catalog) (Result, error) {
	if err := catalog.Validate(); err != nil {
		return Result{}, err
	}

	result := Result{Version: catalog.Version}
	err := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		stored, err := storedVersion(tx)
		if err != nil {
			return err
		}
		result.PreviousVersion = stored
		if stored >= catalog.Version {
			return nil
		}

		if err := applyIngredients(ctx, tx, catalog.Ingredients, &result); err != nil {
			return err
		}
		if err := applyDrinks(ctx, tx, catalog.Drinks, &result); err != nil {
			return err
		}

		marker := models.SeedMarker{Key: models.SeedVersionKey, Version: catalog.Version}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"version", "updated_at"}),
		}).Create(&marker).Error; err != nil {
			return fmt.Errorf("write seed marker: %w", err)
		}

		result.Applied = true
		return nil
	})
	if err != nil {
		return Result{}, fmt.Errorf("apply seed version %d: %w", catalog.Version, err)
	}

	if result.Applied {
		applog.Info(ctx, "seed catalog applied",
			"from", result.PreviousVersion,
			"to", result.Version,
			"ingredients", result.IngredientsCreated,
			"drinks", result.DrinksCreated,
			"links", result.LinksCreated,
		)
	} else {
		applog.Debug(ctx, "seed catalog up to date", "stored", result.PreviousVersion, "target", result.Version)
	}
	return result, nil
}

func applyIngredients(ctx context.Context, tx *gorm.DB, ingredients []Ingredient, result *Result) error {
	registry := inventory.NewRegistry(tx)
	for _, item := range ingredients {
		if names.Normalize(item.Name) == "" {
			continue
		}
		var category *string
		if strings.TrimSpace(item.Category) != "" {
			category = &item.Category
		}
		_, created, err := registry.Create(ctx, item.Name, category, false)
		if err != nil {
			return fmt.Errorf("seed ingredient %q: %w", item.Name, err)
		}
		if created {
			result.IngredientsCreated++
		}
	}
	return nil
}

func applyDrinks(ctx context.Context, tx *gorm.DB, drinks []Drink, result *Result) error {
	registry := inventory.NewRegistry(tx)
	for _, item := range drinks {
		name := names.Normalize(item.Name)
		if name == "" {
			continue
		}

		drink := models.Drink{
			Name:         name,
			NameKey:      names.Key(name),
			Instructions: strings.TrimSpace(item.Instructions),
		}
		insert := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name_key"}},
			DoNothing: true,
		}).Create(&drink)
		if insert.Error != nil {
			return fmt.Errorf("seed drink %q: %w", name, insert.Error)
		}
		if insert.RowsAffected == 1 {
			result.DrinksCreated++
		} else if err := tx.Where("name_key = ?", drink.NameKey).Take(&drink).Error; err != nil {
			return fmt.Errorf("reload drink %q: %w", name, err)
		}

		for _, ingredientName := range names.Dedupe(item.Ingredients) {
			ingredient, err := registry.FindByName(ctx, ingredientName)
			if err != nil {
				if errors.Is(err, apperr.ErrNotFound) {
					applog.Warn(ctx, "seed drink references unknown ingredient", "drink", name, "ingredient", ingredientName)
					result.SkippedReferences = append(result.SkippedReferences, name+": "+ingredientName)
					continue
				}
				return err
			}

			link := tx.Clauses(clause.OnConflict{DoNothing: true}).
				Create(&models.DrinkIngredient{DrinkID: drink.ID, IngredientID: ingredient.ID})
			if link.Error != nil {
				return fmt.Errorf("link %q to %q: %w", ingredient.Name, name, link.Error)
			}
			result.LinksCreated += int(link.RowsAffected)
		}
	}
	return nil
}
