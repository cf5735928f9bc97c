// Package inventory owns the set of known ingredients and their stock flags.
package inventory

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"cabinet/internal/apperr"
	applog "cabinet/internal/log"
	"cabinet/internal/names"
	"cabinet/models"
)

// Registry resolves ingredient identities and tracks stock. Uniqueness is
// enforced by the unique index on name_key; inserts that lose a race fall
// back to reading the row that won.
type Registry struct {
	db *gorm.DB
}

// ResolveOptions carries optional attributes applied while resolving a name.
type ResolveOptions struct {
	Category *string
}

// NewRegistry builds a Registry backed by db.
func NewRegistry(db *gorm.DB) *Registry {
	return &Registry{db: db}
}

// WithTx returns a registry bound to a caller-owned transaction.
func (r *Registry) WithTx(tx *gorm.DB) *Registry {
	return &Registry{db: tx}
}

// List returns every ingredient ordered by name, case-insensitively.
func (r *Registry) List(ctx context.Context) ([]models.Ingredient, error) {
	var ingredients []models.Ingredient
	if err := r.db.WithContext(ctx).Order("name_key asc").Find(&ingredients).Error; err != nil {
		return nil, fmt.Errorf("list ingredients: %w", err)
	}
	return ingredients, nil
}

// Get loads a single ingredient by id.
func (r *Registry) Get(ctx context.Context, id uint) (models.Ingredient, error) {
	var ingredient models.Ingredient
	if err := r.db.WithContext(ctx).Take(&ingredient, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Ingredient{}, apperr.NotFound("ingredient %d", id)
		}
		return models.Ingredient{}, fmt.Errorf("load ingredient %d: %w", id, err)
	}
	return ingredient, nil
}

// FindByName looks an ingredient up by case-insensitive name.
func (r *Registry) FindByName(ctx context.Context, rawName string) (models.Ingredient, error) {
	name := names.Normalize(rawName)
	if name == "" {
		return models.Ingredient{}, apperr.Invalid("ingredient name is required")
	}
	var ingredient models.Ingredient
	err := r.db.WithContext(ctx).Where("name_key = ?", names.Key(name)).Take(&ingredient).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Ingredient{}, apperr.NotFound("ingredient %q", name)
	}
	if err != nil {
		return models.Ingredient{}, fmt.Errorf("find ingredient %q: %w", name, err)
	}
	return ingredient, nil
}

// ResolveOrCreate returns the ingredient named rawName, creating it out of
// stock when absent. A supplied category replaces a stored one that differs
// or is unset; the stock flag of an existing ingredient is never touched.
func (r *Registry) ResolveOrCreate(ctx context.Context, rawName string, opts ResolveOptions) (models.Ingredient, error) {
	name := names.Normalize(rawName)
	if name == "" {
		return models.Ingredient{}, apperr.Invalid("ingredient name is required")
	}
	category := cleanCategory(opts.Category)

	ingredient, created, err := r.insertOrLoad(ctx, models.Ingredient{
		Name:     name,
		NameKey:  names.Key(name),
		Category: category,
	})
	if err != nil {
		return models.Ingredient{}, err
	}
	if created || category == nil {
		return ingredient, nil
	}

	if ingredient.Category == nil || !names.Equal(*ingredient.Category, *category) {
		if err := r.db.WithContext(ctx).Model(&models.Ingredient{}).
			Where("id = ?", ingredient.ID).
			Update("category", *category).Error; err != nil {
			return models.Ingredient{}, fmt.Errorf("update category of %q: %w", ingredient.Name, err)
		}
		applog.Debug(ctx, "ingredient category updated", "id", ingredient.ID, "category", *category)
		ingredient.Category = category
	}

	return ingredient, nil
}

// Create is the explicit add path. Adding a name that already exists is not
// an error: the existing record is returned with its category filled in if
// it had none. created reports whether a new row was inserted.
func (r *Registry) Create(ctx context.Context, rawName string, category *string, inStock bool) (ingredient models.Ingredient, created bool, err error) {
	name := names.Normalize(rawName)
	if name == "" {
		return models.Ingredient{}, false, apperr.Invalid("ingredient name is required")
	}
	category = cleanCategory(category)

	ingredient, created, err = r.insertOrLoad(ctx, models.Ingredient{
		Name:     name,
		NameKey:  names.Key(name),
		Category: category,
		InStock:  inStock,
	})
	if err != nil {
		return models.Ingredient{}, false, err
	}
	if created || category == nil || ingredient.Category != nil {
		return ingredient, created, nil
	}

	result := r.db.WithContext(ctx).Model(&models.Ingredient{}).
		Where("id = ? AND category IS NULL", ingredient.ID).
		Update("category", *category)
	if result.Error != nil {
		return models.Ingredient{}, false, fmt.Errorf("fill category of %q: %w", ingredient.Name, result.Error)
	}
	if result.RowsAffected > 0 {
		ingredient.Category = category
		return ingredient, false, nil
	}

	// Another writer filled the category first.
	ingredient, err = r.Get(ctx, ingredient.ID)
	return ingredient, false, err
}

// SetStock sets the in-stock flag of a single ingredient.
func (r *Registry) SetStock(ctx context.Context, id uint, inStock bool) (models.Ingredient, error) {
	ingredient, err := r.Get(ctx, id)
	if err != nil {
		return models.Ingredient{}, err
	}

	if err := r.db.WithContext(ctx).Model(&models.Ingredient{}).
		Where("id = ?", id).
		Update("in_stock", inStock).Error; err != nil {
		return models.Ingredient{}, fmt.Errorf("set stock of ingredient %d: %w", id, err)
	}

	ingredient.InStock = inStock
	return ingredient, nil
}

// ResetStock marks every ingredient out of stock and returns the listing.
func (r *Registry) ResetStock(ctx context.Context) ([]models.Ingredient, error) {
	result := r.db.WithContext(ctx).Model(&models.Ingredient{}).
		Where("in_stock = ?", true).
		Update("in_stock", false)
	if result.Error != nil {
		return nil, fmt.Errorf("reset stock: %w", result.Error)
	}
	applog.Info(ctx, "stock reset", "cleared", result.RowsAffected)
	return r.List(ctx)
}

// insertOrLoad inserts candidate unless its name_key is taken, then returns
// the stored row. The unique index arbitrates concurrent inserts.
func (r *Registry) insertOrLoad(ctx context.Context, candidate models.Ingredient) (models.Ingredient, bool, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name_key"}},
			DoNothing: true,
		}).
		Create(&candidate)
	if result.Error != nil && !errors.Is(result.Error, gorm.ErrDuplicatedKey) {
		return models.Ingredient{}, false, fmt.Errorf("insert ingredient %q: %w", candidate.Name, result.Error)
	}
	if result.Error == nil && result.RowsAffected == 1 {
		applog.Debug(ctx, "ingredient created", "id", candidate.ID, "name", candidate.Name)
		return candidate, true, nil
	}

	var existing models.Ingredient
	if err := r.db.WithContext(ctx).Where("name_key = ?", candidate.NameKey).Take(&existing).Error; err != nil {
		return models.Ingredient{}, false, fmt.Errorf("reload ingredient %q: %w", candidate.Name, err)
	}
	return existing, false, nil
}

func cleanCategory(category *string) *string {
	if category == nil {
		return nil
	}
	clean := names.Normalize(*category)
	if clean == "" {
		return nil
	}
	return &clean
}
