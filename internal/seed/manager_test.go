package seed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"cabinet/internal/apperr"
	"cabinet/internal/db/dbtest"
	"cabinet/internal/inventory"
	"cabinet/internal/names"
	"cabinet/internal/recipes"
	"cabinet/models"
)

func counts(t *testing.T, database *gorm.DB) (ingredients, drinks, links int64) {
	t.Helper()
	require.NoError(t, database.Model(&models.Ingredient{}).Count(&ingredients).Error)
	require.NoError(t, database.Model(&models.Drink{}).Count(&drinks).Error)
	require.NoError(t, database.Model(&models.DrinkIngredient{}).Count(&links).Error)
	return ingredients, drinks, links
}

func smallCatalog(version int) Catalog {
	return Catalog{
		Version: version,
		Ingredients: []Ingredient{
			{Name: "Gin", Category: "Base Spirit"},
			{Name: "Lemon juice", Category: "Juice"},
			{Name: "Prosecco", Category: "Wine"},
		},
		Drinks: []Drink{
			{Name: "French 75", Ingredients: []string{"Gin", "lemon juice", "Prosecco"}, Instructions: "Shake, strain, top."},
		},
	}
}

func TestDefaultCatalogAppliesCleanly(t *testing.T) {
	ctx := context.Background()
	database := dbtest.Open(t)
	manager := NewManager(database)

	catalog, err := Default()
	require.NoError(t, err)
	require.Len(t, catalog.Ingredients, 30)
	require.Len(t, catalog.Drinks, 30)

	expectedLinks := 0
	for _, drink := range catalog.Drinks {
		expectedLinks += len(names.Dedupe(drink.Ingredients))
	}

	result, err := manager.ApplyIfNeeded(ctx, catalog)
	require.NoError(t, err)
	assert.True(t, result.Applied)
	assert.Equal(t, 0, result.PreviousVersion)
	assert.Equal(t, 30, result.IngredientsCreated)
	assert.Equal(t, 30, result.DrinksCreated)
	assert.Equal(t, expectedLinks, result.LinksCreated)
	assert.Empty(t, result.SkippedReferences)

	version, err := manager.StoredVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, catalog.Version, version)

	drinks, err := recipes.NewStore(database).List(ctx)
	require.NoError(t, err)
	require.Len(t, drinks, 30)
	for _, drink := range drinks {
		assert.NotEmpty(t, drink.Ingredients, drink.Name)
		assert.False(t, drink.Availability.Ready, drink.Name)
	}
}

func TestApplyIfNeededIsIdempotent(t *testing.T) {
	ctx := context.Background()
	database := dbtest.Open(t)
	manager := NewManager(database)

	_, err := manager.ApplyIfNeeded(ctx, smallCatalog(1))
	require.NoError(t, err)
	i1, d1, l1 := counts(t, database)

	result, err := manager.ApplyIfNeeded(ctx, smallCatalog(1))
	require.NoError(t, err)
	assert.False(t, result.Applied)
	assert.Equal(t, 1, result.PreviousVersion)

	i2, d2, l2 := counts(t, database)
	assert.Equal(t, []int64{i1, d1, l1}, []int64{i2, d2, l2})
}

func TestVersionBumpAddsOnlyNewRows(t *testing.T) {
	ctx := context.Background()
	database := dbtest.Open(t)
	manager := NewManager(database)

	_, err := manager.ApplyIfNeeded(ctx, smallCatalog(1))
	require.NoError(t, err)
	_, drinksBefore, _ := counts(t, database)

	next := smallCatalog(2)
	next.Ingredients = append(next.Ingredients, Ingredient{Name: "Orange juice", Category: "Juice"})
	next.Drinks = append(next.Drinks, Drink{Name: "Mimosa", Ingredients: []string{"Orange juice", "Prosecco"}, Instructions: "Pour."})

	result, err := manager.ApplyIfNeeded(ctx, next)
	require.NoError(t, err)
	assert.True(t, result.Applied)
	assert.Equal(t, 1, result.IngredientsCreated)
	assert.Equal(t, 1, result.DrinksCreated)
	assert.Equal(t, 2, result.LinksCreated)

	ingredients, drinksAfter, links := counts(t, database)
	assert.Equal(t, drinksBefore+1, drinksAfter)
	assert.EqualValues(t, 4, ingredients)
	assert.EqualValues(t, 5, links)

	// Older catalogs never roll the marker back.
	result, err = manager.ApplyIfNeeded(ctx, smallCatalog(1))
	require.NoError(t, err)
	assert.False(t, result.Applied)
	version, err := manager.StoredVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, version)
}

func TestSeedKeepsUserDataAndFillsMissingCategories(t *testing.T) {
	ctx := context.Background()
	database := dbtest.Open(t)
	registry := inventory.NewRegistry(database)

	mixer := "Mixer"
	gin, _, err := registry.Create(ctx, "GIN", &mixer, true)
	require.NoError(t, err)
	prosecco, _, err := registry.Create(ctx, "prosecco", nil, true)
	require.NoError(t, err)

	_, err = NewManager(database).ApplyIfNeeded(ctx, smallCatalog(1))
	require.NoError(t, err)

	gin, err = registry.Get(ctx, gin.ID)
	require.NoError(t, err)
	assert.Equal(t, "GIN", gin.Name)
	assert.Equal(t, "Mixer", gin.CategoryValue(), "existing category is never overwritten")
	assert.True(t, gin.InStock)

	prosecco, err = registry.Get(ctx, prosecco.ID)
	require.NoError(t, err)
	assert.Equal(t, "Wine", prosecco.CategoryValue())
	assert.True(t, prosecco.InStock)

	ingredients, _, _ := counts(t, database)
	assert.EqualValues(t, 3, ingredients)
}

func TestSeedSkipsUnknownIngredientReferences(t *testing.T) {
	ctx := context.Background()
	database := dbtest.Open(t)

	catalog := smallCatalog(1)
	catalog.Drinks[0].Ingredients = append(catalog.Drinks[0].Ingredients, "Lemon juices")

	result, err := NewManager(database).ApplyIfNeeded(ctx, catalog)
	require.NoError(t, err)
	assert.Equal(t, []string{"French 75: Lemon juices"}, result.SkippedReferences)
	assert.Equal(t, 3, result.LinksCreated)

	ingredients, drinks, _ := counts(t, database)
	assert.EqualValues(t, 3, ingredients, "unknown references are not created")
	assert.EqualValues(t, 1, drinks)
}

func TestSeedLinksIntoExistingDrink(t *testing.T) {
	ctx := context.Background()
	database := dbtest.Open(t)

	_, err := recipes.NewStore(database).Create(ctx, recipes.CreateInput{
		Name:         "french 75",
		Instructions: "House version.",
		Ingredients:  []string{"Gin", "Prosecco"},
	})
	require.NoError(t, err)

	result, err := NewManager(database).ApplyIfNeeded(ctx, smallCatalog(1))
	require.NoError(t, err)
	assert.Equal(t, 0, result.DrinksCreated)
	assert.Equal(t, 1, result.LinksCreated)

	drinks, err := recipes.NewStore(database).List(ctx)
	require.NoError(t, err)
	require.Len(t, drinks, 1)
	assert.Equal(t, "House version.", drinks[0].Instructions)
	assert.Len(t, drinks[0].Ingredients, 3)
}

func TestParseRejectsInvalidCatalogs(t *testing.T) {
	_, err := Parse([]byte("version: 0\n"))
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)

	_, err = Parse([]byte("version: [\n"))
	assert.Error(t, err)

	catalog, err := Parse([]byte("version: 3\ningredients:\n  - name: Cola\n    category: Soda\n"))
	require.NoError(t, err)
	assert.Equal(t, 3, catalog.Version)
	assert.Equal(t, []Ingredient{{Name: "Cola", Category: "Soda"}}, catalog.Ingredients)

	_, err = NewManager(dbtest.Open(t)).ApplyIfNeeded(context.Background(), Catalog{})
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
}
