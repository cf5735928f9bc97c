package mock

import (
	"context"

	"gorm.io/gorm"

	"cabinet/internal/config"
	"cabinet/internal/db"
	"cabinet/internal/inventory"
	applog "cabinet/internal/log"
	"cabinet/internal/seed"
)

// DSN is the shared in-memory sqlite database used by the mock.
const DSN = "file:cabinet-mock?mode=memory&cache=shared"

// stocked are marked in stock so the mock shows a mix of ready and partial drinks.
var stocked = []string{
	"Vodka",
	"Gin",
	"Lime juice",
	"Lemon juice",
	"Orange juice",
	"Ginger beer",
	"Prosecco",
	"Simple syrup",
}

// New returns an in-memory sqlite database seeded with the reference catalog
// and a partly stocked cabinet.
func New(ctx context.Context) (*gorm.DB, error) {
	applog.Debug(ctx, "initialising mock database")

	database, err := db.Initialize(config.DatabaseConfig{URL: DSN})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(database); err != nil {
		return nil, err
	}

	if err := populate(ctx, database); err != nil {
		return nil, err
	}

	applog.Debug(ctx, "mock database ready")
	return database, nil
}

func populate(ctx context.Context, database *gorm.DB) error {
	applog.Debug(ctx, "seeding mock database")

	catalog, err := seed.Default()
	if err != nil {
		return err
	}
	if _, err := seed.NewManager(database).ApplyIfNeeded(ctx, catalog); err != nil {
		return err
	}

	registry := inventory.NewRegistry(database)
	for _, name := range stocked {
		ingredient, err := registry.FindByName(ctx, name)
		if err != nil {
			return err
		}
		if _, err := registry.SetStock(ctx, ingredient.ID, true); err != nil {
			return err
		}
	}

	applog.Debug(ctx, "mock database seeded", "stocked", len(stocked))
	return nil
}
