package handlers

import (
	"github.com/alexedwards/scs/v2"
	"gorm.io/gorm"

	"cabinet/internal/inventory"
	"cabinet/internal/recipes"
)

const (
	sessionDrinkFilterKey = "drinks:filter"
	sessionDrinkQueryKey  = "drinks:query"
)

var (
	sessionManager *scs.SessionManager
	database       *gorm.DB
)

// Configure installs the shared dependencies used by the HTTP handlers.
func Configure(sm *scs.SessionManager, db *gorm.DB) {
	sessionManager = sm
	database = db
}

func registry() *inventory.Registry {
	return inventory.NewRegistry(database)
}

func store() *recipes.Store {
	return recipes.NewStore(database)
}
