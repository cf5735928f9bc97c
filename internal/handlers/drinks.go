package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"cabinet/internal/availability"
	applog "cabinet/internal/log"
	"cabinet/internal/recipes"
	"cabinet/internal/views/pages"
)

type drinkCreateRequest struct {
	Name         string   `json:"name"`
	Instructions string   `json:"instructions"`
	Ingredients  []string `json:"ingredients"`
}

// ListDrinks returns drinks with availability derived from current stock,
// narrowed only by the filter and q parameters present on the request.
func ListDrinks(w http.ResponseWriter, r *http.Request) {
	if !databaseReady(w, r) {
		return
	}
	ctx := r.Context()

	filters, err := drinkFilters(r)
	if err != nil {
		writeAppError(w, r, err, "unable to load drinks")
		return
	}

	drinks, err := store().List(ctx)
	if err != nil {
		writeAppError(w, r, err, "unable to load drinks")
		return
	}

	writeJSON(w, http.StatusOK, filters.Apply(drinks))
}

// CreateDrink stores a new drink, creating any ingredients it names.
func CreateDrink(w http.ResponseWriter, r *http.Request) {
	if !databaseReady(w, r) {
		return
	}
	ctx := r.Context()

	var payload drinkCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		applog.Debug(ctx, "invalid drink payload", "error", err)
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	drink, err := store().Create(ctx, recipes.CreateInput{
		Name:         payload.Name,
		Instructions: payload.Instructions,
		Ingredients:  payload.Ingredients,
	})
	if err != nil {
		writeAppError(w, r, err, "unable to save drink")
		return
	}
	writeJSON(w, http.StatusCreated, drink)
}

// drinkFilters resolves the filter mode and query from the request alone.
// Missing parameters mean no narrowing.
func drinkFilters(r *http.Request) (pages.DrinkFilters, error) {
	params := r.URL.Query()
	mode, err := availability.ParseMode(params.Get("filter"))
	if err != nil {
		return pages.DrinkFilters{}, err
	}
	return pages.DrinkFilters{Mode: mode, Query: strings.TrimSpace(params.Get("q"))}, nil
}
