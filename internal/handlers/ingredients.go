package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	applog "cabinet/internal/log"
)

type ingredientCreateRequest struct {
	Name     string  `json:"name"`
	Category *string `json:"category"`
	InStock  bool    `json:"inStock"`
}

type ingredientStockRequest struct {
	InStock *bool `json:"inStock"`
}

// ListIngredients returns every ingredient ordered by name.
func ListIngredients(w http.ResponseWriter, r *http.Request) {
	if !databaseReady(w, r) {
		return
	}
	ingredients, err := registry().List(r.Context())
	if err != nil {
		writeAppError(w, r, err, "unable to load ingredients")
		return
	}
	writeJSON(w, http.StatusOK, ingredients)
}

// CreateIngredient adds an ingredient. Re-adding an existing name answers 200
// with the stored record instead of 201.
func CreateIngredient(w http.ResponseWriter, r *http.Request) {
	if !databaseReady(w, r) {
		return
	}
	ctx := r.Context()

	var payload ingredientCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		applog.Debug(ctx, "invalid ingredient payload", "error", err)
		writeJSONError(w, http.StatusBadRequest, "ingredient name is required")
		return
	}

	ingredient, created, err := registry().Create(ctx, payload.Name, payload.Category, payload.InStock)
	if err != nil {
		writeAppError(w, r, err, "unable to save ingredient")
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, ingredient)
}

// UpdateIngredientStock flips the in-stock flag of the ingredient named by
// the {id} path value.
func UpdateIngredientStock(w http.ResponseWriter, r *http.Request) {
	if !databaseReady(w, r) {
		return
	}
	ctx := r.Context()

	identifier := r.PathValue("id")
	id, err := strconv.ParseUint(identifier, 10, 64)
	if err != nil {
		applog.Debug(ctx, "invalid ingredient identifier", "identifier", identifier, "error", err)
		writeJSONError(w, http.StatusNotFound, "ingredient not found")
		return
	}

	var payload ingredientStockRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.InStock == nil {
		writeJSONError(w, http.StatusBadRequest, "inStock must be a boolean")
		return
	}

	ingredient, err := registry().SetStock(ctx, uint(id), *payload.InStock)
	if err != nil {
		writeAppError(w, r, err, "unable to update ingredient")
		return
	}
	writeJSON(w, http.StatusOK, ingredient)
}

// ResetIngredients marks every ingredient out of stock and returns the listing.
func ResetIngredients(w http.ResponseWriter, r *http.Request) {
	if !databaseReady(w, r) {
		return
	}
	ingredients, err := registry().ResetStock(r.Context())
	if err != nil {
		writeAppError(w, r, err, "unable to reset stock")
		return
	}
	writeJSON(w, http.StatusOK, ingredients)
}
