package handlers

import (
	"net/http"
	"strings"

	"cabinet/internal/apperr"
	"cabinet/internal/availability"
	"cabinet/internal/views/pages"
)

// Home renders the cabinet page. HTMX requests receive only the drink list so
// filter changes can swap it in place.
func Home(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if database == nil {
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}
	ctx := r.Context()

	filters, err := pageFilters(r)
	if err != nil {
		http.Error(w, apperr.Message(err), http.StatusBadRequest)
		return
	}

	ingredients, err := registry().List(ctx)
	if err != nil {
		http.Error(w, "unable to load ingredients", http.StatusInternalServerError)
		return
	}
	drinks, err := store().List(ctx)
	if err != nil {
		http.Error(w, "unable to load drinks", http.StatusInternalServerError)
		return
	}

	snapshot := pages.CabinetSnapshot{
		Ingredients: ingredients,
		Drinks:      filters.Apply(drinks),
		Total:       len(drinks),
		Filters:     filters,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	component := pages.Cabinet(snapshot)
	if isHTMX(r) {
		component = pages.DrinkList(snapshot)
	}
	if err := component.Render(ctx, w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// pageFilters resolves the page's filter mode and query, falling back to the
// values remembered in the session when a parameter is absent.
func pageFilters(r *http.Request) (pages.DrinkFilters, error) {
	params := r.URL.Query()

	rawMode := params.Get("filter")
	if !params.Has("filter") {
		rawMode = sessionString(r, sessionDrinkFilterKey)
	}
	mode, err := availability.ParseMode(rawMode)
	if err != nil {
		return pages.DrinkFilters{}, err
	}

	query := strings.TrimSpace(params.Get("q"))
	if !params.Has("q") {
		query = sessionString(r, sessionDrinkQueryKey)
	}

	if sessionManager != nil {
		sessionManager.Put(r.Context(), sessionDrinkFilterKey, string(mode))
		sessionManager.Put(r.Context(), sessionDrinkQueryKey, query)
	}
	return pages.DrinkFilters{Mode: mode, Query: query}, nil
}

func sessionString(r *http.Request, key string) string {
	if sessionManager == nil {
		return ""
	}
	return sessionManager.GetString(r.Context(), key)
}
