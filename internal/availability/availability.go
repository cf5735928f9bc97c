// Package availability derives whether a drink can be mixed from the current
// stock. Nothing here is persisted; summaries are recomputed on every read.
package availability

import (
	"encoding/json"
	"fmt"

	"cabinet/models"
)

// StockLookup maps ingredient ids to their in-stock flag. A lookup may be
// partial; ingredients missing from it fall back to their own flag.
type StockLookup map[uint]bool

// LookupFrom builds a StockLookup from an ingredient listing.
func LookupFrom(ingredients []models.Ingredient) StockLookup {
	lookup := make(StockLookup, len(ingredients))
	for _, ingredient := range ingredients {
		lookup[ingredient.ID] = ingredient.InStock
	}
	return lookup
}

// InStock reports the effective stock flag for ingredient.
func (l StockLookup) InStock(ingredient models.Ingredient) bool {
	if inStock, ok := l[ingredient.ID]; ok {
		return inStock
	}
	return ingredient.InStock
}

// Status is the coarse classification shown next to a drink.
type Status string

const (
	StatusReady   Status = "ready"
	StatusPartial Status = "partial"
	StatusOut     Status = "out"
)

// Summary is the availability of one drink.
type Summary struct {
	Total     int      `json:"total"`
	Available int      `json:"available"`
	Missing   []string `json:"missing"`
	Ready     bool     `json:"ready"`
}

// Derive computes the availability of a drink made from ingredients. A drink
// without ingredients is never ready.
func Derive(ingredients []models.Ingredient, lookup StockLookup) Summary {
	summary := Summary{
		Total:   len(ingredients),
		Missing: make([]string, 0),
	}
	for _, ingredient := range ingredients {
		if lookup.InStock(ingredient) {
			summary.Available++
			continue
		}
		summary.Missing = append(summary.Missing, ingredient.Name)
	}
	summary.Ready = summary.Total > 0 && len(summary.Missing) == 0
	return summary
}

// Status classifies the summary: ready, partially stocked or out entirely.
func (s Summary) Status() Status {
	switch {
	case s.Ready:
		return StatusReady
	case len(s.Missing) == s.Total:
		return StatusOut
	default:
		return StatusPartial
	}
}

// MarshalJSON encodes the summary together with its derived status.
func (s Summary) MarshalJSON() ([]byte, error) {
	type plain Summary
	return json.Marshal(struct {
		plain
		Status Status `json:"status"`
	}{plain(s), s.Status()})
}

// Label is a short human readable description of the summary.
func (s Summary) Label() string {
	switch s.Status() {
	case StatusReady:
		return "Ready to mix"
	case StatusOut:
		return "Missing every ingredient"
	default:
		return fmt.Sprintf("Missing %d of %d", len(s.Missing), s.Total)
	}
}

