package pages

import (
	"strings"

	"cabinet/internal/availability"
	"cabinet/models"
)

// DefaultDash returns a dash when the provided value is empty or whitespace.
func DefaultDash(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}

// CategoryLabel renders an ingredient category, or a dash when unset.
func CategoryLabel(ingredient models.Ingredient) string {
	return DefaultDash(ingredient.CategoryValue())
}

// StatusClass maps an availability status to the badge modifier used by the stylesheet.
func StatusClass(summary availability.Summary) string {
	switch summary.Status() {
	case availability.StatusReady:
		return "badge badge--ready"
	case availability.StatusPartial:
		return "badge badge--partial"
	default:
		return "badge badge--out"
	}
}

// StockedCount counts ingredients currently in stock.
func StockedCount(ingredients []models.Ingredient) int {
	count := 0
	for _, ingredient := range ingredients {
		if ingredient.InStock {
			count++
		}
	}
	return count
}
