package pages

import (
	"cabinet/internal/availability"
	"cabinet/internal/recipes"
)

// DrinkFilters capture the client-driven state for the drink listing.
type DrinkFilters struct {
	Mode  availability.Mode
	Query string
}

// Apply narrows drinks to those matching the filters.
func (f DrinkFilters) Apply(drinks []recipes.Drink) []recipes.Drink {
	mode := f.Mode
	if mode == "" {
		mode = availability.ModeAll
	}
	return recipes.Filter(drinks, mode, f.Query)
}

// FilterOptions lists the selectable modes in display order.
func FilterOptions() []availability.Mode {
	return []availability.Mode{availability.ModeAll, availability.ModeReady, availability.ModeMissing}
}

// FilterLabel names a mode for the filter control.
func FilterLabel(mode availability.Mode) string {
	switch mode {
	case availability.ModeReady:
		return "Ready to mix"
	case availability.ModeMissing:
		return "Missing something"
	default:
		return "All drinks"
	}
}
