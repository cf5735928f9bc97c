package availability

import (
	"strings"

	"cabinet/internal/apperr"
	"cabinet/internal/names"
)

// Mode selects which drinks a listing keeps.
type Mode string

const (
	ModeAll     Mode = "all"
	ModeReady   Mode = "ready"
	ModeMissing Mode = "missing"
)

// ParseMode validates a filter mode. An empty value selects ModeAll.
func ParseMode(value string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(value))) {
	case "", ModeAll:
		return ModeAll, nil
	case ModeReady:
		return ModeReady, nil
	case ModeMissing:
		return ModeMissing, nil
	default:
		return "", apperr.Invalid("unknown filter %q: must be all, ready or missing", value)
	}
}

// Item is the searchable view of a drink.
type Item struct {
	Name         string
	Instructions string
	Ingredients  []string
	Summary      Summary
}

// Matches reports whether item passes both the mode and the free-text query.
// The query matches case-insensitively against the name, the instructions
// and every ingredient name; an empty query matches everything.
func Matches(item Item, mode Mode, query string) bool {
	switch mode {
	case ModeReady:
		if !item.Summary.Ready {
			return false
		}
	case ModeMissing:
		if len(item.Summary.Missing) == 0 {
			return false
		}
	}
	return matchesQuery(item, query)
}

// Filter keeps the items passing Matches, preserving order.
func Filter(items []Item, mode Mode, query string) []Item {
	kept := make([]Item, 0, len(items))
	for _, item := range items {
		if Matches(item, mode, query) {
			kept = append(kept, item)
		}
	}
	return kept
}

func matchesQuery(item Item, query string) bool {
	needle := names.Fold(strings.TrimSpace(query))
	if needle == "" {
		return true
	}
	if containsFold(item.Name, needle) || containsFold(item.Instructions, needle) {
		return true
	}
	for _, ingredient := range item.Ingredients {
		if containsFold(ingredient, needle) {
			return true
		}
	}
	return false
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(names.Fold(haystack), needle)
}
