package pages

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"

	"cabinet/internal/recipes"
	"cabinet/models"
)

// CabinetSnapshot is everything the cabinet page shows in one render.
type CabinetSnapshot struct {
	Ingredients []models.Ingredient
	Drinks      []recipes.Drink
	// Total counts drinks before filtering.
	Total   int
	Filters DrinkFilters
}

// Cabinet renders the full page: stock on one side, drinks on the other.
func Cabinet(snapshot CabinetSnapshot) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		b.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		b.WriteString(`<title>Drink Cabinet</title>`)
		b.WriteString(`<link rel="stylesheet" href="/assets/app.css">`)
		b.WriteString(`<script src="https://unpkg.com/htmx.org@2.0.3" defer></script><script src="/assets/app.js" defer></script>`)
		b.WriteString(`</head><body><main class="cabinet">`)

		fmt.Fprintf(&b, `<section class="stock" aria-labelledby="stock-heading"><h2 id="stock-heading">Cabinet <small>%d of %d in stock</small></h2><ul class="ingredients">`,
			StockedCount(snapshot.Ingredients), len(snapshot.Ingredients))
		for _, ingredient := range snapshot.Ingredients {
			checked := ""
			if ingredient.InStock {
				checked = " checked"
			}
			fmt.Fprintf(&b, `<li data-ingredient-id="%d"><label><input type="checkbox" name="inStock"%s> %s</label> <span class="category">%s</span></li>`,
				ingredient.ID, checked, templ.EscapeString(ingredient.Name), templ.EscapeString(CategoryLabel(ingredient)))
		}
		b.WriteString(`</ul></section>`)

		b.WriteString(`<section class="drinks" aria-labelledby="drinks-heading"><h2 id="drinks-heading">Drinks</h2>`)
		b.WriteString(`<form class="filters" hx-get="/" hx-target="#drink-list" hx-swap="outerHTML" hx-trigger="change, input delay:250ms">`)
		b.WriteString(`<select name="filter">`)
		for _, mode := range FilterOptions() {
			selected := ""
			if mode == snapshot.Filters.Mode {
				selected = " selected"
			}
			fmt.Fprintf(&b, `<option value="%s"%s>%s</option>`, mode, selected, templ.EscapeString(FilterLabel(mode)))
		}
		fmt.Fprintf(&b, `</select><input type="search" name="q" placeholder="Search drinks" value="%s"></form>`,
			templ.EscapeString(snapshot.Filters.Query))
		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}

		if err := DrinkList(snapshot).Render(ctx, w); err != nil {
			return err
		}

		_, err := io.WriteString(w, `</section></main></body></html>`)
		return err
	})
}

// DrinkList renders the filtered drinks. It is also served alone for HTMX swaps.
func DrinkList(snapshot CabinetSnapshot) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		fmt.Fprintf(&b, `<div id="drink-list" data-count="%d" data-total="%d">`, len(snapshot.Drinks), snapshot.Total)
		if len(snapshot.Drinks) == 0 {
			b.WriteString(`<p class="empty">No drinks match these filters.</p>`)
		}
		for _, drink := range snapshot.Drinks {
			summary := drink.Availability
			fmt.Fprintf(&b, `<article class="drink" data-drink-id="%d" data-status="%s"><header><h3>%s</h3><span class="%s">%s</span></header>`,
				drink.ID, summary.Status(), templ.EscapeString(drink.Name), StatusClass(summary), templ.EscapeString(summary.Label()))
			b.WriteString(`<ul class="drink-ingredients">`)
			for _, ingredient := range drink.Ingredients {
				state := "missing"
				if ingredient.InStock {
					state = "stocked"
				}
				fmt.Fprintf(&b, `<li class="%s">%s</li>`, state, templ.EscapeString(ingredient.Name))
			}
			fmt.Fprintf(&b, `</ul><p class="instructions">%s</p></article>`, templ.EscapeString(drink.Instructions))
		}
		b.WriteString(`</div>`)
		_, err := io.WriteString(w, b.String())
		return err
	})
}
