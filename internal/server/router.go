package server

import (
	"context"
	"net/http"
	"strings"

	"cabinet/internal/handlers"
	applog "cabinet/internal/log"
)

const defaultStaticDir = "web/static"

func newRouter(staticDir string) http.Handler {
	if strings.TrimSpace(staticDir) == "" {
		staticDir = defaultStaticDir
	}

	mux := http.NewServeMux()
	applog.Debug(context.Background(), "registering http routes")

	routes := []struct {
		pattern string
		handler http.HandlerFunc
	}{
		{"GET /healthz", handlers.Health},
		{"GET /api/ingredients", handlers.ListIngredients},
		{"POST /api/ingredients", handlers.CreateIngredient},
		{"POST /api/ingredients/reset", handlers.ResetIngredients},
		{"PATCH /api/ingredients/{id}", handlers.UpdateIngredientStock},
		{"GET /api/drinks", handlers.ListDrinks},
		{"POST /api/drinks", handlers.CreateDrink},
		{"GET /{$}", handlers.Home},
	}
	for _, route := range routes {
		mux.HandleFunc(route.pattern, route.handler)
		applog.Debug(context.Background(), "route registered", "pattern", route.pattern)
	}

	mux.Handle("GET /assets/", http.StripPrefix("/assets/", http.FileServer(http.Dir(staticDir))))
	applog.Debug(context.Background(), "route registered", "path", "/assets/", "static", staticDir)
	return mux
}
