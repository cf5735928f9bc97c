package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"cabinet/internal/db/dbtest"
	"cabinet/internal/handlers"
	"cabinet/internal/recipes"
)

func newTestServer(t *testing.T, cfg Config) *Server {
	t.Helper()
	srv, err := New(cfg)
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}
	t.Cleanup(func() {
		handlers.Configure(nil, nil)
	})
	return srv
}

func TestNewAppliesSessionDefaults(t *testing.T) {
	db := dbtest.Open(t)
	srv := newTestServer(t, Config{Addr: ":8080", Session: SessionConfig{CookieSecure: true}, Database: db})

	if srv.httpServer.Addr != ":8080" {
		t.Fatalf("expected server addr :8080, got %q", srv.httpServer.Addr)
	}

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/?filter=ready", nil)
	srv.Handler().ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	cookies := rr.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("expected session cookie to be set")
	}
	if cookies[0].Name != "cabinet_session" {
		t.Fatalf("expected default session cookie name, got %q", cookies[0].Name)
	}
	if !cookies[0].Secure || !cookies[0].HttpOnly {
		t.Fatalf("expected secure http-only cookie, got %+v", cookies[0])
	}
}

func TestServerHandler(t *testing.T) {
	srv := newTestServer(t, Config{Addr: ":9090"})

	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected /healthz to return 200, got %d", rr.Code)
	}
	if id := rr.Header().Get(requestIDHeader); id == "" {
		t.Fatal("expected a generated request id")
	}
}

func TestRequestIDIsEchoedWhenValid(t *testing.T) {
	srv := newTestServer(t, Config{})
	const id = "0b5c3a2e-7f43-4b8e-9d2e-1f0c4c7b9a11"

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(requestIDHeader, id)
	srv.Handler().ServeHTTP(rr, req)
	if got := rr.Header().Get(requestIDHeader); got != id {
		t.Fatalf("expected request id %q to be echoed, got %q", id, got)
	}

	rr = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(requestIDHeader, "not-a-uuid")
	srv.Handler().ServeHTTP(rr, req)
	if got := rr.Header().Get(requestIDHeader); got == "not-a-uuid" || got == "" {
		t.Fatalf("expected malformed request id to be replaced, got %q", got)
	}
}

func TestAPIRoundTrip(t *testing.T) {
	db := dbtest.Open(t)
	srv := newTestServer(t, Config{Database: db})
	handler := srv.Handler()

	do := func(method, target, body string) *httptest.ResponseRecorder {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		handler.ServeHTTP(rr, req)
		return rr
	}

	if rr := do(http.MethodPost, "/api/ingredients", `{"name":"Gin","inStock":true}`); rr.Code != http.StatusCreated {
		t.Fatalf("expected ingredient create 201, got %d", rr.Code)
	}
	rr := do(http.MethodPost, "/api/drinks", `{"name":"Martini","instructions":"Stir.","ingredients":["gin","Dry vermouth"]}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected drink create 201, got %d: %s", rr.Code, rr.Body.String())
	}
	var drink recipes.Drink
	if err := json.Unmarshal(rr.Body.Bytes(), &drink); err != nil {
		t.Fatalf("failed to decode drink: %v", err)
	}

	var vermouthID uint
	for _, ingredient := range drink.Ingredients {
		if ingredient.Name == "Dry vermouth" {
			vermouthID = ingredient.ID
		}
	}
	if vermouthID == 0 {
		t.Fatalf("expected vermouth to be created with the drink: %+v", drink.Ingredients)
	}

	if rr := do(http.MethodPatch, "/api/ingredients/"+strconv.FormatUint(uint64(vermouthID), 10), `{"inStock":true}`); rr.Code != http.StatusOK {
		t.Fatalf("expected stock update 200, got %d", rr.Code)
	}

	rr = do(http.MethodGet, "/api/drinks?filter=ready", "")
	var ready []recipes.Drink
	if err := json.Unmarshal(rr.Body.Bytes(), &ready); err != nil {
		t.Fatalf("failed to decode drinks: %v", err)
	}
	if len(ready) != 1 || !ready[0].Availability.Ready {
		t.Fatalf("expected Martini to be ready, got %+v", ready)
	}

	if rr := do(http.MethodPost, "/api/ingredients/reset", ""); rr.Code != http.StatusOK {
		t.Fatalf("expected reset 200, got %d", rr.Code)
	}
	rr = do(http.MethodGet, "/api/drinks?filter=ready", "")
	if err := json.Unmarshal(rr.Body.Bytes(), &ready); err != nil {
		t.Fatalf("failed to decode drinks: %v", err)
	}
	if len(ready) != 0 {
		t.Fatalf("expected no ready drinks after reset, got %d", len(ready))
	}

	if rr := do(http.MethodDelete, "/api/drinks", ""); rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405 for unsupported method, got %d", rr.Code)
	}
}

func TestStaticAssetsServedFromConfiguredDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "app.css"), []byte("body{}"), 0o644); err != nil {
		t.Fatalf("failed to write asset: %v", err)
	}
	srv := newTestServer(t, Config{StaticDir: dir})

	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/assets/app.css", nil))
	if rr.Code != http.StatusOK || rr.Body.String() != "body{}" {
		t.Fatalf("expected asset to be served, got %d %q", rr.Code, rr.Body.String())
	}
}
