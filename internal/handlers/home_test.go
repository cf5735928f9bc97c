package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHomeRendersCabinet(t *testing.T) {
	db := withTestDatabase(t)
	seedDrinks(t, db)

	w := serve(Home, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Fatalf("unexpected content type %q", ct)
	}
	body := w.Body.String()
	for _, want := range []string{"<!DOCTYPE html>", "Martini", "Mojito", "2 of 4 in stock"} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected page to contain %q", want)
		}
	}
}

func TestHomeServesDrinkListToHTMX(t *testing.T) {
	db := withTestDatabase(t)
	seedDrinks(t, db)

	req := httptest.NewRequest(http.MethodGet, "/?filter=ready", nil)
	req.Header.Set("HX-Request", "true")
	w := serve(Home, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	body := w.Body.String()
	if strings.Contains(body, "<html") {
		t.Fatal("expected only the drink list fragment")
	}
	if !strings.Contains(body, "Martini") || strings.Contains(body, "Mojito") {
		t.Fatalf("expected only ready drinks in fragment: %s", body)
	}
}

func TestHomeRejectsUnknownPathsAndFilters(t *testing.T) {
	withTestDatabase(t)

	if w := serve(Home, httptest.NewRequest(http.MethodGet, "/missing", nil)); w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", w.Code)
	}
	if w := serve(Home, httptest.NewRequest(http.MethodGet, "/?filter=nope", nil)); w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}
}

func TestHomeRemembersFiltersInSession(t *testing.T) {
	db := withTestDatabase(t)
	withTestSessionManager(t)
	seedDrinks(t, db)

	first := serve(Home, httptest.NewRequest(http.MethodGet, "/?filter=ready&q=mar", nil))
	if first.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", first.Code)
	}
	cookies := first.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("expected a session cookie")
	}

	withCookies := func(target string) *http.Request {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		req.Header.Set("HX-Request", "true")
		for _, cookie := range cookies {
			req.AddCookie(cookie)
		}
		return req
	}

	body := serve(Home, withCookies("/")).Body.String()
	if !strings.Contains(body, "Martini") || strings.Contains(body, "Mojito") {
		t.Fatalf("expected remembered ready filter: %s", body)
	}

	body = serve(Home, withCookies("/?filter=&q=")).Body.String()
	if !strings.Contains(body, "Martini") || !strings.Contains(body, "Mojito") {
		t.Fatalf("expected explicit empty filters to show every drink: %s", body)
	}
}
