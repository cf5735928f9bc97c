package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRequestLoggingKeepsResponseControllerAccess(t *testing.T) {
	handler := withRequestLogging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
		if err := http.NewResponseController(w).Flush(); err != nil {
			t.Errorf("flush through middleware: %v", err)
		}
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if rr.Code != http.StatusAccepted {
		t.Fatalf("expected status 202, got %d", rr.Code)
	}
	if !rr.Flushed {
		t.Fatal("expected the underlying recorder to be flushed")
	}
	if rr.Header().Get(requestIDHeader) == "" {
		t.Fatal("expected a request id header")
	}
}
