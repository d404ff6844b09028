package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestGetProviderCatalog_UnknownProvider(t *testing.T) {
	h := testHandler()
	r := gin.New()
	r.GET("/catalog/:provider", h.GetProviderCatalog)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/catalog/nosuch", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestGetProviderCatalog_NameIsCaseInsensitive(t *testing.T) {
	h := testHandler()
	r := gin.New()
	r.GET("/catalog/:provider", h.GetProviderCatalog)

	// "TANGO" lowercases to "tango"; without a configured adapter it is
	// still a 404, not a routing mismatch.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/catalog/TANGO", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestHealth_NoDatabase(t *testing.T) {
	h := testHandler()
	r := gin.New()
	r.GET("/health", h.Health)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", w.Code)
	}
}
