package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/poyntloop/rewards-admin-service/internal/models"
)

func TestValidateProvider(t *testing.T) {
	tests := []struct {
		name     string
		provider models.Provider
		wantMsg  string
		wantKind models.ProviderKind
	}{
		{
			name:     "valid giftcard",
			provider: models.Provider{Name: "tango", Code: "T", Kind: models.ProviderKindGiftcard},
			wantKind: models.ProviderKindGiftcard,
		},
		{
			name:     "kind defaults to giftcard",
			provider: models.Provider{Name: "tango", Code: "T"},
			wantKind: models.ProviderKindGiftcard,
		},
		{
			name:     "blank name rejected",
			provider: models.Provider{Name: "   ", Code: "T"},
			wantMsg:  "name is required",
		},
		{
			name:     "multi-letter code rejected",
			provider: models.Provider{Name: "tango", Code: "TG"},
			wantMsg:  "code must be a single letter",
		},
		{
			name:     "empty code allowed",
			provider: models.Provider{Name: "internal-offers", Kind: models.ProviderKindOffer},
			wantKind: models.ProviderKindOffer,
		},
		{
			name:     "unknown kind rejected",
			provider: models.Provider{Name: "tango", Kind: "voucher"},
			wantMsg:  "kind must be 'giftcard' or 'offer'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.provider
			msg := validateProvider(&p)
			if msg != tt.wantMsg {
				t.Fatalf("validateProvider = %q, want %q", msg, tt.wantMsg)
			}
			if tt.wantMsg == "" && p.Kind != tt.wantKind {
				t.Errorf("Kind = %q, want %q", p.Kind, tt.wantKind)
			}
		})
	}
}

func TestUpdateProvider_BadID(t *testing.T) {
	h := testHandler()
	r := gin.New()
	r.PUT("/providers/:id", h.UpdateProvider)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/providers/abc", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestDeleteProvider_BadID(t *testing.T) {
	h := testHandler()
	r := gin.New()
	r.DELETE("/providers/:id", h.DeleteProvider)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/providers/abc", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}
