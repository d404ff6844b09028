package providers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestBlackhawkFetchCatalog(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-Api-Key"); got != "bhn-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		q := r.URL.Query()
		if q.Get("country") != "US" || q.Get("currency") != "USD" {
			t.Errorf("query = %s, want country=US currency=USD", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{
				"contentProviderCode": "BHN-001",
				"parentBrandName": "Acme",
				"productName": "Acme eGift",
				"productDescription": "Redeemable online",
				"logoImage": "https://cdn.example.com/acme-logo.png",
				"valueRestrictions": {"minimum": 10, "maximum": 250}
			},
			{
				"productName": "Broken Row"
			}
		]`))
	}))
	defer srv.Close()

	adapter := NewBlackhawk(srv.URL, "bhn-key", "US", "USD")
	products, err := adapter.FetchCatalog(context.Background())
	if err != nil {
		t.Fatalf("FetchCatalog: %v", err)
	}
	if len(products) != 1 {
		t.Fatalf("expected 1 product (row without contentProviderCode skipped), got %d", len(products))
	}
	p := products[0]
	if p.ProductID != "BHN-001" || p.BrandName != "Acme" {
		t.Errorf("unexpected product %+v", p)
	}
	if p.ImageURL != "https://cdn.example.com/acme-logo.png" {
		t.Errorf("image = %q, want the logo fallback", p.ImageURL)
	}
	if p.MinValue != 10 || p.MaxValue != 250 {
		t.Errorf("value range = (%v, %v), want (10, 250)", p.MinValue, p.MaxValue)
	}
}

func TestBlackhawkFetchCatalog_Non2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	adapter := NewBlackhawk(srv.URL, "bhn-key", "US", "USD")
	if _, err := adapter.FetchCatalog(context.Background()); err == nil {
		t.Fatal("expected error on 500 response")
	}
}
