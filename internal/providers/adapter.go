// Package providers holds one catalog adapter per external gift-card
// provider. Each adapter owns its HTTP client and credentials and returns
// the provider's catalog in the normalized ProviderProduct shape.
package providers

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/poyntloop/rewards-admin-service/internal/models"
)

// Adapter is the per-provider fetch strategy, selected by name.
type Adapter interface {
	Name() string
	FetchCatalog(ctx context.Context) ([]models.ProviderProduct, error)
}

// defaultHTTPTimeout caps a single catalog call; the combined path layers
// its own per-branch context timeout on top.
const defaultHTTPTimeout = 15 * time.Second

func newHTTPClient() *http.Client {
	return &http.Client{Timeout: defaultHTTPTimeout}
}

// FromEnv builds every adapter whose credentials are configured, keyed by
// adapter name.
func FromEnv() map[string]Adapter {
	adapters := make(map[string]Adapter)
	if t := NewTangoFromEnv(); t != nil {
		adapters[t.Name()] = t
	}
	if b := NewBlackhawkFromEnv(); b != nil {
		adapters[b.Name()] = b
	}
	if tr := NewTremendousFromEnv(); tr != nil {
		adapters[tr.Name()] = tr
	}
	return adapters
}

func envOr(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}
