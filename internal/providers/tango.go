package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/poyntloop/rewards-admin-service/internal/logging"
	"github.com/poyntloop/rewards-admin-service/internal/models"
)

// Tango fetches the Tango Card RaaS catalog.
type Tango struct {
	baseURL      string
	platformName string
	platformKey  string
	client       *http.Client
}

// NewTango builds an adapter against the given endpoint and credentials.
func NewTango(baseURL, platformName, platformKey string) *Tango {
	return &Tango{
		baseURL:      baseURL,
		platformName: platformName,
		platformKey:  platformKey,
		client:       newHTTPClient(),
	}
}

// NewTangoFromEnv returns nil when no Tango credentials are configured.
func NewTangoFromEnv() *Tango {
	name := os.Getenv("TANGO_PLATFORM_NAME")
	key := os.Getenv("TANGO_PLATFORM_KEY")
	if name == "" || key == "" {
		return nil
	}
	base := envOr("TANGO_BASE_URL", "https://integration-api.tangocard.com/raas/v2")
	return NewTango(base, name, key)
}

func (t *Tango) Name() string { return "tango" }

type tangoAmount struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

type tangoProduct struct {
	ProductID   string      `json:"productId"`
	BrandName   string      `json:"brandName"`
	Description string      `json:"description"`
	ImageURL    string      `json:"imageUrl"`
	MinAmount   tangoAmount `json:"minAmount"`
	MaxAmount   tangoAmount `json:"maxAmount"`
	Terms       string      `json:"terms"`
}

type tangoCatalogResponse struct {
	Products []tangoProduct `json:"products"`
}

// FetchCatalog retrieves the full catalog. Individual rows that fail to
// parse are skipped with a warning; only transport and non-2xx responses
// are fatal.
func (t *Tango) FetchCatalog(ctx context.Context) ([]models.ProviderProduct, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.baseURL+"/catalogs", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create tango request: %w", err)
	}
	req.SetBasicAuth(t.platformName, t.platformKey)
	req.Header.Set("Accept", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tango catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("tango API returned status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read tango response: %w", err)
	}

	var catalog tangoCatalogResponse
	if err := json.Unmarshal(body, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse tango response: %w", err)
	}

	products := make([]models.ProviderProduct, 0, len(catalog.Products))
	for _, p := range catalog.Products {
		if p.ProductID == "" {
			logging.Warn("tango product missing productId", map[string]interface{}{"brand": p.BrandName})
			continue
		}
		currency := p.MinAmount.Currency
		if currency == "" {
			currency = p.MaxAmount.Currency
		}
		products = append(products, models.ProviderProduct{
			ProductID:   p.ProductID,
			BrandName:   p.BrandName,
			Description: p.Description,
			ImageURL:    p.ImageURL,
			MinValue:    p.MinAmount.Amount,
			MaxValue:    p.MaxAmount.Amount,
			Currency:    currency,
		})
	}
	return products, nil
}
