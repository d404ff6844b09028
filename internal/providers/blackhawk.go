package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"

	"github.com/poyntloop/rewards-admin-service/internal/logging"
	"github.com/poyntloop/rewards-admin-service/internal/models"
)

// Blackhawk fetches the Blackhawk Network product catalog.
type Blackhawk struct {
	baseURL  string
	apiKey   string
	currency string
	country  string
	client   *http.Client
}

func NewBlackhawk(baseURL, apiKey, country, currency string) *Blackhawk {
	return &Blackhawk{
		baseURL:  baseURL,
		apiKey:   apiKey,
		country:  country,
		currency: currency,
		client:   newHTTPClient(),
	}
}

// NewBlackhawkFromEnv returns nil when no Blackhawk API key is configured.
func NewBlackhawkFromEnv() *Blackhawk {
	apiKey := os.Getenv("BLACKHAWK_API_KEY")
	if apiKey == "" {
		return nil
	}
	return NewBlackhawk(
		envOr("BLACKHAWK_BASE_URL", "https://api.blackhawknetwork.com/catalogManagement/v1"),
		apiKey,
		envOr("BLACKHAWK_COUNTRY", "US"),
		envOr("BLACKHAWK_CURRENCY", "USD"),
	)
}

func (b *Blackhawk) Name() string { return "blackhawk" }

type blackhawkProduct struct {
	ContentProviderCode    string  `json:"contentProviderCode"`
	ParentBrandName        string  `json:"parentBrandName"`
	ProductName            string  `json:"productName"`
	ProductDescription     string  `json:"productDescription"`
	ProductImage           string  `json:"productImage"`
	LogoImage              string  `json:"logoImage"`
	OffFaceDiscountPercent float64 `json:"offFaceDiscountPercent"`
	ValueRestrictions      struct {
		Minimum float64 `json:"minimum"`
		Maximum float64 `json:"maximum"`
	} `json:"valueRestrictions"`
}

// FetchCatalog retrieves the product list, filtered to the configured
// country/currency.
func (b *Blackhawk) FetchCatalog(ctx context.Context) ([]models.ProviderProduct, error) {
	q := url.Values{}
	if b.country != "" {
		q.Set("country", b.country)
	}
	if b.currency != "" {
		q.Set("currency", b.currency)
	}
	endpoint := b.baseURL + "/products"
	if enc := q.Encode(); enc != "" {
		endpoint += "?" + enc
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create blackhawk request: %w", err)
	}
	req.Header.Set("X-Api-Key", b.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch blackhawk catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("blackhawk API returned status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read blackhawk response: %w", err)
	}

	var rows []blackhawkProduct
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse blackhawk response: %w", err)
	}

	products := make([]models.ProviderProduct, 0, len(rows))
	for _, r := range rows {
		if r.ContentProviderCode == "" {
			logging.Warn("blackhawk product missing contentProviderCode", map[string]interface{}{"product": r.ProductName})
			continue
		}
		image := r.ProductImage
		if image == "" {
			image = r.LogoImage
		}
		brand := r.ParentBrandName
		if brand == "" {
			brand = r.ProductName
		}
		products = append(products, models.ProviderProduct{
			ProductID:   r.ContentProviderCode,
			BrandName:   brand,
			Description: r.ProductDescription,
			ImageURL:    image,
			MinValue:    r.ValueRestrictions.Minimum,
			MaxValue:    r.ValueRestrictions.Maximum,
			Currency:    b.currency,
		})
	}
	return products, nil
}
