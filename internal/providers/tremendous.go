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

// Tremendous fetches the Tremendous product catalog.
type Tremendous struct {
	baseURL  string
	apiToken string
	currency string
	client   *http.Client
}

func NewTremendous(baseURL, apiToken, currency string) *Tremendous {
	return &Tremendous{
		baseURL:  baseURL,
		apiToken: apiToken,
		currency: currency,
		client:   newHTTPClient(),
	}
}

// NewTremendousFromEnv returns nil when no Tremendous token is configured.
func NewTremendousFromEnv() *Tremendous {
	token := os.Getenv("TREMENDOUS_API_TOKEN")
	if token == "" {
		return nil
	}
	return NewTremendous(
		envOr("TREMENDOUS_BASE_URL", "https://api.tremendous.com/api/v2"),
		token,
		envOr("TREMENDOUS_CURRENCY", "USD"),
	)
}

func (t *Tremendous) Name() string { return "tremendous" }

type tremendousSku struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type tremendousImage struct {
	Src  string `json:"src"`
	Type string `json:"type"`
}

type tremendousProduct struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Skus        []tremendousSku   `json:"skus"`
	Images      []tremendousImage `json:"images"`
}

type tremendousCatalogResponse struct {
	Products []tremendousProduct `json:"products"`
}

// FetchCatalog retrieves the product list using bearer authentication.
func (t *Tremendous) FetchCatalog(ctx context.Context) ([]models.ProviderProduct, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.baseURL+"/products", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create tremendous request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+t.apiToken)
	req.Header.Set("Accept", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tremendous catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("tremendous API returned status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read tremendous response: %w", err)
	}

	var catalog tremendousCatalogResponse
	if err := json.Unmarshal(body, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse tremendous response: %w", err)
	}

	products := make([]models.ProviderProduct, 0, len(catalog.Products))
	for _, p := range catalog.Products {
		if p.ID == "" {
			logging.Warn("tremendous product missing id", map[string]interface{}{"name": p.Name})
			continue
		}
		min, max := skuRange(p.Skus)
		products = append(products, models.ProviderProduct{
			ProductID:   p.ID,
			BrandName:   p.Name,
			Description: p.Description,
			ImageURL:    pickImage(p.Images),
			MinValue:    min,
			MaxValue:    max,
			Currency:    t.currency,
		})
	}
	return products, nil
}

// skuRange collapses the sku list to the overall min/max denomination.
func skuRange(skus []tremendousSku) (float64, float64) {
	if len(skus) == 0 {
		return 0, 0
	}
	min, max := skus[0].Min, skus[0].Max
	for _, s := range skus[1:] {
		if s.Min < min {
			min = s.Min
		}
		if s.Max > max {
			max = s.Max
		}
	}
	return min, max
}

// pickImage prefers the card-face image, else the first with a source URL.
func pickImage(images []tremendousImage) string {
	for _, img := range images {
		if img.Type == "card" && img.Src != "" {
			return img.Src
		}
	}
	for _, img := range images {
		if img.Src != "" {
			return img.Src
		}
	}
	return ""
}
