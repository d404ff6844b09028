package catalog

import (
	"context"
	"sync"
	"time"

	"github.com/poyntloop/rewards-admin-service/internal/metrics"
	"github.com/poyntloop/rewards-admin-service/internal/models"
)

// DefaultFetchTimeout bounds each provider branch of the combined catalog
// so one slow provider cannot stall the whole response.
const DefaultFetchTimeout = 15 * time.Second

// Fetcher is the provider-adapter capability the combined path consumes.
type Fetcher interface {
	Name() string
	FetchCatalog(ctx context.Context) ([]models.ProviderProduct, error)
}

// ProviderResult is one branch of the combined catalog response. Err is set
// when the branch failed; the other branches are unaffected.
type ProviderResult struct {
	Provider string                           `json:"provider"`
	Products []models.EnhancedProviderProduct `json:"products"`
	Error    string                           `json:"error,omitempty"`
}

// FetchCombined fans out one fetch-and-enrich goroutine per adapter and
// waits for every branch before returning (no partial merge). Each branch
// runs under its own timeout and its failure is isolated to its slot.
// providerIDs maps adapter names to provider table rows for the join.
func (e *Enricher) FetchCombined(ctx context.Context, fetchers []Fetcher, providerIDs map[string]int64, timeout time.Duration) []ProviderResult {
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}

	results := make([]ProviderResult, len(fetchers))
	var wg sync.WaitGroup
	for i, f := range fetchers {
		wg.Add(1)
		go func(i int, f Fetcher) {
			defer wg.Done()
			results[i] = e.fetchOne(ctx, f, providerIDs[f.Name()], timeout)
		}(i, f)
	}
	wg.Wait()
	return results
}

func (e *Enricher) fetchOne(ctx context.Context, f Fetcher, providerID int64, timeout time.Duration) ProviderResult {
	res := ProviderResult{Provider: f.Name(), Products: []models.EnhancedProviderProduct{}}

	fctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	products, err := f.FetchCatalog(fctx)
	metrics.ObserveProviderFetch(f.Name(), err == nil, time.Since(start))
	if err != nil {
		res.Error = err.Error()
		return res
	}

	enhanced, err := e.Enrich(fctx, providerID, products)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	res.Products = enhanced
	return res
}
