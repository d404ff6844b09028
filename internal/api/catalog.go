package api

import (
	"context"
	"errors"
	"log"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"

	"github.com/poyntloop/rewards-admin-service/internal/catalog"
	"github.com/poyntloop/rewards-admin-service/internal/metrics"
	"github.com/poyntloop/rewards-admin-service/internal/models"
)

// GetProviderCatalog handles GET /catalog/:provider, one provider's
// catalog enriched with local enablement state.
func (h *Handler) GetProviderCatalog(c *gin.Context) {
	name := strings.ToLower(c.Param("provider"))
	adapter, ok := h.adapters[name]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown or unconfigured provider: " + name})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.fetchTimeout+10*time.Second)
	defer cancel()

	provider, err := h.db.GetProviderByName(ctx, name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Provider not registered: " + name})
			return
		}
		log.Printf("Failed to resolve provider %s: %v", name, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve provider"})
		return
	}

	fctx, fcancel := context.WithTimeout(ctx, h.fetchTimeout)
	defer fcancel()

	start := time.Now()
	products, err := adapter.FetchCatalog(fctx)
	metrics.ObserveProviderFetch(name, err == nil, time.Since(start))
	if err != nil {
		log.Printf("Provider fetch failed for %s: %v", name, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Provider catalog fetch failed"})
		return
	}

	enhanced, err := h.enricher.Enrich(ctx, provider.ID, products)
	if err != nil {
		log.Printf("Enrichment failed for %s: %v", name, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to enrich provider catalog"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"products": enhanced})
}

// GetCombinedCatalog handles GET /catalog: every configured provider
// fetched concurrently, one result block per provider. A failing provider
// surfaces an error in its block without blocking the others; the request
// only fails outright when every branch failed.
func (h *Handler) GetCombinedCatalog(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.fetchTimeout+15*time.Second)
	defer cancel()

	rows, err := h.db.ListProviders(ctx)
	if err != nil {
		log.Printf("Failed to list providers: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list providers"})
		return
	}
	providerIDs := make(map[string]int64, len(rows))
	for _, p := range rows {
		providerIDs[strings.ToLower(p.Name)] = p.ID
	}

	names := make([]string, 0, len(h.adapters))
	for name := range h.adapters {
		names = append(names, name)
	}
	sort.Strings(names)

	fetchers := make([]catalog.Fetcher, 0, len(names))
	for _, name := range names {
		fetchers = append(fetchers, h.adapters[name])
	}

	results := h.enricher.FetchCombined(ctx, fetchers, providerIDs, h.fetchTimeout)

	failed := 0
	for _, r := range results {
		if r.Error != "" {
			failed++
		}
	}
	if len(results) > 0 && failed == len(results) {
		c.JSON(http.StatusBadGateway, gin.H{"error": "All provider fetches failed", "providers": results})
		return
	}

	c.JSON(http.StatusOK, gin.H{"providers": results})
}

// GetGroupedRewards handles GET /rewards: every local redemption row
// reshaped and grouped into logical rewards. An optional tenant_id query
// scopes the enablement lookup.
func (h *Handler) GetGroupedRewards(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	tenantID := c.Query("tenant_id")

	items, err := h.db.ListRedemptionItems(ctx, tenantID)
	if err != nil {
		log.Printf("Failed to list redemption items: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list rewards"})
		return
	}

	rows := make([]models.AssociatedItem, 0, len(items))
	for _, item := range items {
		rows = append(rows, catalog.NewAssociatedItem(ctx, item, h.letters))
	}

	groups := catalog.GroupRewardsByCpid(rows)
	metrics.SetGroupedRewards(len(groups))

	c.JSON(http.StatusOK, gin.H{"data": groups})
}
