package catalog

import (
	"context"
	"fmt"

	"github.com/poyntloop/rewards-admin-service/internal/models"
)

// ItemStore is the slice of the relational store the enrichment join needs.
type ItemStore interface {
	// ListProviderItems returns the provider's redemption rows with a
	// positive face value.
	ListProviderItems(ctx context.Context, providerID int64) ([]models.RedemptionItem, error)
	// ListSiblingItems returns every redemption row belonging to any of the
	// given parent rewards, across all providers.
	ListSiblingItems(ctx context.Context, rewardIDs []int64) ([]models.RedemptionItem, error)
}

// Enricher joins provider catalog entries against the local redemption
// store.
type Enricher struct {
	store   ItemStore
	letters *SourceLetters
}

func NewEnricher(store ItemStore, letters *SourceLetters) *Enricher {
	return &Enricher{store: store, letters: letters}
}

// Enrich marks each provider product as already-redeemable (cardExists) and
// attaches the local denominations matching its UTID. Sibling denominations
// are pulled per parent reward rather than per provider, because a reward's
// denominations may be issued by a provider other than its nominal owner.
// Provider products with no local match still appear, with cardExists=false
// and an empty associatedItems list. A store error is fatal for the whole
// enrichment; retrying belongs to the caller.
func (e *Enricher) Enrich(ctx context.Context, providerID int64, products []models.ProviderProduct) ([]models.EnhancedProviderProduct, error) {
	items, err := e.store.ListProviderItems(ctx, providerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list provider items: %w", err)
	}

	utids := make(map[string]bool, len(items))
	rewardSet := make(map[int64]bool, len(items))
	var rewardIDs []int64
	for _, it := range items {
		if it.Utid != "" {
			utids[it.Utid] = true
		}
		if !rewardSet[it.RewardID] {
			rewardSet[it.RewardID] = true
			rewardIDs = append(rewardIDs, it.RewardID)
		}
	}

	siblings := items
	if len(rewardIDs) > 0 {
		siblings, err = e.store.ListSiblingItems(ctx, rewardIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to list sibling items: %w", err)
		}
	}

	byUtid := make(map[string][]models.RedemptionItem, len(siblings))
	for _, it := range siblings {
		if it.Utid != "" {
			byUtid[it.Utid] = append(byUtid[it.Utid], it)
		}
	}

	out := make([]models.EnhancedProviderProduct, 0, len(products))
	for _, p := range products {
		enhanced := models.EnhancedProviderProduct{
			ProviderProduct: p,
			CardExists:      utids[p.ProductID],
			AssociatedItems: []models.AssociatedItem{},
		}
		for _, it := range byUtid[p.ProductID] {
			enhanced.AssociatedItems = append(enhanced.AssociatedItems, NewAssociatedItem(ctx, it, e.letters))
		}
		out = append(out, enhanced)
	}
	return out, nil
}
