package catalog

import (
	"context"
	"strings"

	"github.com/poyntloop/rewards-admin-service/internal/models"
)

// NewAssociatedItem reshapes a raw redemption row for API output: CPID
// truncated, image payload resolved to a URL, comma-delimited tags split,
// provider reduced to its source letter. Every step degrades instead of
// failing, so one bad row never aborts a batch.
func NewAssociatedItem(ctx context.Context, item models.RedemptionItem, letters *SourceLetters) models.AssociatedItem {
	id := ParseCpid(item.Cpid)
	imageURL, _ := ParseImageURL(item.Image, ImageParseClean)

	return models.AssociatedItem{
		ItemID:             item.ItemID,
		RewardID:           item.RewardID,
		Title:              item.Title,
		BrandName:          item.BrandName,
		Value:              item.Value,
		Poynts:             item.Poynts,
		InventoryRemaining: item.InventoryRemaining,
		RewardStatus:       item.RewardStatus,
		RewardAvailability: item.RewardAvailability,
		Language:           item.Language,
		Cpid:               id.Cpid,
		Cpidx:              id.Cpidx,
		Utid:               item.Utid,
		ProviderID:         item.ProviderID,
		RewardType:         item.RewardType,
		Priority:           item.Priority,
		Tags:               splitTags(item.Tags),
		Source:             letters.Lookup(ctx, item.RewardType, item.ProviderID),
		ImageURL:           imageURL,
		RegistryID:         item.RegistryID,
	}
}

func splitTags(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var tags []string
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
