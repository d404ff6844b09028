package catalog

import (
	"fmt"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/poyntloop/rewards-admin-service/internal/models"
)

// GroupRewardsByCpid partitions transformed rows into logical rewards.
// Gift cards with the same truncated CPID collapse into one group (the same
// reward issued by several providers or in several denominations). Offers
// are inherently distinct per record and never merge, even when their CPIDs
// coincide. The result is ordered gift cards first, then offers, each block
// sorted by title with locale-aware comparison.
func GroupRewardsByCpid(rows []models.AssociatedItem) []models.GroupedReward {
	groups := make(map[string]*models.GroupedReward)
	var order []string

	for _, row := range rows {
		rewardType := models.RewardTypeGiftcard
		if row.RewardType == models.RewardTypeOffer {
			rewardType = models.RewardTypeOffer
		}

		var key string
		if rewardType == models.RewardTypeOffer {
			// Provider-qualified unique key: one group per offer row.
			key = fmt.Sprintf("offer:%d:%d", row.ProviderID, row.ItemID)
		} else {
			key = "giftcard:" + row.Cpid
		}

		g, ok := groups[key]
		if !ok {
			g = &models.GroupedReward{
				Cpid:      row.Cpid,
				Type:      rewardType,
				Title:     row.Title,
				BrandName: row.BrandName,
			}
			groups[key] = g
			order = append(order, key)
		}
		g.Sources = append(g.Sources, row)
	}

	result := make([]models.GroupedReward, 0, len(order))
	for _, key := range order {
		g := groups[key]
		sort.SliceStable(g.Sources, func(i, j int) bool {
			if g.Sources[i].Priority != g.Sources[j].Priority {
				return g.Sources[i].Priority < g.Sources[j].Priority
			}
			return g.Sources[i].Value < g.Sources[j].Value
		})
		g.RewardStatus = aggregateStatus(g.Sources)
		g.RewardAvailability = aggregateAvailability(g.Sources)
		g.IsEnabled = anyEnabled(g.Sources)
		result = append(result, *g)
	}

	coll := collate.New(language.English, collate.IgnoreCase)
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Type != result[j].Type {
			return result[i].Type == models.RewardTypeGiftcard
		}
		return coll.CompareString(result[i].Title, result[j].Title) < 0
	})

	return result
}

// aggregateStatus: active if any member is active, suspended only when every
// member is suspended, inactive otherwise.
func aggregateStatus(sources []models.AssociatedItem) string {
	allSuspended := len(sources) > 0
	for _, s := range sources {
		if s.RewardStatus == models.RewardStatusActive {
			return string(models.RewardStatusActive)
		}
		if s.RewardStatus != models.RewardStatusSuspended {
			allSuspended = false
		}
	}
	if allSuspended {
		return string(models.RewardStatusSuspended)
	}
	return "inactive"
}

// aggregateAvailability reports the common value, or "mixed" when members
// disagree.
func aggregateAvailability(sources []models.AssociatedItem) string {
	if len(sources) == 0 {
		return ""
	}
	first := sources[0].RewardAvailability
	for _, s := range sources[1:] {
		if s.RewardAvailability != first {
			return models.RewardAvailabilityMixed
		}
	}
	return first
}

func anyEnabled(sources []models.AssociatedItem) bool {
	for _, s := range sources {
		if s.RegistryID != nil {
			return true
		}
	}
	return false
}
