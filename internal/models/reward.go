package models

import "time"

// RewardStatus is the lifecycle state of a redemption item.
type RewardStatus string

const (
	RewardStatusActive    RewardStatus = "active"
	RewardStatusSuspended RewardStatus = "suspended"
	RewardStatusDeleted   RewardStatus = "deleted"
)

// RewardType distinguishes gift cards from offers.
type RewardType string

const (
	RewardTypeGiftcard RewardType = "giftcard"
	RewardTypeOffer    RewardType = "offer"
)

// RewardAvailabilityMixed is reported when the items of a group disagree
// on availability.
const RewardAvailabilityMixed = "mixed"

// RedemptionItem is one purchasable denomination of a reward as stored in
// the redemption_items table. Item ids come from a bigint column and may
// exceed JavaScript's safe-integer range, so they serialize as strings.
type RedemptionItem struct {
	ItemID             int64        `json:"item_id,string" db:"item_id"`
	RewardID           int64        `json:"reward_id,string" db:"reward_id"`
	Title              string       `json:"title" db:"title"`
	BrandName          string       `json:"brand_name" db:"brand_name"`
	Value              float64      `json:"value" db:"value"`
	Poynts             int          `json:"poynts" db:"poynts"`
	InventoryRemaining int          `json:"inventory_remaining" db:"inventory_remaining"`
	RewardStatus       RewardStatus `json:"reward_status" db:"reward_status"`
	RewardAvailability string       `json:"reward_availability" db:"reward_availability"`
	Language           string       `json:"language" db:"language"`
	Cpid               string       `json:"cpid" db:"cpid"`
	Utid               string       `json:"utid" db:"utid"`
	Image              string       `json:"image" db:"image"`
	ProviderID         int64        `json:"provider_id,string" db:"provider_id"`
	RewardType         RewardType   `json:"reward_type" db:"reward_type"`
	Priority           int          `json:"priority" db:"priority"`
	Tags               string       `json:"tags" db:"tags"`
	// RegistryID is non-nil when an enablement registry row exists for the
	// tenant the query was scoped to.
	RegistryID *int64 `json:"registry_id,omitempty"`
}

// AssociatedItem is a RedemptionItem reshaped for API responses: CPID
// truncated to its canonical prefix, image resolved to a plain URL, and the
// owning provider reduced to a single source letter.
type AssociatedItem struct {
	ItemID             int64        `json:"item_id,string"`
	RewardID           int64        `json:"reward_id,string"`
	Title              string       `json:"title"`
	BrandName          string       `json:"brand_name"`
	Value              float64      `json:"value"`
	Poynts             int          `json:"poynts"`
	InventoryRemaining int          `json:"inventory_remaining"`
	RewardStatus       RewardStatus `json:"reward_status"`
	RewardAvailability string       `json:"reward_availability"`
	Language           string       `json:"language"`
	Cpid               string       `json:"cpid"`
	Cpidx              string       `json:"cpidx"`
	Utid               string       `json:"utid"`
	ProviderID         int64        `json:"provider_id,string"`
	RewardType         RewardType   `json:"reward_type"`
	Priority           int          `json:"priority"`
	Tags               []string     `json:"tags"`
	Source             string       `json:"source"`
	ImageURL           string       `json:"image_url,omitempty"`
	RegistryID         *int64       `json:"registry_id,omitempty"`
}

// GroupedReward aggregates every same-CPID-prefix denomination into one
// logical reward.
type GroupedReward struct {
	Cpid               string           `json:"cpid"`
	Type               RewardType       `json:"type"`
	Title              string           `json:"title"`
	BrandName          string           `json:"brand_name"`
	RewardStatus       string           `json:"reward_status"`
	RewardAvailability string           `json:"reward_availability"`
	IsEnabled          bool             `json:"is_enabled"`
	Sources            []AssociatedItem `json:"sources"`
}

// ProviderProduct is a catalog entry as returned by an external provider,
// normalized across Tango/Blackhawk/Tremendous. Fetched fresh per request,
// never persisted.
type ProviderProduct struct {
	ProductID   string  `json:"productId"`
	BrandName   string  `json:"brandName"`
	Description string  `json:"description"`
	ImageURL    string  `json:"imageUrl"`
	MinValue    float64 `json:"minValue"`
	MaxValue    float64 `json:"maxValue"`
	Currency    string  `json:"currency"`
}

// EnhancedProviderProduct decorates a ProviderProduct with the local
// enablement state for its UTID.
type EnhancedProviderProduct struct {
	ProviderProduct
	CardExists      bool             `json:"cardExists"`
	AssociatedItems []AssociatedItem `json:"associatedItems"`
}

// RegistryEntry identifies one enablement registry row target.
type RegistryEntry struct {
	RedemptionID   int64  `json:"redemption_id,string" binding:"required"`
	RedemptionType string `json:"redemption_type" binding:"required"`
}

// RegistryRow is a persisted enablement record.
type RegistryRow struct {
	ID             int64     `json:"id,string"`
	TenantID       string    `json:"tenant_id"`
	RedemptionID   int64     `json:"redemption_id,string"`
	RedemptionType string    `json:"redemption_type"`
	CreatedAt      time.Time `json:"created_at"`
}
