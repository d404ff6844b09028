package models

import "time"

// ProviderKind tells whether a provider issues gift cards or offers.
type ProviderKind string

const (
	ProviderKindGiftcard ProviderKind = "giftcard"
	ProviderKindOffer    ProviderKind = "offer"
)

// Provider is a row of the providers lookup table. Code is the single
// source letter attached to every denomination the provider issued.
type Provider struct {
	ID        int64        `json:"id,string" db:"id"`
	Name      string       `json:"name" db:"name" binding:"required"`
	Code      string       `json:"code" db:"code"`
	Kind      ProviderKind `json:"kind" db:"kind"`
	Priority  int          `json:"priority" db:"priority"`
	CreatedAt time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt time.Time    `json:"updated_at" db:"updated_at"`
}
