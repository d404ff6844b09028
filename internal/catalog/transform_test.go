package catalog

import (
	"context"
	"testing"

	"github.com/poyntloop/rewards-admin-service/internal/models"
)

func TestNewAssociatedItem(t *testing.T) {
	item := models.RedemptionItem{
		ItemID:     10,
		RewardID:   100,
		Title:      "Acme $25",
		Cpid:       "us-acme-gc-001-25usd",
		Utid:       "U123456",
		ProviderID: 1,
		RewardType: models.RewardTypeGiftcard,
		Tags:       "popular, food , ",
		Image:      `{"80w-326ppi":"https://cdn.example.com/s.png","300w-326ppi":"https://cdn.example.com/m.png"}`,
	}

	letters := testLetters()
	row := NewAssociatedItem(context.Background(), item, letters)

	if row.Cpid != "us-acme-gc-001" {
		t.Errorf("Cpid = %q, want truncated us-acme-gc-001", row.Cpid)
	}
	if row.Cpidx != "us-acme-gc-001-25usd" {
		t.Errorf("Cpidx = %q, want the full original", row.Cpidx)
	}
	if row.Source != "T" {
		t.Errorf("Source = %q, want T", row.Source)
	}
	if row.ImageURL != "https://cdn.example.com/m.png" {
		t.Errorf("ImageURL = %q, want the 300w rendition", row.ImageURL)
	}
	if len(row.Tags) != 2 || row.Tags[0] != "popular" || row.Tags[1] != "food" {
		t.Errorf("Tags = %v, want [popular food]", row.Tags)
	}
}

func TestNewAssociatedItem_DegradesOnBadFields(t *testing.T) {
	item := models.RedemptionItem{
		ItemID:     11,
		Cpid:       "short-cpid",
		ProviderID: 999,
		RewardType: models.RewardTypeGiftcard,
		Image:      `{"80w-326ppi": truncated`,
	}

	row := NewAssociatedItem(context.Background(), item, testLetters())

	if row.Cpid != "short-cpid" {
		t.Errorf("malformed Cpid = %q, want pass-through", row.Cpid)
	}
	if row.Source != UnknownSource {
		t.Errorf("Source = %q, want %q for unknown provider", row.Source, UnknownSource)
	}
	if row.ImageURL != "" {
		t.Errorf("ImageURL = %q, want empty for unparseable payload", row.ImageURL)
	}
	if row.Tags != nil {
		t.Errorf("Tags = %v, want nil for empty tag column", row.Tags)
	}
}
