package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/poyntloop/rewards-admin-service/internal/models"
)

type fakeItemStore struct {
	providerItems []models.RedemptionItem
	siblingItems  []models.RedemptionItem
	err           error

	siblingArgs []int64
}

func (f *fakeItemStore) ListProviderItems(ctx context.Context, providerID int64) ([]models.RedemptionItem, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.providerItems, nil
}

func (f *fakeItemStore) ListSiblingItems(ctx context.Context, rewardIDs []int64) ([]models.RedemptionItem, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.siblingArgs = rewardIDs
	return f.siblingItems, nil
}

func testLetters() *SourceLetters {
	return NewSourceLetters(&fakeCodeStore{codes: map[int64]string{1: "T", 2: "B"}}, time.Hour)
}

func TestEnrich_NoLocalMatch(t *testing.T) {
	store := &fakeItemStore{}
	e := NewEnricher(store, testLetters())

	products := []models.ProviderProduct{{ProductID: "U999999", BrandName: "Acme"}}
	out, err := e.Enrich(context.Background(), 1, products)
	if err != nil {
		t.Fatalf("Enrich: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected 1 product, got %d", len(out))
	}
	if out[0].CardExists {
		t.Error("cardExists = true for a product with no local rows")
	}
	if out[0].AssociatedItems == nil {
		t.Error("associatedItems must be an empty list, not nil")
	}
	if len(out[0].AssociatedItems) != 0 {
		t.Errorf("expected no associated items, got %d", len(out[0].AssociatedItems))
	}
}

func TestEnrich_AttachesSiblingsAcrossProviders(t *testing.T) {
	store := &fakeItemStore{
		providerItems: []models.RedemptionItem{
			{ItemID: 10, RewardID: 100, ProviderID: 1, Utid: "U123456", Value: 25},
		},
		siblingItems: []models.RedemptionItem{
			{ItemID: 10, RewardID: 100, ProviderID: 1, Utid: "U123456", Value: 25},
			{ItemID: 11, RewardID: 100, ProviderID: 2, Utid: "U123456", Value: 50},
		},
	}
	e := NewEnricher(store, testLetters())

	products := []models.ProviderProduct{{ProductID: "U123456", BrandName: "Acme"}}
	out, err := e.Enrich(context.Background(), 1, products)
	if err != nil {
		t.Fatalf("Enrich: %v", err)
	}
	if !out[0].CardExists {
		t.Error("cardExists = false for a matched product")
	}
	if len(out[0].AssociatedItems) != 2 {
		t.Fatalf("expected 2 associated items including the other provider's row, got %d", len(out[0].AssociatedItems))
	}
	if got := store.siblingArgs; len(got) != 1 || got[0] != 100 {
		t.Errorf("sibling query reward ids = %v, want [100]", got)
	}
}

func TestEnrich_KeepsUnmatchedProducts(t *testing.T) {
	store := &fakeItemStore{
		providerItems: []models.RedemptionItem{
			{ItemID: 10, RewardID: 100, ProviderID: 1, Utid: "U123456", Value: 25},
		},
		siblingItems: []models.RedemptionItem{
			{ItemID: 10, RewardID: 100, ProviderID: 1, Utid: "U123456", Value: 25},
		},
	}
	e := NewEnricher(store, testLetters())

	products := []models.ProviderProduct{
		{ProductID: "U123456"},
		{ProductID: "U777777"},
	}
	out, err := e.Enrich(context.Background(), 1, products)
	if err != nil {
		t.Fatalf("Enrich: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected both products in output, got %d", len(out))
	}
	if !out[0].CardExists || out[1].CardExists {
		t.Errorf("cardExists = (%v, %v), want (true, false)", out[0].CardExists, out[1].CardExists)
	}
}

func TestEnrich_StoreError(t *testing.T) {
	store := &fakeItemStore{err: errors.New("db down")}
	e := NewEnricher(store, testLetters())

	if _, err := e.Enrich(context.Background(), 1, []models.ProviderProduct{{ProductID: "U1"}}); err == nil {
		t.Fatal("expected error when the store fails")
	}
}
