package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/poyntloop/rewards-admin-service/internal/models"
)

type fakeCodeStore struct {
	codes map[int64]string
	err   error
	calls int
}

func (f *fakeCodeStore) ProviderCodes(ctx context.Context) (map[int64]string, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.codes, nil
}

func TestSourceLetters_CachesWithinTTL(t *testing.T) {
	store := &fakeCodeStore{codes: map[int64]string{1: "T", 2: "B"}}
	letters := NewSourceLetters(store, time.Minute)

	ctx := context.Background()
	if got := letters.Lookup(ctx, models.RewardTypeGiftcard, 1); got != "T" {
		t.Fatalf("Lookup(1) = %q, want T", got)
	}
	if got := letters.Lookup(ctx, models.RewardTypeGiftcard, 2); got != "B" {
		t.Fatalf("Lookup(2) = %q, want B", got)
	}
	if store.calls != 1 {
		t.Errorf("store queried %d times within TTL, want 1", store.calls)
	}
}

func TestSourceLetters_RefreshesAfterTTL(t *testing.T) {
	store := &fakeCodeStore{codes: map[int64]string{1: "T"}}
	letters := NewSourceLetters(store, time.Nanosecond)

	ctx := context.Background()
	letters.Lookup(ctx, models.RewardTypeGiftcard, 1)
	time.Sleep(time.Millisecond)
	letters.Lookup(ctx, models.RewardTypeGiftcard, 1)

	if store.calls != 2 {
		t.Errorf("store queried %d times across expired TTL, want 2", store.calls)
	}
}

func TestSourceLetters_InvalidateForcesRequery(t *testing.T) {
	store := &fakeCodeStore{codes: map[int64]string{1: "T"}}
	letters := NewSourceLetters(store, time.Hour)

	ctx := context.Background()
	letters.Lookup(ctx, models.RewardTypeGiftcard, 1)

	store.codes = map[int64]string{1: "X"}
	letters.Invalidate()

	if got := letters.Lookup(ctx, models.RewardTypeGiftcard, 1); got != "X" {
		t.Errorf("Lookup after Invalidate = %q, want X", got)
	}
	if store.calls != 2 {
		t.Errorf("store queried %d times, want 2", store.calls)
	}
}

func TestSourceLetters_OffersBypassStore(t *testing.T) {
	store := &fakeCodeStore{codes: map[int64]string{}}
	letters := NewSourceLetters(store, time.Hour)

	if got := letters.Lookup(context.Background(), models.RewardTypeOffer, 99); got != OfferSource {
		t.Errorf("offer lookup = %q, want %q", got, OfferSource)
	}
	if store.calls != 0 {
		t.Errorf("offer lookup queried the store %d times, want 0", store.calls)
	}
}

func TestSourceLetters_UnknownProvider(t *testing.T) {
	store := &fakeCodeStore{codes: map[int64]string{1: "T"}}
	letters := NewSourceLetters(store, time.Hour)

	if got := letters.Lookup(context.Background(), models.RewardTypeGiftcard, 42); got != UnknownSource {
		t.Errorf("unknown provider lookup = %q, want %q", got, UnknownSource)
	}
}

func TestSourceLetters_StoreFailureDegrades(t *testing.T) {
	store := &fakeCodeStore{err: errors.New("connection refused")}
	letters := NewSourceLetters(store, time.Hour)

	if got := letters.Lookup(context.Background(), models.RewardTypeGiftcard, 1); got != UnknownSource {
		t.Errorf("lookup with failing store = %q, want %q", got, UnknownSource)
	}
}
