package catalog

import (
	"context"
	"sync"
	"time"

	"github.com/poyntloop/rewards-admin-service/internal/logging"
	"github.com/poyntloop/rewards-admin-service/internal/models"
)

// CodeStore supplies the provider id to source-letter mapping.
type CodeStore interface {
	ProviderCodes(ctx context.Context) (map[int64]string, error)
}

const (
	// DefaultSourceTTL bounds how long the provider code mapping is served
	// without a re-query.
	DefaultSourceTTL = 5 * time.Minute

	// OfferSource tags every offer regardless of provider.
	OfferSource = "O"
	// UnknownSource tags denominations whose provider has no code.
	UnknownSource = "?"
)

// SourceLetters caches the providers table's code column with a TTL.
// Administrative writes to the table must call Invalidate.
type SourceLetters struct {
	store CodeStore
	ttl   time.Duration

	mu        sync.Mutex
	codes     map[int64]string
	fetchedAt time.Time
}

// NewSourceLetters builds the cache. A non-positive ttl falls back to
// DefaultSourceTTL.
func NewSourceLetters(store CodeStore, ttl time.Duration) *SourceLetters {
	if ttl <= 0 {
		ttl = DefaultSourceTTL
	}
	return &SourceLetters{store: store, ttl: ttl}
}

// Lookup resolves the source letter for a denomination. Offers always map
// to "O"; gift cards resolve through the cached mapping and degrade to "?"
// when the provider is unknown.
func (s *SourceLetters) Lookup(ctx context.Context, kind models.RewardType, providerID int64) string {
	if kind == models.RewardTypeOffer {
		return OfferSource
	}
	if code := s.Codes(ctx)[providerID]; code != "" {
		return code
	}
	return UnknownSource
}

// Codes returns the current mapping, re-querying the store when the cached
// copy is older than the TTL. A store failure during refresh is not
// propagated: callers get an empty mapping and every lookup degrades to "?".
func (s *SourceLetters) Codes(ctx context.Context) map[int64]string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.codes != nil && time.Since(s.fetchedAt) < s.ttl {
		return s.codes
	}

	codes, err := s.store.ProviderCodes(ctx)
	if err != nil {
		logging.Warn("provider code refresh failed", map[string]interface{}{"error": err.Error()})
		codes = map[int64]string{}
	}
	s.codes = codes
	s.fetchedAt = time.Now()
	return s.codes
}

// Invalidate drops the cached mapping so the next lookup re-queries.
func (s *SourceLetters) Invalidate() {
	s.mu.Lock()
	s.codes = nil
	s.fetchedAt = time.Time{}
	s.mu.Unlock()
}
