package api

import (
	"context"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/poyntloop/rewards-admin-service/internal/catalog"
	"github.com/poyntloop/rewards-admin-service/internal/db"
	"github.com/poyntloop/rewards-admin-service/internal/events"
	"github.com/poyntloop/rewards-admin-service/internal/providers"
)

// Handler wires the reconciliation engine to HTTP.
type Handler struct {
	db           *db.Database
	adapters     map[string]providers.Adapter
	letters      *catalog.SourceLetters
	enricher     *catalog.Enricher
	events       events.Publisher
	fetchTimeout time.Duration
}

// NewHandler creates a new handler instance.
func NewHandler(database *db.Database, adapters map[string]providers.Adapter, letters *catalog.SourceLetters, publisher events.Publisher) *Handler {
	timeout := catalog.DefaultFetchTimeout
	if raw := os.Getenv("PROVIDER_FETCH_TIMEOUT_SECONDS"); raw != "" {
		if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
			timeout = time.Duration(secs) * time.Second
		}
	}
	return &Handler{
		db:           database,
		adapters:     adapters,
		letters:      letters,
		enricher:     catalog.NewEnricher(database, letters),
		events:       publisher,
		fetchTimeout: timeout,
	}
}

// Health reports readiness: 200 when the database answers a ping.
func (h *Handler) Health(c *gin.Context) {
	if h.db == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": "database not initialized"})
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.db.Health(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": "database unreachable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}
