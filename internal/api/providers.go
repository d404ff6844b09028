package api

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/poyntloop/rewards-admin-service/internal/models"
)

// GetProviders handles GET /providers.
func (h *Handler) GetProviders(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	providers, err := h.db.ListProviders(ctx)
	if err != nil {
		log.Printf("Failed to list providers: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list providers"})
		return
	}
	if providers == nil {
		providers = []models.Provider{}
	}
	c.JSON(http.StatusOK, gin.H{"providers": providers})
}

// CreateProvider handles POST /providers. Writes invalidate the
// source-letter cache so new codes take effect immediately.
func (h *Handler) CreateProvider(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	var provider models.Provider
	if err := c.ShouldBindJSON(&provider); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	if msg := validateProvider(&provider); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	id, err := h.db.CreateProvider(ctx, provider)
	if err != nil {
		log.Printf("Failed to create provider: %v", err)
		if strings.Contains(err.Error(), "duplicate key") {
			c.JSON(http.StatusConflict, gin.H{"error": "Provider name already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create provider"})
		return
	}

	h.letters.Invalidate()
	c.JSON(http.StatusCreated, gin.H{"id": strconv.FormatInt(id, 10)})
}

// UpdateProvider handles PUT /providers/:id.
func (h *Handler) UpdateProvider(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid provider ID format"})
		return
	}

	var provider models.Provider
	if err := c.ShouldBindJSON(&provider); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	if msg := validateProvider(&provider); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	if err := h.db.UpdateProvider(ctx, id, provider); err != nil {
		if strings.Contains(err.Error(), "not found") {
			c.JSON(http.StatusNotFound, gin.H{"error": "Provider not found"})
			return
		}
		log.Printf("Failed to update provider %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update provider"})
		return
	}

	h.letters.Invalidate()
	c.JSON(http.StatusOK, gin.H{"updated": true})
}

// DeleteProvider handles DELETE /providers/:id.
func (h *Handler) DeleteProvider(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid provider ID format"})
		return
	}

	if err := h.db.DeleteProvider(ctx, id); err != nil {
		if strings.Contains(err.Error(), "not found") {
			c.JSON(http.StatusNotFound, gin.H{"error": "Provider not found"})
			return
		}
		log.Printf("Failed to delete provider %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete provider"})
		return
	}

	h.letters.Invalidate()
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// validateProvider normalizes a provider payload, returning an error
// message for invalid input.
func validateProvider(p *models.Provider) string {
	p.Name = strings.TrimSpace(p.Name)
	p.Code = strings.TrimSpace(p.Code)
	if p.Name == "" {
		return "name is required"
	}
	if len(p.Code) > 1 {
		return "code must be a single letter"
	}
	switch p.Kind {
	case "":
		p.Kind = models.ProviderKindGiftcard
	case models.ProviderKindGiftcard, models.ProviderKindOffer:
	default:
		return "kind must be 'giftcard' or 'offer'"
	}
	return ""
}
