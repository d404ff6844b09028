package api

import (
	"context"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/poyntloop/rewards-admin-service/internal/events"
	"github.com/poyntloop/rewards-admin-service/internal/metrics"
	"github.com/poyntloop/rewards-admin-service/internal/models"
)

type registryRequest struct {
	TenantID string                 `json:"tenant_id"`
	Items    []models.RegistryEntry `json:"items" binding:"dive"`
}

// EnableRewards handles POST /rewards/enable. The insert is idempotent:
// re-enabling an already-enabled item affects zero rows.
func (h *Handler) EnableRewards(c *gin.Context) {
	h.writeRegistry(c, "enabled")
}

// DisableRewards handles POST /rewards/disable.
func (h *Handler) DisableRewards(c *gin.Context) {
	h.writeRegistry(c, "disabled")
}

func (h *Handler) writeRegistry(c *gin.Context, action string) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	var req registryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	if strings.TrimSpace(req.TenantID) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "tenant_id is required"})
		return
	}
	if len(req.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "items are required"})
		return
	}

	var affected int64
	var err error
	if action == "enabled" {
		affected, err = h.db.EnableRewards(ctx, req.TenantID, req.Items)
	} else {
		affected, err = h.db.DisableRewards(ctx, req.TenantID, req.Items)
	}
	if err != nil {
		log.Printf("Registry write (%s) failed for tenant %s: %v", action, req.TenantID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update reward registry"})
		return
	}
	metrics.RecordRegistryWrite(action, affected)

	// Best effort: a broker outage must not fail the write.
	evs := make([]events.RegistryEvent, 0, len(req.Items))
	for _, item := range req.Items {
		evs = append(evs, events.NewEvent(action, req.TenantID, item.RedemptionID, item.RedemptionType))
	}
	if err := h.events.PublishRegistryEvents(ctx, evs); err != nil {
		log.Printf("Failed to publish registry events: %v", err)
	}

	c.JSON(http.StatusOK, gin.H{"affected": affected})
}

// UploadRewardImage handles POST /rewards/:id/image. The file lands in S3
// when AWS is configured, else local disk for development.
func (h *Handler) UploadRewardImage(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	idStr := c.Param("id")
	rewardID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid reward ID format"})
		return
	}

	fileHeader, err := c.FormFile("rewardImage")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing 'rewardImage' form field"})
		return
	}

	if fileHeader.Size > 10*1024*1024 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File size exceeds 10MB limit"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Printf("Failed to open uploaded file: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open uploaded file"})
		return
	}
	defer file.Close()

	// Sniff the real content type from the first 512 bytes.
	buffer := make([]byte, 512)
	if _, err := file.Read(buffer); err != nil {
		log.Printf("Failed to read file content: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read file content"})
		return
	}
	file.Seek(0, 0)

	contentType := http.DetectContentType(buffer)
	if !isValidImageType(contentType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file type. Only images are allowed"})
		return
	}

	imageURL, err := h.uploadToS3(ctx, rewardID, fileHeader, file)
	if err != nil {
		log.Printf("S3 upload failed, falling back to local storage: %v", err)
		imageURL, err = h.uploadToLocal(rewardID, fileHeader, file)
		if err != nil {
			log.Printf("Local upload also failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload file"})
			return
		}
	}

	if err := h.db.ReplaceRewardImage(ctx, rewardID, imageURL); err != nil {
		log.Printf("Failed to save image URL to DB: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "File uploaded but failed to update reward record"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"image_url": imageURL})
}

func isValidImageType(contentType string) bool {
	switch contentType {
	case "image/jpeg", "image/jpg", "image/png", "image/gif", "image/webp":
		return true
	}
	return false
}

func (h *Handler) uploadToS3(ctx context.Context, rewardID int64, fileHeader *multipart.FileHeader, file multipart.File) (string, error) {
	file.Seek(0, 0)

	region := os.Getenv("AWS_REGION")
	if region == "" {
		region = os.Getenv("AWS_DEFAULT_REGION")
	}
	if region == "" {
		region = "us-east-1"
	}

	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return "", fmt.Errorf("failed to load AWS default config: %w", err)
	}
	s3Client := s3.NewFromConfig(cfg)

	bucketName := os.Getenv("REWARD_ASSETS_BUCKET")
	if bucketName == "" {
		bucketName = "poyntloop-reward-images"
	}
	objectKey := fmt.Sprintf("rewards/%d/%s%s", rewardID, uuid.NewString(), filepath.Ext(fileHeader.Filename))

	_, err = s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: &bucketName,
		Key:    &objectKey,
		Body:   file,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file to S3: %w", err)
	}

	cdnBase := os.Getenv("ASSETS_CDN_BASE_URL")
	if cdnBase == "" {
		cdnBase = "https://assets.poyntloop.com"
	}
	return fmt.Sprintf("%s/%s", strings.TrimRight(cdnBase, "/"), objectKey), nil
}

// uploadToLocal stores the file on local disk for development.
func (h *Handler) uploadToLocal(rewardID int64, fileHeader *multipart.FileHeader, file multipart.File) (string, error) {
	file.Seek(0, 0)

	uploadsDir := "./uploads/rewards"
	if err := os.MkdirAll(uploadsDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create uploads directory: %w", err)
	}

	ext := filepath.Ext(fileHeader.Filename)
	filename := fmt.Sprintf("%d_%d%s", rewardID, time.Now().UnixNano(), ext)
	filePath := filepath.Join(uploadsDir, filename)

	dst, err := os.Create(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return "", fmt.Errorf("failed to save file: %w", err)
	}

	baseURL := os.Getenv("SERVICE_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	return fmt.Sprintf("%s/uploads/rewards/%s", baseURL, filename), nil
}
