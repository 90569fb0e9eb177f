package service

import (
	"context"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/mosquito-alert/internal/config"
	"github.com/spec-kit/mosquito-alert/pkg/util"
)

const uploadBaseURL = "https://images.mosquito-alert.local/"

// UploadService simulates the image storage backend: it validates the payload,
// waits the configured latency and hands back a placeholder URI. Retrying the
// same upload is safe; every call yields a fresh URI and no state is kept.
type UploadService struct {
	maxBytes int64
	latency  time.Duration
	logger   *zap.Logger
}

// NewUploadService constructs the service.
func NewUploadService(cfg config.UploadConfig, logger *zap.Logger) *UploadService {
	if logger == nil {
		logger = zap.NewNop()
	}
	maxBytes := cfg.MaxBytes
	if maxBytes <= 0 {
		maxBytes = 5 * 1024 * 1024
	}
	return &UploadService{
		maxBytes: maxBytes,
		latency:  cfg.UploadLatency(),
		logger:   logger,
	}
}

// Upload accepts an image payload and returns its placeholder URI. Fails with
// a validation error for non-image MIME types or oversized payloads; honors
// context cancellation while the simulated transfer is in flight.
func (s *UploadService) Upload(ctx context.Context, fileName, mimeType string, data []byte) (string, error) {
	if !strings.HasPrefix(mimeType, "image/") {
		return "", util.NewValidationError("only image uploads are accepted", map[string]any{
			"mime_type": mimeType,
		})
	}
	if int64(len(data)) > s.maxBytes {
		return "", util.NewValidationError("image exceeds size limit", map[string]any{
			"size_bytes": len(data),
			"max_bytes":  s.maxBytes,
		})
	}

	if s.latency > 0 {
		timer := time.NewTimer(s.latency)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-timer.C:
		}
	}

	ext := path.Ext(fileName)
	uri := uploadBaseURL + uuid.NewString() + ext
	s.logger.Debug("image upload simulated",
		zap.String("file_name", fileName),
		zap.Int("size_bytes", len(data)),
		zap.String("uri", uri))
	return uri, nil
}
