package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/mosquito-alert/internal/config"
)

func TestUploadReturnsPlaceholderURI(t *testing.T) {
	svc := NewUploadService(config.UploadConfig{MaxBytes: 1024}, nil)

	uri, err := svc.Upload(context.Background(), "foco.jpg", "image/jpeg", []byte("fake-bytes"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(uri, uploadBaseURL))
	assert.True(t, strings.HasSuffix(uri, ".jpg"))

	other, err := svc.Upload(context.Background(), "foco.jpg", "image/jpeg", []byte("fake-bytes"))
	require.NoError(t, err)
	assert.NotEqual(t, uri, other, "retries yield fresh URIs")
}

func TestUploadRejectsNonImage(t *testing.T) {
	svc := NewUploadService(config.UploadConfig{MaxBytes: 1024}, nil)

	_, err := svc.Upload(context.Background(), "doc.pdf", "application/pdf", []byte("x"))
	require.Error(t, err)
}

func TestUploadRejectsOversizedPayload(t *testing.T) {
	svc := NewUploadService(config.UploadConfig{MaxBytes: 4}, nil)

	_, err := svc.Upload(context.Background(), "big.png", "image/png", []byte("12345"))
	require.Error(t, err)
}

func TestUploadHonorsContextCancellation(t *testing.T) {
	svc := NewUploadService(config.UploadConfig{MaxBytes: 1024, LatencyMillis: 5000}, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := svc.Upload(ctx, "foco.png", "image/png", []byte("x"))
	require.ErrorIs(t, err, context.DeadlineExceeded)
}
