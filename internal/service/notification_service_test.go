package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/mosquito-alert/internal/config"
	"github.com/spec-kit/mosquito-alert/internal/events"
	"github.com/spec-kit/mosquito-alert/internal/observability"
)

func TestNotificationServiceCountsMutations(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()
	metrics := observability.NewMetrics()
	svc := NewNotificationService(dispatcher, zap.NewNop(), metrics, config.NotificationConfig{})
	svc.RegisterHandlers()

	ctx := context.Background()
	require.NoError(t, dispatcher.Publish(ctx, events.Event{Type: events.EventSessionChanged}))
	require.NoError(t, dispatcher.Publish(ctx, events.Event{Type: events.EventReportCreated}))
	require.NoError(t, dispatcher.Publish(ctx, events.Event{Type: events.EventReportCreated}))

	assert.Equal(t, int64(1), metrics.MutationCount(string(events.EventSessionChanged)))
	assert.Equal(t, int64(2), metrics.MutationCount(string(events.EventReportCreated)))
}
