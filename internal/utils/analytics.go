package utils

import (
	"log/slog"

	"github.com/posthog/posthog-go"
)

// AnalyticsClient wraps the PostHog client so callers never have to care
// whether analytics is configured. An unconfigured client swallows events.
type AnalyticsClient struct {
	client posthog.Client
	logger *slog.Logger
}

// NewAnalyticsClient creates the analytics client. An empty API key yields a
// disabled client; every capture becomes a no-op.
func NewAnalyticsClient(apiKey string, logger *slog.Logger) *AnalyticsClient {
	if apiKey == "" {
		logger.Warn("Analytics API key is empty, event capture is disabled.")
		return &AnalyticsClient{}
	}
	client, err := posthog.NewWithConfig(apiKey, posthog.Config{Endpoint: "https://eu.i.posthog.com"})
	if err != nil {
		logger.Error("Failed to initialize analytics client", slog.String("error", err.Error()))
		return &AnalyticsClient{}
	}
	logger.Info("Analytics client initialized.")
	return &AnalyticsClient{client: client, logger: logger}
}

// IsEnabled reports whether events will actually be sent.
func (a *AnalyticsClient) IsEnabled() bool {
	return a != nil && a.client != nil
}

// Capture enqueues one event keyed by the acting user.
func (a *AnalyticsClient) Capture(distinctID string, event string, properties map[string]any) {
	if a == nil || a.client == nil {
		return
	}
	if err := a.client.Enqueue(posthog.Capture{
		DistinctId: distinctID,
		Event:      event,
		Properties: properties,
	}); err != nil && a.logger != nil {
		a.logger.Warn("Failed to enqueue analytics event",
			slog.String("event", event),
			slog.String("error", err.Error()))
	}
}

// Close flushes pending events. Safe on a disabled client.
func (a *AnalyticsClient) Close() {
	if a == nil || a.client == nil {
		return
	}
	if err := a.client.Close(); err != nil && a.logger != nil {
		a.logger.Warn("Failed to close analytics client", slog.String("error", err.Error()))
	}
}
