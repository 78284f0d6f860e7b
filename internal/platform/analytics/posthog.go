// Package analytics wraps the PostHog client so callers can enqueue product
// events without caring whether analytics is configured.
package analytics

import (
	"log/slog"

	"github.com/posthog/posthog-go"
)

const defaultEndpoint = "https://eu.i.posthog.com"

// Client is a nil-safe wrapper around posthog.Client.
type Client struct {
	posthogClient posthog.Client
	logger        *slog.Logger
}

// NewClient returns a disabled client when apiKey is empty.
func NewClient(apiKey string, logger *slog.Logger) *Client {
	if apiKey == "" {
		logger.Warn("PostHog API key is empty, analytics disabled")
		return &Client{logger: logger}
	}
	c, err := posthog.NewWithConfig(apiKey, posthog.Config{Endpoint: defaultEndpoint})
	if err != nil {
		logger.Error("Failed to initialise PostHog client", slog.String("error", err.Error()))
		return &Client{logger: logger}
	}
	logger.Info("PostHog client initialised")
	return Wrap(c, logger)
}

// Wrap builds a Client around an existing posthog.Client.
func Wrap(c posthog.Client, logger *slog.Logger) *Client {
	return &Client{posthogClient: c, logger: logger}
}

func (c *Client) Enabled() bool {
	return c != nil && c.posthogClient != nil
}

// Enqueue captures event for distinctID. It is a no-op when analytics is disabled.
func (c *Client) Enqueue(distinctID string, event string, properties map[string]any) {
	if !c.Enabled() {
		return
	}
	err := c.posthogClient.Enqueue(posthog.Capture{
		DistinctId: distinctID,
		Event:      event,
		Properties: properties,
	})
	if err != nil && c.logger != nil {
		c.logger.Warn("Failed to enqueue analytics event", slog.String("event", event), slog.String("error", err.Error()))
	}
}

// Close flushes pending events.
func (c *Client) Close() {
	if !c.Enabled() {
		return
	}
	c.posthogClient.Close()
}
