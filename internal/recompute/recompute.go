// Package recompute invokes the hosted status-derivation procedure. The
// derivation rule itself is opaque: the procedure writes the new effective
// status (and its own audit record) server-side, and this client only
// reports whether the invocation succeeded.
package recompute

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// Client calls the procedure endpoint over HTTP.
type Client struct {
	url        string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a recompute client for the given endpoint.
func NewClient(url string, timeout time.Duration, logger *slog.Logger) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

type request struct {
	ContactID string `json:"contact_id"`
	Reason    string `json:"reason"`
}

// RecomputeStatus invokes the procedure for one contact.
func (c *Client) RecomputeStatus(ctx context.Context, contactID, reason string) error {
	body, err := json.Marshal(request{ContactID: contactID, Reason: reason})
	if err != nil {
		return fmt.Errorf("encoding recompute request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building recompute request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("invoking recompute procedure: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("recompute procedure returned %d: %s", resp.StatusCode, detail)
	}

	c.logger.Debug("recompute invoked", "contact_id", contactID, "reason", reason)
	return nil
}

// Disabled is a no-op recomputer for deployments without the hosted
// procedure; the effective status keeps its last value until one is
// configured.
type Disabled struct {
	Logger *slog.Logger
}

// RecomputeStatus logs the skipped invocation and succeeds.
func (d Disabled) RecomputeStatus(ctx context.Context, contactID, reason string) error {
	if d.Logger != nil {
		d.Logger.Warn("recompute endpoint not configured, skipping", "contact_id", contactID, "reason", reason)
	}
	return nil
}
