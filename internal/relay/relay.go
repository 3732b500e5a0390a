// Package relay forwards enriched records to the spreadsheet webhook
// (a Google Apps Script endpoint). Relaying is best-effort by design:
// every failure mode degrades to a boolean the handler folds into the
// reply, and nothing is ever retried.
package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/mhadip/tensibot/internal/extract"
)

// DefaultTimeout bounds one webhook POST.
const DefaultTimeout = 20 * time.Second

// Client posts records to the configured webhook URL.
type Client struct {
	mu         sync.RWMutex
	url        string
	httpClient *http.Client
	logger     *slog.Logger
}

// New creates a relay client. An empty url disables relaying: Relay
// then logs an informational skip and reports false, which is policy,
// not an error.
func New(url string, timeout time.Duration, logger *slog.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		url: url,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Configured reports whether a webhook URL is set.
func (c *Client) Configured() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.url != ""
}

// SetWebhookURL swaps the endpoint. Used by config hot reload; an
// empty URL disables relaying for subsequent messages.
func (c *Client) SetWebhookURL(url string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.url = url
}

// Relay posts the record as a JSON body. Returns true only on an HTTP
// 2xx response. Non-2xx statuses and transport failures are logged and
// reported as false; there is no retry.
func (c *Client) Relay(ctx context.Context, record extract.Record) bool {
	c.mu.RLock()
	url := c.url
	c.mu.RUnlock()

	if url == "" {
		c.logger.Info("spreadsheet webhook not configured, skipping relay")
		return false
	}
	if record == nil {
		c.logger.Error("refusing to relay a nil record")
		return false
	}

	// Diagnostic only: a record that drifted from the sheet's column
	// set is still posted, the webhook is expected to degrade.
	if err := extract.ValidateRelayRecord(record); err != nil {
		c.logger.Warn("relay record failed schema check", "error", err)
	}

	body, err := json.Marshal(record)
	if err != nil {
		c.logger.Error("failed to encode relay record", "error", err)
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		c.logger.Error("failed to create relay request", "error", err)
		return false
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("failed to send record to spreadsheet", "error", err)
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Error("spreadsheet webhook rejected record", "status", resp.StatusCode)
		return false
	}

	c.logger.Info("record sent to spreadsheet", "status", resp.StatusCode)
	return true
}
