// Package gemini wraps the inference provider behind the two request
// shapes the bot needs: analyze an image, analyze a text message. The
// client speaks the provider's OpenAI-compatible chat-completions
// surface, so it works against any compatible endpoint.
//
// Per-message faults never surface as Go errors: every call returns an
// extract.Outcome and the caller renders whichever variant came back.
package gemini

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/mhadip/tensibot/internal/extract"
	"github.com/mhadip/tensibot/internal/prompts"
)

const (
	// DefaultBaseURL is Gemini's OpenAI-compatible endpoint.
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai"
	DefaultModel   = "gemini-1.5-flash"
	DefaultTimeout = 120 * time.Second
)

// Config holds configuration for the inference client.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
	// HTTPClient overrides the transport, used by tests.
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// Client submits extraction requests to the inference provider.
type Client struct {
	api    openai.Client
	mu     sync.RWMutex
	model  string
	logger *slog.Logger
}

// New creates a new inference client.
func New(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("inference api key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	opts := []option.RequestOption{
		option.WithBaseURL(strings.TrimRight(cfg.BaseURL, "/")),
		option.WithAPIKey(cfg.APIKey),
		option.WithRequestTimeout(cfg.Timeout),
		// Transport failures are reported per message, not retried.
		option.WithMaxRetries(0),
	}
	if cfg.HTTPClient != nil {
		opts = append(opts, option.WithHTTPClient(cfg.HTTPClient))
	}

	return &Client{
		api:    openai.NewClient(opts...),
		model:  cfg.Model,
		logger: cfg.Logger,
	}, nil
}

// SetModel swaps the model for subsequent requests. Used by config
// hot reload.
func (c *Client) SetModel(model string) {
	if model == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.model = model
}

// Model returns the model currently in use.
func (c *Client) Model() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.model
}

// AnalyzeImage reads the image at imagePath and asks the provider for
// the image-derived field set.
func (c *Client) AnalyzeImage(ctx context.Context, imagePath string) extract.Outcome {
	requestID := newRequestID()

	data, err := os.ReadFile(imagePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			c.logger.Error("image file not found", "request_id", requestID, "path", imagePath)
			return extract.ProviderErrorf("image file not found: %s", imagePath)
		}
		c.logger.Error("failed to read image", "request_id", requestID, "path", imagePath, "error", err)
		return extract.ProviderErrorf("failed to read image %s: %v", imagePath, err)
	}

	dataURL := "data:" + mimeForPath(imagePath) + ";base64," + base64.StdEncoding.EncodeToString(data)
	userMsg := openai.UserMessage([]openai.ChatCompletionContentPartUnionParam{
		openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{URL: dataURL}),
	})

	c.logger.Info("sending image to provider", "request_id", requestID, "path", imagePath, "bytes", len(data), "model", c.Model())
	return c.complete(ctx, requestID, prompts.ImageAnalysis(), userMsg)
}

// AnalyzeText asks the provider for the text-derived field set.
func (c *Client) AnalyzeText(ctx context.Context, text string) extract.Outcome {
	requestID := newRequestID()

	c.logger.Info("sending text to provider", "request_id", requestID, "chars", len(text), "model", c.Model())
	return c.complete(ctx, requestID, prompts.TextExtraction(), openai.UserMessage(text))
}

func (c *Client) complete(ctx context.Context, requestID, instruction string, userMsg openai.ChatCompletionMessageParamUnion) extract.Outcome {
	resp, err := c.api.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.Model()),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(instruction),
			userMsg,
		},
	})
	if err != nil {
		c.logger.Error("provider request failed", "request_id", requestID, "error", err)
		return extract.ProviderError(err.Error())
	}

	outcome := classify(resp)
	if outcome.Kind == extract.OutcomeStructured {
		// The reply and relay report the input-token estimate, as the
		// provider's accounting is attached only to successful parses.
		outcome.Record[extract.TokenCountKey] = resp.Usage.PromptTokens
	}

	c.logger.Info("provider call finished",
		"request_id", requestID,
		"outcome", string(outcome.Kind),
		"prompt_tokens", resp.Usage.PromptTokens,
		"total_tokens", resp.Usage.TotalTokens,
	)
	return outcome
}

// classify maps a raw completion onto the outcome union: content
// blocks win over parsing, and an empty completion is a provider
// error, never an empty record.
func classify(resp *openai.ChatCompletion) extract.Outcome {
	if resp == nil || len(resp.Choices) == 0 {
		return extract.ProviderError("no content parts in response")
	}

	choice := resp.Choices[0]
	if reason := strings.TrimSpace(choice.Message.Refusal); reason != "" {
		return extract.Blocked(reason)
	}
	if string(choice.FinishReason) == "content_filter" {
		return extract.Blocked(string(choice.FinishReason))
	}

	content := strings.TrimSpace(choice.Message.Content)
	if content == "" {
		return extract.ProviderError("no content parts in response")
	}

	return extract.Normalize(content)
}

func mimeForPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	default:
		// Telegram re-encodes photos as JPEG.
		return "image/jpeg"
	}
}

// newRequestID returns a short id to correlate the request/outcome log
// lines of one provider call.
func newRequestID() string {
	return uuid.New().String()[:8]
}
