// Package claude is a thin client over the Anthropic Messages API.
package claude

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const (
	// DefaultModel is the default Claude model
	DefaultModel = "claude-sonnet-4-5-20250929"

	// DefaultMaxTokens caps the reply when the request does not
	DefaultMaxTokens = 4096
)

// Config holds Claude client configuration
type Config struct {
	APIKey     string
	Model      string
	BaseURL    string
	HTTPClient *http.Client
	MaxRetries int
}

// Request is a generation request
type Request struct {
	System      string
	Messages    []Content
	Temperature float64
	MaxTokens   int
}

// Content is one conversation turn
type Content struct {
	Role  string
	Parts []Part
}

// Part is text or an image
type Part struct {
	Text  string
	Image *Image
}

// Image is sent base64 encoded
type Image struct {
	MimeType string
	Data     []byte
}

// Response holds the concatenated text reply
type Response struct {
	Text         string
	InputTokens  int
	OutputTokens int
}

// Client wraps anthropic.Client.
type Client struct {
	client anthropic.Client
	model  string
}

// New creates a Claude client.
func New(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("claude: APIKey is required")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(cfg.MaxRetries),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.HTTPClient != nil {
		opts = append(opts, option.WithHTTPClient(cfg.HTTPClient))
	}

	return &Client{
		client: anthropic.NewClient(opts...),
		model:  cfg.Model,
	}, nil
}

// Model returns the model being used
func (c *Client) Model() string {
	return c.model
}

// GenerateContent sends one Messages API call.
func (c *Client) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: int64(maxTokens),
		Messages:  make([]anthropic.MessageParam, 0, len(req.Messages)),
	}
	if req.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.System}}
	}
	if req.Temperature > 0 {
		params.Temperature = anthropic.Float(req.Temperature)
	}

	for _, msg := range req.Messages {
		blocks := make([]anthropic.ContentBlockParamUnion, 0, len(msg.Parts))
		for _, p := range msg.Parts {
			if p.Image != nil {
				blocks = append(blocks, anthropic.NewImageBlockBase64(
					p.Image.MimeType, base64.StdEncoding.EncodeToString(p.Image.Data)))
			}
			if p.Text != "" {
				blocks = append(blocks, anthropic.NewTextBlock(p.Text))
			}
		}
		if msg.Role == "assistant" {
			params.Messages = append(params.Messages, anthropic.NewAssistantMessage(blocks...))
		} else {
			params.Messages = append(params.Messages, anthropic.NewUserMessage(blocks...))
		}
	}

	message, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("claude: API error: %w", err)
	}

	out := &Response{
		InputTokens:  int(message.Usage.InputTokens),
		OutputTokens: int(message.Usage.OutputTokens),
	}
	for _, block := range message.Content {
		if block.Type == "text" {
			out.Text += block.Text
		}
	}
	return out, nil
}
