package llmprovider

import (
	"context"

	"smart-assistant/pkg/claude"
	"smart-assistant/pkg/gemini"
	"smart-assistant/pkg/openai"
)

// GeminiAdapter adapts pkg/gemini to llmprovider.Provider interface
type GeminiAdapter struct {
	client gemini.IGemini
}

// NewGeminiAdapter creates a new Gemini adapter
func NewGeminiAdapter(client gemini.IGemini) *GeminiAdapter {
	return &GeminiAdapter{client: client}
}

// GenerateContent implements Provider interface
func (a *GeminiAdapter) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	geminiReq := &gemini.Request{
		SystemInstruction: convertToGeminiContent(req.SystemInstruction),
		Messages:          make([]gemini.Content, len(req.Messages)),
		Temperature:       req.Temperature,
		MaxTokens:         req.MaxTokens,
		JSONMode:          req.JSONMode,
	}
	for i := range req.Messages {
		geminiReq.Messages[i] = *convertToGeminiContent(&req.Messages[i])
	}

	resp, err := a.client.GenerateContent(ctx, geminiReq)
	if err != nil {
		return nil, err
	}

	parts := make([]Part, len(resp.Content.Parts))
	for i, p := range resp.Content.Parts {
		parts[i] = Part{Text: p.Text}
	}

	return &Response{
		Content:      Message{Role: RoleAssistant, Parts: parts},
		ProviderName: a.Name(),
		ModelName:    a.client.Model(),
		Usage: &Usage{
			InputTokens:  resp.Usage.InputTokens,
			OutputTokens: resp.Usage.OutputTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		},
	}, nil
}

// Name returns provider name
func (a *GeminiAdapter) Name() string {
	return "gemini"
}

// Model returns model name
func (a *GeminiAdapter) Model() string {
	return a.client.Model()
}

func convertToGeminiContent(msg *Message) *gemini.Content {
	if msg == nil {
		return nil
	}
	parts := make([]gemini.Part, len(msg.Parts))
	for i, p := range msg.Parts {
		parts[i] = gemini.Part{Text: p.Text}
		if p.Image != nil {
			parts[i].InlineData = &gemini.Blob{MimeType: p.Image.MimeType, Data: p.Image.Data}
		}
	}
	return &gemini.Content{Role: msg.Role, Parts: parts}
}

// OpenAIAdapter adapts pkg/openai to llmprovider.Provider interface.
// One adapter serves every OpenAI-compatible vendor; name tells them apart.
type OpenAIAdapter struct {
	client openai.IOpenAI
	name   string
}

// NewOpenAIAdapter creates a new OpenAI-compatible adapter
func NewOpenAIAdapter(name string, client openai.IOpenAI) *OpenAIAdapter {
	return &OpenAIAdapter{client: client, name: name}
}

// GenerateContent implements Provider interface
func (a *OpenAIAdapter) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	openAIReq := &openai.Request{
		SystemInstruction: convertToOpenAIContent(req.SystemInstruction),
		Messages:          make([]openai.Content, len(req.Messages)),
		Temperature:       req.Temperature,
		MaxTokens:         req.MaxTokens,
		JSONMode:          req.JSONMode,
	}
	for i := range req.Messages {
		openAIReq.Messages[i] = *convertToOpenAIContent(&req.Messages[i])
	}

	resp, err := a.client.GenerateContent(ctx, openAIReq)
	if err != nil {
		return nil, err
	}

	parts := make([]Part, len(resp.Content.Parts))
	for i, p := range resp.Content.Parts {
		parts[i] = Part{Text: p.Text}
	}

	model := resp.Model
	if model == "" {
		model = a.client.Model()
	}

	return &Response{
		Content:      Message{Role: RoleAssistant, Parts: parts},
		ProviderName: a.name,
		ModelName:    model,
		Usage: &Usage{
			InputTokens:  resp.Usage.InputTokens,
			OutputTokens: resp.Usage.OutputTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		},
	}, nil
}

// Name returns provider name
func (a *OpenAIAdapter) Name() string {
	return a.name
}

// Model returns model name
func (a *OpenAIAdapter) Model() string {
	return a.client.Model()
}

func convertToOpenAIContent(msg *Message) *openai.Content {
	if msg == nil {
		return nil
	}
	parts := make([]openai.Part, len(msg.Parts))
	for i, p := range msg.Parts {
		parts[i] = openai.Part{Text: p.Text}
		if p.Image != nil {
			parts[i].Image = &openai.Image{MimeType: p.Image.MimeType, Data: p.Image.Data}
		}
	}
	return &openai.Content{Role: msg.Role, Parts: parts}
}

// claudeClient is the subset of *claude.Client the adapter needs.
type claudeClient interface {
	GenerateContent(ctx context.Context, req *claude.Request) (*claude.Response, error)
	Model() string
}

// ClaudeAdapter adapts pkg/claude to llmprovider.Provider interface
type ClaudeAdapter struct {
	client claudeClient
}

// NewClaudeAdapter creates a new Claude adapter
func NewClaudeAdapter(client claudeClient) *ClaudeAdapter {
	return &ClaudeAdapter{client: client}
}

// GenerateContent implements Provider interface
func (a *ClaudeAdapter) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	claudeReq := &claude.Request{
		Messages:    make([]claude.Content, len(req.Messages)),
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}
	if req.SystemInstruction != nil {
		for _, p := range req.SystemInstruction.Parts {
			claudeReq.System += p.Text
		}
	}
	for i, msg := range req.Messages {
		parts := make([]claude.Part, len(msg.Parts))
		for j, p := range msg.Parts {
			parts[j] = claude.Part{Text: p.Text}
			if p.Image != nil {
				parts[j].Image = &claude.Image{MimeType: p.Image.MimeType, Data: p.Image.Data}
			}
		}
		claudeReq.Messages[i] = claude.Content{Role: msg.Role, Parts: parts}
	}

	resp, err := a.client.GenerateContent(ctx, claudeReq)
	if err != nil {
		return nil, err
	}

	return &Response{
		Content:      Message{Role: RoleAssistant, Parts: []Part{{Text: resp.Text}}},
		ProviderName: a.Name(),
		ModelName:    a.client.Model(),
		Usage: &Usage{
			InputTokens:  resp.InputTokens,
			OutputTokens: resp.OutputTokens,
			TotalTokens:  resp.InputTokens + resp.OutputTokens,
		},
	}, nil
}

// Name returns provider name
func (a *ClaudeAdapter) Name() string {
	return "anthropic"
}

// Model returns model name
func (a *ClaudeAdapter) Model() string {
	return a.client.Model()
}
