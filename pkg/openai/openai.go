package openai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// GenerateContent sends a chat completion request
func (o *openAIImpl) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	body, err := json.Marshal(o.transformRequest(req))
	if err != nil {
		return nil, fmt.Errorf("openai: failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		strings.TrimRight(o.baseURL, "/")+"/chat/completions", bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("openai: failed to create request: %w", err)
	}

	httpReq.Header.Set("Authorization", "Bearer "+o.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := o.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("openai: API call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("openai: API error %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return nil, fmt.Errorf("openai: failed to decode response: %w", err)
	}

	return o.transformResponse(&chatResp), nil
}

// Model returns the model being used
func (o *openAIImpl) Model() string {
	return o.model
}

func (o *openAIImpl) transformRequest(req *Request) *chatRequest {
	out := &chatRequest{
		Model:       o.model,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
		Messages:    make([]chatMessage, 0, len(req.Messages)+1),
	}
	if req.JSONMode {
		out.ResponseFormat = &responseFormat{Type: "json_object"}
	}

	if req.SystemInstruction != nil {
		sys := transformMessage(req.SystemInstruction)
		sys.Role = "system"
		out.Messages = append(out.Messages, sys)
	}

	for i := range req.Messages {
		out.Messages = append(out.Messages, transformMessage(&req.Messages[i]))
	}

	return out
}

// transformMessage keeps plain string content unless an image is present.
func transformMessage(msg *Content) chatMessage {
	hasImage := false
	for _, p := range msg.Parts {
		if p.Image != nil {
			hasImage = true
			break
		}
	}

	if !hasImage {
		texts := make([]string, 0, len(msg.Parts))
		for _, p := range msg.Parts {
			if p.Text != "" {
				texts = append(texts, p.Text)
			}
		}
		return chatMessage{Role: msg.Role, Content: strings.Join(texts, "\n")}
	}

	parts := make([]contentPart, 0, len(msg.Parts))
	for _, p := range msg.Parts {
		if p.Text != "" {
			parts = append(parts, contentPart{Type: "text", Text: p.Text})
		}
		if p.Image != nil {
			parts = append(parts, contentPart{
				Type:     "image_url",
				ImageURL: &imageURL{URL: DataURL(p.Image.MimeType, p.Image.Data)},
			})
		}
	}
	return chatMessage{Role: msg.Role, Content: parts}
}

// DataURL encodes data as a base64 data URL.
func DataURL(mimeType string, data []byte) string {
	if mimeType == "" {
		mimeType = "image/jpeg"
	}
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

func (o *openAIImpl) transformResponse(resp *chatResponse) *Response {
	usage := &Usage{
		InputTokens:  resp.Usage.PromptTokens,
		OutputTokens: resp.Usage.CompletionTokens,
		TotalTokens:  resp.Usage.TotalTokens,
	}
	if len(resp.Choices) == 0 {
		return &Response{Model: resp.Model, Usage: usage}
	}

	choice := resp.Choices[0]
	content := Content{Role: choice.Message.Role}
	if choice.Message.Content != "" {
		content.Parts = []Part{{Text: choice.Message.Content}}
	}

	return &Response{Content: content, Model: resp.Model, Usage: usage}
}
