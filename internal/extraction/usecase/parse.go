package usecase

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"smart-assistant/internal/extraction"
	"smart-assistant/internal/model"
	"smart-assistant/internal/usage"
	"smart-assistant/pkg/llmprovider"
)

func (uc *implUseCase) ParseText(ctx context.Context, sc model.Scope, input extraction.ParseTextInput) (model.ParsedItems, error) {
	if strings.TrimSpace(input.Text) == "" {
		return model.ParsedItems{}, extraction.ErrEmptyInput
	}
	uc.l.Infof(ctx, "extraction.ParseText: user=%s source=%s input_length=%d", sc.UserID, sc.Source, len(input.Text))

	req := &llmprovider.Request{
		SystemInstruction: llmprovider.SystemText(uc.systemPrompt()),
		Messages:          []llmprovider.Message{llmprovider.UserText(userPrompt(input.Text, input.Metadata))},
		Temperature:       uc.opts.Temperature,
		MaxTokens:         uc.opts.MaxTokens,
		JSONMode:          true,
	}
	return uc.extract(ctx, req)
}

func (uc *implUseCase) ParseImage(ctx context.Context, sc model.Scope, input extraction.ParseImageInput) (model.ParsedItems, error) {
	data, err := os.ReadFile(input.Path)
	if err != nil {
		return model.ParsedItems{}, extraction.NewError(extraction.ErrImageNotFound, "", err)
	}
	uc.l.Infof(ctx, "extraction.ParseImage: user=%s source=%s bytes=%d", sc.UserID, sc.Source, len(data))

	hint := input.Hint
	if strings.TrimSpace(hint) == "" {
		hint = defaultImageHint
	}

	req := &llmprovider.Request{
		SystemInstruction: llmprovider.SystemText(uc.systemPrompt()),
		Messages: []llmprovider.Message{{
			Role: llmprovider.RoleUser,
			Parts: []llmprovider.Part{
				{Text: userPrompt(hint, input.Metadata)},
				{Image: &llmprovider.Image{MimeType: ImageMimeType(input.Path), Data: data}},
			},
		}},
		Temperature: uc.opts.Temperature,
		MaxTokens:   uc.opts.MaxTokens,
		JSONMode:    true,
	}
	return uc.extract(ctx, req)
}

func (uc *implUseCase) extract(ctx context.Context, req *llmprovider.Request) (model.ParsedItems, error) {
	resp, err := uc.llm.GenerateContent(ctx, req)
	if err != nil {
		return model.ParsedItems{}, fmt.Errorf("LLM request failed: %w", err)
	}
	uc.recordUsage(ctx, resp)

	raw := resp.Text()
	uc.l.Debugf(ctx, "extraction: raw model output from %s: %s", resp.ModelName, raw)

	payload, err := ExtractJSON(raw)
	if err != nil {
		uc.l.Errorf(ctx, "extraction: no JSON in model output. Raw=%q", raw)
		return model.ParsedItems{}, err
	}

	items, err := uc.toParsedItems(ctx, payload, raw)
	if err != nil {
		return model.ParsedItems{}, err
	}

	uc.l.Infof(ctx, "extraction: parsed %d events and %d tasks", len(items.Events), len(items.Tasks))
	return items, nil
}

// MapTaskToAllowed only returns names that are exact (case-insensitive) preset members.
func (uc *implUseCase) MapTaskToAllowed(ctx context.Context, sc model.Scope, input extraction.MapTaskInput) (extraction.MapTaskOutput, error) {
	if len(uc.presets) == 0 {
		return extraction.MapTaskOutput{}, nil
	}

	system, user := mapTaskPrompt(uc.presets, input)
	resp, err := uc.llm.GenerateContent(ctx, &llmprovider.Request{
		SystemInstruction: llmprovider.SystemText(system),
		Messages:          []llmprovider.Message{llmprovider.UserText(user)},
		Temperature:       0,
		MaxTokens:         256,
		JSONMode:          true,
	})
	if err != nil {
		return extraction.MapTaskOutput{}, fmt.Errorf("LLM request failed: %w", err)
	}
	uc.recordUsage(ctx, resp)

	raw := resp.Text()
	var category, list string
	payload, err := ExtractJSON(raw)
	switch {
	case err == nil:
		if fields, ok := payload.(map[string]any); ok {
			category = str(fields, "category")
			list = str(fields, "task_list", "list_name", "list")
		} else if s, ok := payload.(string); ok {
			category = s
		}
	case errors.Is(err, extraction.ErrNoJSON):
		category = strings.Trim(strings.TrimSpace(raw), `"'`)
	default:
		return extraction.MapTaskOutput{}, err
	}

	out := extraction.MapTaskOutput{
		Category: uc.presetMember(category),
		ListName: uc.presetMember(list),
	}
	if out.ListName == "" {
		out.ListName = out.Category
	}
	if out.Category == "" {
		out.Category = out.ListName
	}
	uc.l.Infof(ctx, "extraction.MapTaskToAllowed: user=%s title=%q -> category=%q list=%q", sc.UserID, input.Title, out.Category, out.ListName)
	return out, nil
}

func (uc *implUseCase) presetMember(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	for _, p := range uc.presets {
		if p == n {
			return p
		}
	}
	return ""
}

func (uc *implUseCase) recordUsage(ctx context.Context, resp *llmprovider.Response) {
	if resp == nil || resp.Usage == nil {
		return
	}
	u := resp.Usage
	if uc.usage != nil {
		if err := uc.usage.Record(ctx, resp.ModelName, usage.Tokens{
			PromptTokens:     u.InputTokens,
			CompletionTokens: u.OutputTokens,
			TotalTokens:      u.TotalTokens,
		}); err != nil {
			uc.l.Warnf(ctx, "extraction: usage not recorded: %v", err)
		}
	}
	uc.audit.LogAPIUsage(ctx, resp.ModelName, u.InputTokens, u.OutputTokens, u.TotalTokens)
}

// ImageMimeType guesses the image type from the file extension, defaulting to PNG.
func ImageMimeType(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".webp":
		return "image/webp"
	case ".gif":
		return "image/gif"
	default:
		return "image/png"
	}
}
