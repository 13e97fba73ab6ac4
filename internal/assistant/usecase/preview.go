package usecase

import (
	"context"
	"strings"

	"smart-assistant/internal/assistant"
	"smart-assistant/internal/extraction"
	"smart-assistant/internal/model"
)

// PreviewText returns what ProcessText would write, without touching the backends.
func (uc *implUseCase) PreviewText(ctx context.Context, sc model.Scope, input assistant.ProcessTextInput) (model.ParsedItems, error) {
	text := strings.TrimSpace(input.Text)
	if text == "" {
		return model.ParsedItems{}, assistant.ErrEmptyInput
	}

	items, err := uc.extractor.ParseText(ctx, sc, extraction.ParseTextInput{
		Text:     text,
		Metadata: uc.metadata(sc, input.Metadata),
	})
	if err != nil {
		uc.l.Errorf(ctx, "PreviewText: extraction failed: %v", err)
		return model.ParsedItems{}, err
	}

	for i := range items.Events {
		uc.applyColor(ctx, &items.Events[i])
	}
	for i := range items.Tasks {
		uc.reconcileTask(ctx, sc, &items.Tasks[i])
	}
	return items, nil
}
