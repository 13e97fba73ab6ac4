package usecase

import (
	"context"
	"fmt"
	"strings"

	"smart-assistant/internal/assistant"
	"smart-assistant/internal/audit"
	"smart-assistant/internal/extraction"
	"smart-assistant/internal/model"
	"smart-assistant/pkg/datemath"
)

// ProcessText extracts items from a chat message and writes them to the backends.
func (uc *implUseCase) ProcessText(ctx context.Context, sc model.Scope, input assistant.ProcessTextInput) model.AssistantResult {
	text := strings.TrimSpace(input.Text)
	if text == "" {
		return failure(msgEmptyInput)
	}

	uc.l.Infof(ctx, "ProcessText: user=%s source=%s input_length=%d", sc.UserID, sc.Source, len(text))

	items, err := uc.extractor.ParseText(ctx, sc, extraction.ParseTextInput{
		Text:     text,
		Metadata: uc.metadata(sc, input.Metadata),
	})
	if err != nil {
		uc.l.Errorf(ctx, "ProcessText: extraction failed: %v", err)
		uc.logExtractionError(ctx, sc, err)
		result := failure(fmt.Sprintf(msgParseFailed, err))
		uc.logInteraction(ctx, sc, text, result)
		return result
	}

	result := uc.persist(ctx, sc, items)
	uc.logInteraction(ctx, sc, text, result)
	return result
}

// ProcessImage extracts items from an image and writes them to the backends.
func (uc *implUseCase) ProcessImage(ctx context.Context, sc model.Scope, input assistant.ProcessImageInput) model.AssistantResult {
	if strings.TrimSpace(input.Path) == "" {
		return failure(msgEmptyInput)
	}

	uc.l.Infof(ctx, "ProcessImage: user=%s source=%s path=%s", sc.UserID, sc.Source, input.Path)

	items, err := uc.extractor.ParseImage(ctx, sc, extraction.ParseImageInput{
		Path:     input.Path,
		Hint:     input.Caption,
		Metadata: uc.metadata(sc, input.Metadata),
	})
	auditInput := "[image] " + input.Caption
	if err != nil {
		uc.l.Errorf(ctx, "ProcessImage: extraction failed: %v", err)
		uc.logExtractionError(ctx, sc, err)
		result := failure(fmt.Sprintf(msgImageFailed, err))
		uc.logInteraction(ctx, sc, auditInput, result)
		return result
	}

	result := uc.persist(ctx, sc, items)
	uc.logInteraction(ctx, sc, auditInput, result)
	return result
}

// ProcessEmail runs the subject and body through text extraction and
// rewrites the reply to summarize what the e-mail added.
func (uc *implUseCase) ProcessEmail(ctx context.Context, sc model.Scope, input assistant.ProcessEmailInput) model.AssistantResult {
	if strings.TrimSpace(input.Subject) == "" && strings.TrimSpace(input.Body) == "" {
		return failure(msgEmptyInput)
	}

	meta := extraction.Metadata{
		extraction.MetaEmailSubject: input.Subject,
		extraction.MetaFrom:         input.From,
		extraction.MetaTo:           input.To,
	}
	if sc.Source == "" {
		sc.Source = model.SourceEmail
	}

	result := uc.ProcessText(ctx, sc, assistant.ProcessTextInput{
		Text:     fmt.Sprintf("Subject: %s\n\n%s", input.Subject, input.Body),
		Metadata: meta,
	})
	if result.Success {
		result.Message = emailSummary(len(result.Events), len(result.Tasks))
	}
	return result
}

// metadata returns base extended with the source, the caller's identity and the current time.
// Keys already present in base win.
func (uc *implUseCase) metadata(sc model.Scope, base extraction.Metadata) extraction.Metadata {
	now := uc.now()
	loc := datemath.LoadLocation(uc.timezone)

	meta := extraction.Metadata{
		extraction.MetaSource:           string(sc.Source),
		extraction.MetaCurrentTimeLocal: now.In(loc).Format("2006-01-02 15:04:05 MST"),
		extraction.MetaCurrentTimeUTC:   now.UTC().Format("2006-01-02 15:04:05") + " UTC",
	}
	if sc.Source == model.SourceTelegram {
		meta[extraction.MetaTelegramUserID] = sc.UserID
		meta[extraction.MetaTelegramUsername] = sc.Username
		if sc.ChatID != 0 {
			meta[extraction.MetaChatID] = fmt.Sprint(sc.ChatID)
		}
	}
	for k, v := range base {
		meta[k] = v
	}
	return meta
}

func (uc *implUseCase) logInteraction(ctx context.Context, sc model.Scope, input string, result model.AssistantResult) {
	uc.audit.LogInteraction(ctx, audit.Interaction{
		UserID:   sc.UserID,
		Username: sc.Username,
		Source:   string(sc.Source),
		Input:    input,
		Output:   result.Message,
		Success:  result.Success,
		Metadata: map[string]any{
			"request_id":   sc.RequestID,
			"events_count": len(result.Events),
			"tasks_count":  len(result.Tasks),
		},
	})
}

func (uc *implUseCase) logExtractionError(ctx context.Context, sc model.Scope, err error) {
	uc.audit.LogError(ctx, audit.ErrorRecord{
		ErrorType: "extraction_error",
		Message:   err.Error(),
		UserID:    sc.UserID,
		Username:  sc.Username,
		Context:   map[string]any{"source": string(sc.Source), "request_id": sc.RequestID},
	})
}

func failure(msg string) model.AssistantResult {
	return model.AssistantResult{Success: false, Message: msg}
}
