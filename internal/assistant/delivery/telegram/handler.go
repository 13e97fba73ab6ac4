package telegram

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	"smart-assistant/internal/assistant"
	"smart-assistant/internal/model"
	"smart-assistant/internal/usage"
	pkgLog "smart-assistant/pkg/log"
	pkgResponse "smart-assistant/pkg/response"
	pkgTelegram "smart-assistant/pkg/telegram"
)

type handler struct {
	l        pkgLog.Logger
	uc       assistant.UseCase
	usage    usage.Recorder
	bot      *pkgTelegram.Bot
	cfg      Config
	allowed  map[int64]bool
	security *securityValidator
}

// HandleWebhook is the Gin handler for incoming Telegram webhook updates.
// It responds with HTTP 200 immediately and processes the message in a background goroutine:
// Telegram expects an answer within seconds, extraction plus backend writes can take much longer.
func (h *handler) HandleWebhook(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.security.ValidateSecretToken(c.GetHeader(secretTokenHeader)); err != nil {
		h.l.Warnf(ctx, "telegram handler: rejected update: %v", err)
		pkgResponse.Unauthorized(c)
		return
	}

	var update pkgTelegram.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		h.l.Errorf(ctx, "telegram handler: failed to parse update: %v", err)
		pkgResponse.Error(c, err, nil)
		return
	}

	// Ignore non-message updates (edited messages, channel posts, etc.)
	if update.Message == nil || update.Message.Chat == nil {
		pkgResponse.OK(c, map[string]string{"status": "ignored"})
		return
	}

	msg := update.Message
	chatID := msg.Chat.ID

	if msg.From != nil && len(h.allowed) > 0 && !h.allowed[msg.From.ID] {
		h.l.Warnf(ctx, "telegram handler: user %d is not allowed", msg.From.ID)
		go h.reply(context.Background(), chatID, msgNotAllowed)
		pkgResponse.OK(c, map[string]string{"status": "forbidden"})
		return
	}

	// A non-2xx answer makes Telegram redeliver the update, so limited chats still get 200.
	if err := h.security.CheckRateLimit(chatID); err != nil {
		h.l.Warnf(ctx, "telegram handler: %v", err)
		go h.reply(context.Background(), chatID, msgRateLimited)
		pkgResponse.OK(c, map[string]string{"status": "rate_limited"})
		return
	}

	go func() {
		// Detach from the request context, which is cancelled once we answer.
		bgCtx, cancel := context.WithTimeout(context.Background(), h.cfg.ProcessTimeout)
		defer cancel()
		if err := h.processMessage(bgCtx, msg); err != nil {
			h.l.Errorf(bgCtx, "telegram handler: background processMessage failed: %v", err)
			h.reply(context.Background(), chatID, msgInternalError)
		}
	}()

	pkgResponse.OK(c, map[string]string{"status": "accepted"})
}

// processMessage handles a single Telegram message.
func (h *handler) processMessage(ctx context.Context, msg *pkgTelegram.Message) error {
	chatID := msg.Chat.ID
	sc := scopeOf(msg)

	if cmd := command(msg.Text); cmd != "" {
		return h.handleCommand(ctx, sc, cmd)
	}

	if photo := msg.LargestPhoto(); photo != nil {
		return h.handleImage(ctx, sc, photo.FileID, msg.Caption)
	}
	if doc := msg.Document; doc != nil && strings.HasPrefix(doc.MimeType, "image/") {
		return h.handleImage(ctx, sc, doc.FileID, msg.Caption)
	}

	text := strings.TrimSpace(msg.Text)
	if text == "" {
		return h.bot.SendMessage(ctx, chatID, msgUnsupported)
	}

	h.ack(ctx, chatID)
	result := h.uc.ProcessText(ctx, sc, assistant.ProcessTextInput{Text: text})
	return h.bot.SendMessage(ctx, chatID, formatResult(result))
}

func (h *handler) handleCommand(ctx context.Context, sc model.Scope, cmd string) error {
	switch cmd {
	case "/start":
		return h.bot.SendMessage(ctx, sc.ChatID, msgStart)
	case "/help":
		return h.bot.SendMessage(ctx, sc.ChatID, msgHelp)
	case "/usage":
		return h.bot.SendMessage(ctx, sc.ChatID, formatUsage(h.usageLines()))
	case "/today":
		out, err := h.uc.ListToday(ctx, sc)
		if err != nil {
			if errors.Is(err, assistant.ErrNoCalendar) {
				return h.bot.SendMessage(ctx, sc.ChatID, msgNoCalendar)
			}
			h.l.Errorf(ctx, "telegram handler: ListToday failed: %v", err)
			return h.bot.SendMessage(ctx, sc.ChatID, msgTodayFailed)
		}
		return h.bot.SendMessage(ctx, sc.ChatID, formatToday(out))
	default:
		return h.bot.SendMessage(ctx, sc.ChatID, fmt.Sprintf(msgUnknownCommand, cmd))
	}
}

func (h *handler) handleImage(ctx context.Context, sc model.Scope, fileID, caption string) error {
	h.ack(ctx, sc.ChatID)

	path, err := h.bot.DownloadFile(ctx, fileID, h.cfg.DownloadDir)
	if err != nil {
		h.l.Errorf(ctx, "telegram handler: download %s failed: %v", fileID, err)
		return h.bot.SendMessage(ctx, sc.ChatID, msgDownloadFailed)
	}
	defer func() {
		if err := os.Remove(path); err != nil {
			h.l.Warnf(ctx, "telegram handler: failed to remove %s: %v", path, err)
		}
	}()

	result := h.uc.ProcessImage(ctx, sc, assistant.ProcessImageInput{Path: path, Caption: caption})
	return h.bot.SendMessage(ctx, sc.ChatID, formatResult(result))
}

func (h *handler) usageLines() []string {
	if h.usage == nil {
		return nil
	}
	return h.usage.SummaryLines()
}

// ack tells the user processing has started.
func (h *handler) ack(ctx context.Context, chatID int64) {
	if err := h.bot.SendMessage(ctx, chatID, msgProcessing); err != nil {
		h.l.Warnf(ctx, "telegram handler: failed to send ack message: %v", err)
	}
}

// reply is a best-effort send used outside the processing flow.
func (h *handler) reply(ctx context.Context, chatID int64, text string) {
	if err := h.bot.SendMessage(ctx, chatID, text); err != nil {
		h.l.Warnf(ctx, "telegram handler: failed to reply to chat %d: %v", chatID, err)
	}
}

func scopeOf(msg *pkgTelegram.Message) model.Scope {
	var userID, username string
	if msg.From != nil {
		userID = fmt.Sprint(msg.From.ID)
		username = msg.From.Username
	}
	sc := model.NewScope(model.SourceTelegram, userID, username)
	sc.ChatID = msg.Chat.ID
	return sc
}

// command returns the lower-cased command of text ("/today@MyBot later" -> "/today"), or "".
func command(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "/") {
		return ""
	}
	cmd := strings.Fields(text)[0]
	if i := strings.IndexByte(cmd, '@'); i > 0 {
		cmd = cmd[:i]
	}
	return strings.ToLower(cmd)
}
