package telegram

import (
	"time"

	"github.com/gin-gonic/gin"

	"smart-assistant/internal/assistant"
	"smart-assistant/internal/usage"
	pkgLog "smart-assistant/pkg/log"
	pkgTelegram "smart-assistant/pkg/telegram"
)

const defaultProcessTimeout = 2 * time.Minute

// Handler is the interface for the Telegram delivery handler.
type Handler interface {
	HandleWebhook(c *gin.Context)
}

// Config tunes the webhook handler.
type Config struct {
	// AllowedUserIDs restricts the bot to these Telegram users. Empty allows everyone.
	AllowedUserIDs []int64
	// SecretToken is compared with the X-Telegram-Bot-Api-Secret-Token header when set.
	SecretToken string
	// RateLimitPerMin caps requests per chat. Zero disables limiting.
	RateLimitPerMin int
	// ProcessTimeout bounds the background processing of one update.
	ProcessTimeout time.Duration
	// DownloadDir receives photos before extraction. Empty means the OS temp dir.
	DownloadDir string
}

// New creates a new Telegram delivery handler. usageRec may be nil.
func New(
	l pkgLog.Logger,
	uc assistant.UseCase,
	usageRec usage.Recorder,
	bot *pkgTelegram.Bot,
	cfg Config,
) Handler {
	if cfg.ProcessTimeout <= 0 {
		cfg.ProcessTimeout = defaultProcessTimeout
	}
	allowed := make(map[int64]bool, len(cfg.AllowedUserIDs))
	for _, id := range cfg.AllowedUserIDs {
		allowed[id] = true
	}
	return &handler{
		l:        l,
		uc:       uc,
		usage:    usageRec,
		bot:      bot,
		cfg:      cfg,
		allowed:  allowed,
		security: newSecurityValidator(cfg.SecretToken, cfg.RateLimitPerMin),
	}
}
