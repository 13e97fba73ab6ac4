package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"smart-assistant/config"
	_ "smart-assistant/docs" // Swagger docs
	"smart-assistant/internal/app"
	emailDelivery "smart-assistant/internal/assistant/delivery/email"
	assistantHTTP "smart-assistant/internal/assistant/delivery/http"
	tgDelivery "smart-assistant/internal/assistant/delivery/telegram"
	"smart-assistant/internal/httpserver"
	"smart-assistant/pkg/log"
	"smart-assistant/pkg/mailbox"
	"smart-assistant/pkg/telegram"
)

// @title       Smart Assistant API
// @description Turns chat messages, e-mails and photos into calendar events and tasks.
// @version     1
// @host        localhost:8080
// @schemes     http
// @securityDefinitions.apikey ApiKeyAuth
// @in   header
// @name X-API-Key
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting Smart Assistant...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)
	logger.Infof(ctx, "Calendar backend: %s", cfg.Calendar.Backend)

	// 3. Assistant core
	a, err := app.Build(ctx, cfg, logger)
	if err != nil {
		logger.Error(ctx, "Failed to initialize assistant: ", err)
		return
	}
	if len(cfg.Assistant.TaskPresetLists) > 0 {
		if err := a.EnsurePresets(ctx); err != nil {
			logger.Warnf(ctx, "Preset task lists not provisioned: %v", err)
		}
	}
	a.Audit.LogSystemEvent(ctx, "startup", "service started", map[string]any{
		"environment":      cfg.Environment.Name,
		"calendar_backend": cfg.Calendar.Backend,
	})

	// 4. Telegram
	var telegramHandler tgDelivery.Handler
	var bot *telegram.Bot
	if cfg.Telegram.BotToken != "" {
		bot = telegram.NewBot(cfg.Telegram.BotToken)
		telegramHandler = tgDelivery.New(logger, a.Assistant, a.Usage, bot, tgDelivery.Config{
			AllowedUserIDs:  cfg.Telegram.AllowedUserIDs,
			SecretToken:     cfg.Telegram.WebhookSecret,
			RateLimitPerMin: cfg.Telegram.RateLimitPerMin,
			ProcessTimeout:  parseDuration(ctx, logger, "assistant.process_timeout", cfg.Assistant.ProcessTimeout),
			DownloadDir:     cfg.Telegram.DownloadDir,
		})
		registerWebhook(ctx, logger, bot, cfg.Telegram)
	} else {
		logger.Warn(ctx, "Telegram skipped: telegram.bot_token is missing")
	}

	// 5. E-mail poller
	if cfg.Email.IMAPHost != "" {
		startEmailPoller(ctx, logger, a, bot, cfg)
	} else {
		logger.Info(ctx, "E-mail ingestion disabled: email.imap_host is empty")
	}

	// 6. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:      logger,
		Port:        cfg.HTTPServer.Port,
		Mode:        cfg.HTTPServer.Mode,
		Environment: cfg.Environment.Name,
		APIKey:      cfg.HTTPServer.APIKey,
		Components: map[string]bool{
			httpserver.ComponentCalendar: a.Calendar != nil,
			httpserver.ComponentTasks:    a.Tasks != nil,
			httpserver.ComponentTelegram: bot != nil,
			httpserver.ComponentEmail:    cfg.Email.IMAPHost != "",
		},
		TelegramHandler:  telegramHandler,
		AssistantHandler: assistantHTTP.New(logger, a.Assistant),
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 7. Run
	if err := httpServer.Run(ctx); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	a.Audit.LogSystemEvent(context.Background(), "shutdown", "service stopped", nil)
	logger.Info(context.Background(), "Server stopped gracefully")
}

// registerWebhook registers the configured webhook URL, or the one of a local
// ngrok agent when only telegram.ngrok_api_url is set.
func registerWebhook(ctx context.Context, logger log.Logger, bot *telegram.Bot, cfg config.TelegramConfig) {
	webhookURL := cfg.WebhookURL
	if webhookURL == "" && cfg.NgrokAPIURL != "" {
		detected, err := newTunnelDiscovery(cfg.NgrokAPIURL).webhookURL(ctx)
		if err != nil {
			logger.Warnf(ctx, "Could not detect ngrok URL: %v", err)
		} else {
			webhookURL = detected
			logger.Infof(ctx, "Auto-detected ngrok URL: %s", webhookURL)
		}
	}
	if webhookURL == "" {
		logger.Warn(ctx, "Telegram webhook not registered: telegram.webhook_url is empty")
		return
	}

	if err := bot.SetWebhook(ctx, webhookURL, cfg.WebhookSecret); err != nil {
		logger.Warnf(ctx, "Failed to set Telegram webhook: %v", err)
		return
	}
	logger.Infof(ctx, "✅ Telegram webhook registered at %s", webhookURL)
}

func startEmailPoller(ctx context.Context, logger log.Logger, a *app.App, bot *telegram.Bot, cfg *config.Config) {
	mb, err := mailbox.New(mailbox.Config{
		Host:     cfg.Email.IMAPHost,
		Port:     cfg.Email.IMAPPort,
		Username: cfg.Email.Username,
		Password: cfg.Email.Password,
		Folder:   cfg.Email.Folder,
		UseSSL:   cfg.Email.UseSSL,
		Timeout:  time.Minute,
	})
	if err != nil {
		logger.Warnf(ctx, "E-mail ingestion disabled: %v", err)
		return
	}

	var notifier emailDelivery.Notifier
	if bot != nil {
		notifier = bot
	}
	poller := emailDelivery.New(logger, a.Assistant, mb, notifier, emailDelivery.Config{
		Interval:     parseDuration(ctx, logger, "email.poll_interval", cfg.Email.PollInterval),
		RetryIdle:    parseDuration(ctx, logger, "email.retry_idle", cfg.Email.RetryIdle),
		NotifyChatID: cfg.Telegram.NotifyChatID,
	})
	if err := poller.Start(ctx); err != nil {
		logger.Warnf(ctx, "E-mail ingestion disabled: %v", err)
		return
	}
	logger.Infof(ctx, "✅ E-mail ingestion enabled for %s", cfg.Email.Username)
}

// parseDuration accepts a Go duration or a bare number of seconds. It returns zero
// for an empty or invalid value so callers fall back to their default.
func parseDuration(ctx context.Context, logger log.Logger, key, raw string) time.Duration {
	if raw == "" {
		return 0
	}
	if secs, err := strconv.Atoi(raw); err == nil {
		return time.Duration(secs) * time.Second
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		logger.Warnf(ctx, "Invalid %s %q, using default: %v", key, raw, err)
		return 0
	}
	return d
}
