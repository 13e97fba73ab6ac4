package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	// Assistant
	Assistant AssistantConfig
	Telegram  TelegramConfig
	Google    GoogleConfig
	Calendar  CalendarConfig
	CalDAV    CalDAVConfig
	Email     EmailConfig

	// LLM Provider Abstraction
	LLM LLMConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port int
	Mode string
	// APIKey guards /api/v1. Empty leaves the REST API open.
	APIKey string
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

// AssistantConfig drives extraction and persistence behaviour.
type AssistantConfig struct {
	DefaultTimezone    string
	UsagePath          string
	AuditDir           string
	AuditRetentionDays int
	// EventCategories is the allow-list events are clamped to. Empty disables clamping.
	EventCategories []string
	// TaskPresetLists are the task lists the operator wants to exist.
	TaskPresetLists []string
	MaxLists        int
	CategoryColors  map[string]string
	DefaultColorID  string
	ProcessTimeout  string
}

type TelegramConfig struct {
	BotToken   string
	WebhookURL string
	// WebhookSecret is registered with setWebhook and checked on every update.
	WebhookSecret string
	// NgrokAPIURL is a local ngrok agent API used to discover WebhookURL when it is empty.
	NgrokAPIURL     string
	DownloadDir     string
	NotifyChatID    int64
	RateLimitPerMin int
	AllowedUserIDs  []int64
}

// GoogleConfig holds the Google Calendar and Google Tasks settings.
type GoogleConfig struct {
	CredentialsPath string
	TokenPath       string
	CalendarID      string
	TaskListID      string
}

// CalendarConfig selects the calendar backend: "google" or "caldav".
type CalendarConfig struct {
	Backend string
}

// CalDAVConfig locates the CalDAV collections. TaskPath enables VTODO tasks
// when Google Tasks is not configured.
type CalDAVConfig struct {
	URL          string
	Username     string
	Password     string
	CalendarPath string
	TaskPath     string
}

// EmailConfig configures the IMAP poller. Empty IMAPHost disables it.
type EmailConfig struct {
	IMAPHost     string
	IMAPPort     int
	Username     string
	Password     string
	Folder       string
	UseSSL       bool
	PollInterval string
	RetryIdle    string
}

// LLMConfig holds configuration for the LLM provider abstraction layer
type LLMConfig struct {
	Providers       []ProviderConfig `yaml:"providers"`
	FallbackEnabled bool             `yaml:"fallback_enabled"`
	RetryAttempts   int              `yaml:"retry_attempts"`
	RetryDelay      string           `yaml:"retry_delay"`
	MaxTotalTimeout string           `yaml:"max_total_timeout"`
}

// ProviderConfig holds configuration for a single LLM provider
type ProviderConfig struct {
	Name     string `yaml:"name"`
	Enabled  bool   `yaml:"enabled"`
	Priority int    `yaml:"priority"`
	APIKey   string `yaml:"api_key"`
	BaseURL  string `yaml:"base_url,omitempty"`
	Model    string `yaml:"model"`
	Timeout  string `yaml:"timeout"`
}

// Load loads configuration using Viper.
// A .env file in the working directory is applied to the environment first.
// Config file name: config.yaml, searched in ./config, ., /etc/app/
func Load() (*Config, error) {
	_ = godotenv.Load()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/app/")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.HTTPServer.Port = viper.GetInt("http_server.port")
	cfg.HTTPServer.Mode = viper.GetString("http_server.mode")
	cfg.HTTPServer.APIKey = expandEnvVar(viper.GetString("http_server.api_key"))
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")

	// Assistant
	cfg.Assistant.DefaultTimezone = viper.GetString("assistant.default_timezone")
	cfg.Assistant.UsagePath = viper.GetString("assistant.usage_path")
	cfg.Assistant.AuditDir = viper.GetString("assistant.audit_dir")
	cfg.Assistant.AuditRetentionDays = viper.GetInt("assistant.audit_retention_days")
	cfg.Assistant.EventCategories = getList("assistant.event_categories")
	cfg.Assistant.TaskPresetLists = getList("assistant.task_preset_lists")
	cfg.Assistant.MaxLists = viper.GetInt("assistant.max_lists")
	cfg.Assistant.CategoryColors = viper.GetStringMapString("assistant.category_colors")
	cfg.Assistant.DefaultColorID = viper.GetString("assistant.default_color_id")
	cfg.Assistant.ProcessTimeout = viper.GetString("assistant.process_timeout")

	// Telegram
	cfg.Telegram.BotToken = viper.GetString("telegram.bot_token")
	cfg.Telegram.WebhookURL = viper.GetString("telegram.webhook_url")
	cfg.Telegram.WebhookSecret = expandEnvVar(viper.GetString("telegram.webhook_secret"))
	cfg.Telegram.NgrokAPIURL = viper.GetString("telegram.ngrok_api_url")
	cfg.Telegram.DownloadDir = viper.GetString("telegram.download_dir")
	cfg.Telegram.NotifyChatID = viper.GetInt64("telegram.notify_chat_id")
	cfg.Telegram.RateLimitPerMin = viper.GetInt("telegram.rate_limit_per_min")
	if tgToken := viper.GetString("telegram_bot_token"); tgToken != "" {
		cfg.Telegram.BotToken = tgToken
	}
	for _, raw := range getList("telegram.allowed_user_ids") {
		var id int64
		if _, err := fmt.Sscanf(raw, "%d", &id); err == nil {
			cfg.Telegram.AllowedUserIDs = append(cfg.Telegram.AllowedUserIDs, id)
		}
	}

	// Google
	cfg.Google.CredentialsPath = viper.GetString("google.credentials_path")
	cfg.Google.TokenPath = viper.GetString("google.token_path")
	cfg.Google.CalendarID = viper.GetString("google.calendar_id")
	cfg.Google.TaskListID = viper.GetString("google.task_list_id")
	if googleCreds := viper.GetString("google_credentials"); googleCreds != "" {
		cfg.Google.CredentialsPath = googleCreds
	}

	// Calendar backend
	cfg.Calendar.Backend = strings.ToLower(viper.GetString("calendar.backend"))
	cfg.CalDAV.URL = viper.GetString("caldav.url")
	cfg.CalDAV.Username = viper.GetString("caldav.username")
	cfg.CalDAV.Password = expandEnvVar(viper.GetString("caldav.password"))
	cfg.CalDAV.CalendarPath = viper.GetString("caldav.calendar_path")
	cfg.CalDAV.TaskPath = viper.GetString("caldav.task_path")

	// Email
	cfg.Email.IMAPHost = viper.GetString("email.imap_host")
	cfg.Email.IMAPPort = viper.GetInt("email.imap_port")
	cfg.Email.Username = viper.GetString("email.username")
	cfg.Email.Password = expandEnvVar(viper.GetString("email.password"))
	cfg.Email.Folder = viper.GetString("email.folder")
	cfg.Email.UseSSL = viper.GetBool("email.use_ssl")
	cfg.Email.PollInterval = viper.GetString("email.poll_interval")
	cfg.Email.RetryIdle = viper.GetString("email.retry_idle")

	// LLM Provider Abstraction
	cfg.LLM.FallbackEnabled = viper.GetBool("llm.fallback_enabled")
	cfg.LLM.RetryAttempts = viper.GetInt("llm.retry_attempts")
	cfg.LLM.RetryDelay = viper.GetString("llm.retry_delay")
	cfg.LLM.MaxTotalTimeout = viper.GetString("llm.max_total_timeout")

	if viper.IsSet("llm.providers") {
		providersRaw := viper.Get("llm.providers")
		if providersList, ok := providersRaw.([]interface{}); ok {
			for _, p := range providersList {
				if providerMap, ok := p.(map[string]interface{}); ok {
					provider := ProviderConfig{
						Name:     getStringFromMap(providerMap, "name"),
						Enabled:  getBoolFromMap(providerMap, "enabled"),
						Priority: getIntFromMap(providerMap, "priority"),
						APIKey:   expandEnvVar(getStringFromMap(providerMap, "api_key")),
						BaseURL:  getStringFromMap(providerMap, "base_url"),
						Model:    getStringFromMap(providerMap, "model"),
						Timeout:  getStringFromMap(providerMap, "timeout"),
					}
					cfg.LLM.Providers = append(cfg.LLM.Providers, provider)
				}
			}
		}
	}

	if err := validateLLMConfig(&cfg.LLM); err != nil {
		return nil, fmt.Errorf("llm config: %w", err)
	}
	if err := validateAssistantConfig(&cfg.Assistant); err != nil {
		return nil, fmt.Errorf("assistant config: %w", err)
	}

	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("http_server.port", 8080)
	viper.SetDefault("http_server.mode", "debug")
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "development")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)

	viper.SetDefault("assistant.default_timezone", "UTC")
	viper.SetDefault("assistant.usage_path", "data/usage.json")
	viper.SetDefault("assistant.audit_dir", "data/audit")
	viper.SetDefault("assistant.audit_retention_days", 30)
	viper.SetDefault("assistant.max_lists", 6)
	viper.SetDefault("assistant.process_timeout", "2m")

	viper.SetDefault("telegram.rate_limit_per_min", 20)

	viper.SetDefault("google.credentials_path", "credentials.json")
	viper.SetDefault("google.token_path", "token.json")
	viper.SetDefault("google.calendar_id", "primary")
	viper.SetDefault("google.task_list_id", "@default")

	viper.SetDefault("calendar.backend", "google")

	viper.SetDefault("email.imap_port", 993)
	viper.SetDefault("email.folder", "INBOX")
	viper.SetDefault("email.use_ssl", true)
	viper.SetDefault("email.poll_interval", "60s")
	viper.SetDefault("email.retry_idle", "24h")

	// LLM defaults
	viper.SetDefault("llm.fallback_enabled", true)
	viper.SetDefault("llm.retry_attempts", 3)
	viper.SetDefault("llm.retry_delay", "1s")
	viper.SetDefault("llm.max_total_timeout", "90s")
}

// expandEnvVar expands environment variables in the format ${VAR_NAME}
func expandEnvVar(value string) string {
	if value == "" {
		return value
	}

	if strings.HasPrefix(value, "${") && strings.HasSuffix(value, "}") {
		envVar := value[2 : len(value)-1]
		if envValue := viper.GetString(envVar); envValue != "" {
			return envValue
		}
		if envValue := viper.GetString(strings.ToLower(envVar)); envValue != "" {
			return envValue
		}
		if envValue := os.Getenv(envVar); envValue != "" {
			return envValue
		}
	}

	return value
}

// getList reads a YAML list or a comma separated env value.
func getList(key string) []string {
	raw := viper.Get(key)
	var items []string
	switch v := raw.(type) {
	case nil:
		return nil
	case string:
		items = strings.Split(v, ",")
	case []string:
		items = v
	case []interface{}:
		for _, it := range v {
			items = append(items, fmt.Sprint(it))
		}
	default:
		items = viper.GetStringSlice(key)
	}

	out := make([]string, 0, len(items))
	for _, it := range items {
		it = strings.TrimSpace(it)
		if it != "" {
			out = append(out, it)
		}
	}
	return out
}

// validateLLMConfig validates the LLM configuration
func validateLLMConfig(cfg *LLMConfig) error {
	if len(cfg.Providers) == 0 {
		return fmt.Errorf("no LLM providers configured - please add llm.providers section to config.yaml")
	}

	enabledCount := 0
	priorityMap := make(map[int]bool)

	for i, provider := range cfg.Providers {
		if provider.Name == "" {
			return fmt.Errorf("provider %d: name is required", i)
		}
		if provider.Model == "" {
			return fmt.Errorf("provider %s: model is required", provider.Name)
		}

		if provider.Enabled {
			enabledCount++

			if provider.Priority <= 0 {
				return fmt.Errorf("provider %s: priority must be positive", provider.Name)
			}
			if priorityMap[provider.Priority] {
				return fmt.Errorf("provider %s: duplicate priority %d", provider.Name, provider.Priority)
			}
			priorityMap[provider.Priority] = true
		}
	}

	if enabledCount == 0 {
		return fmt.Errorf("no enabled LLM providers")
	}

	return nil
}

func validateAssistantConfig(cfg *AssistantConfig) error {
	if cfg.MaxLists < 1 {
		return fmt.Errorf("max_lists must be at least 1, got %d", cfg.MaxLists)
	}
	if cfg.MaxLists < len(cfg.TaskPresetLists) {
		cfg.MaxLists = len(cfg.TaskPresetLists)
	}
	return nil
}

// Helper functions to safely extract values from map[string]interface{}
func getStringFromMap(m map[string]interface{}, key string) string {
	if val, ok := m[key]; ok {
		if str, ok := val.(string); ok {
			return str
		}
	}
	return ""
}

func getBoolFromMap(m map[string]interface{}, key string) bool {
	if val, ok := m[key]; ok {
		if b, ok := val.(bool); ok {
			return b
		}
	}
	return false
}

func getIntFromMap(m map[string]interface{}, key string) int {
	if val, ok := m[key]; ok {
		if i, ok := val.(int); ok {
			return i
		}
		if f, ok := val.(float64); ok {
			return int(f)
		}
	}
	return 0
}
