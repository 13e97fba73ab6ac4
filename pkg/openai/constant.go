package openai

import "time"

const (
	// DefaultModel is the default chat model
	DefaultModel = "gpt-4o-mini"

	// DefaultBaseURL is the default OpenAI API endpoint
	DefaultBaseURL = "https://api.openai.com/v1"

	// QwenBaseURL is DashScope's OpenAI-compatible endpoint
	QwenBaseURL = "https://dashscope-intl.aliyuncs.com/compatible-mode/v1"

	// DeepSeekBaseURL is DeepSeek's OpenAI-compatible endpoint
	DeepSeekBaseURL = "https://api.deepseek.com/v1"

	// DefaultTimeout is the default HTTP client timeout
	DefaultTimeout = 60 * time.Second
)

// BaseURLFor returns the known endpoint for an OpenAI-compatible vendor.
func BaseURLFor(vendor string) string {
	switch vendor {
	case "qwen", "alibaba":
		return QwenBaseURL
	case "deepseek":
		return DeepSeekBaseURL
	default:
		return DefaultBaseURL
	}
}
