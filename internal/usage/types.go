package usage

// Tokens is the counter set kept per model.
type Tokens struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

func (t Tokens) add(o Tokens) Tokens {
	total := o.TotalTokens
	if total == 0 {
		total = o.PromptTokens + o.CompletionTokens
	}
	return Tokens{
		PromptTokens:     t.PromptTokens + o.PromptTokens,
		CompletionTokens: t.CompletionTokens + o.CompletionTokens,
		TotalTokens:      t.TotalTokens + total,
	}
}
