package usecase

import (
	"encoding/json"
	"strings"

	"smart-assistant/internal/extraction"
)

const fence = "```"

// ExtractJSON recovers a JSON value from model output that may be wrapped in
// code fences or surrounded by prose.
func ExtractJSON(raw string) (any, error) {
	normalized := stripCodeFences(raw)

	for _, candidate := range []string{normalized, strings.TrimSpace(raw)} {
		if candidate == "" {
			continue
		}
		if v, ok := decode(candidate); ok {
			return v, nil
		}
	}

	for _, pair := range [][2]string{{"{", "}"}, {"[", "]"}} {
		start := strings.Index(normalized, pair[0])
		end := strings.LastIndex(normalized, pair[1])
		if start == -1 || end == -1 || end <= start {
			continue
		}
		if v, ok := decode(normalized[start : end+1]); ok {
			return v, nil
		}
	}

	return nil, extraction.NewError(extraction.ErrNoJSON, raw, nil)
}

func decode(s string) (any, bool) {
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return nil, false
	}
	return v, true
}

// stripCodeFences returns the body of a leading fenced block, without a json tag line.
func stripCodeFences(text string) string {
	stripped := strings.TrimSpace(text)
	if !strings.HasPrefix(stripped, fence) {
		return stripped
	}

	parts := strings.Split(stripped, fence)
	if len(parts) < 3 {
		return stripped
	}

	candidate := strings.TrimLeft(parts[1], " \t\r\n")
	if strings.HasPrefix(strings.ToLower(candidate), "json") {
		if idx := strings.Index(candidate, "\n"); idx >= 0 {
			candidate = candidate[idx+1:]
		} else {
			candidate = ""
		}
	}
	return strings.TrimSpace(candidate)
}
