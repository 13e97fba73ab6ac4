package usecase

import "strings"

// categorySynonyms maps a model category to preferred targets, tried in order.
// A target is only used when it is in the allow-list.
var categorySynonyms = map[string][]string{
	"health":      {"medical"},
	"doctor":      {"medical", "health"},
	"hospital":    {"medical", "health"},
	"medical":     {"health"},
	"family":      {"personal"},
	"home":        {"personal"},
	"friends":     {"personal", "social"},
	"study":       {"work", "education"},
	"education":   {"study", "work"},
	"school":      {"study", "education"},
	"trip":        {"travel"},
	"flight":      {"travel"},
	"vacation":    {"travel"},
	"holiday":     {"travel", "personal"},
	"call":        {"meeting"},
	"interview":   {"meeting", "work"},
	"appointment": {"meeting", "personal"},
	"payment":     {"finance"},
	"bill":        {"finance"},
	"bank":        {"finance"},
	"deadline":    {"work", "reminder"},
	"groceries":   {"shopping"},
	"grocery":     {"shopping"},
}

// NormalizeCategory clamps category to a member of allowed: exact match,
// then synonyms, then substring containment either way, then allowed[0].
// allowed must be lower-cased. Without an allow-list the input is returned lower-cased.
func NormalizeCategory(category string, allowed []string) string {
	c := strings.ToLower(strings.TrimSpace(category))
	if len(allowed) == 0 {
		return c
	}

	for _, a := range allowed {
		if c == a {
			return a
		}
	}

	for _, target := range categorySynonyms[c] {
		for _, a := range allowed {
			if target == a {
				return a
			}
		}
	}

	if c != "" {
		for _, a := range allowed {
			if strings.Contains(a, c) || strings.Contains(c, a) {
				return a
			}
		}
	}

	return allowed[0]
}
