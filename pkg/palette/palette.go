// Package palette maps free-form color hints onto the eleven calendar event color ids.
package palette

import (
	"strconv"
	"strings"
	"unicode"
)

// MinID and MaxID bound the valid color id range.
const (
	MinID = 1
	MaxID = 11
)

var nameToID = map[string]string{
	"lavender":  "1",
	"sage":      "2",
	"grape":     "3",
	"flamingo":  "4",
	"banana":    "5",
	"tangerine": "6",
	"peacock":   "7",
	"graphite":  "8",
	"blueberry": "9",
	"basil":     "10",
	"tomato":    "11",

	"purple":  "3",
	"violet":  "3",
	"pink":    "4",
	"rose":    "4",
	"yellow":  "5",
	"orange":  "6",
	"teal":    "7",
	"cyan":    "7",
	"gray":    "8",
	"grey":    "8",
	"black":   "8",
	"blue":    "9",
	"navy":    "9",
	"green":   "10",
	"emerald": "10",
	"olive":   "10",
	"red":     "11",
	"crimson": "11",
	"scarlet": "11",

	"葡萄": "3",
	"紫色": "3",
	"紫":  "3",
	"粉色": "4",
	"粉":  "4",
	"玫红": "4",
	"黄色": "5",
	"黄":  "5",
	"橙色": "6",
	"橘色": "6",
	"橘":  "6",
	"橙":  "6",
	"青色": "7",
	"青":  "7",
	"蓝色": "9",
	"蓝":  "9",
	"绿色": "10",
	"绿":  "10",
	"灰色": "8",
	"灰":  "8",
	"黑色": "8",
	"黑":  "8",
	"红色": "11",
	"红":  "11",
}

// colorSuffix is the "color" character that trails many Chinese color words.
const colorSuffix = "色"

// DefaultCategoryColors is the built-in category to color id table.
// Entries configured by the operator override these.
var DefaultCategoryColors = map[string]string{
	"work":      "7",
	"meeting":   "7",
	"call":      "7",
	"personal":  "5",
	"family":    "2",
	"travel":    "9",
	"trip":      "9",
	"study":     "3",
	"education": "3",
	"finance":   "8",
	"payment":   "8",
	"health":    "10",
	"medical":   "10",
	"deadline":  "11",
	"reminder":  "1",
}

// Valid reports whether id is one of "1".."11".
func Valid(id string) bool {
	n, err := strconv.Atoi(id)
	if err != nil || strconv.Itoa(n) != id {
		return false
	}
	return n >= MinID && n <= MaxID
}

// Normalize turns a hint such as "7", "#11", "color_07", "Tomato" or "红色"
// into a valid color id. It returns "" when the hint is not recognized.
func Normalize(hint string) string {
	text := strings.TrimSpace(hint)
	if text == "" {
		return ""
	}

	if Valid(text) {
		return text
	}

	if digits := extractDigits(text); digits != "" {
		if n, err := strconv.Atoi(digits); err == nil {
			if id := strconv.Itoa(n); Valid(id) {
				return id
			}
		}
	}

	lowered := strings.ToLower(text)
	if id, ok := nameToID[lowered]; ok {
		return id
	}

	if base, ok := strings.CutSuffix(lowered, colorSuffix); ok {
		if id, ok := nameToID[base]; ok {
			return id
		}
	}

	return ""
}

func extractDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		} else if unicode.IsDigit(r) {
			// Non-ASCII digits are not color ids.
			return ""
		}
	}
	return b.String()
}

// MergeCategoryColors returns DefaultCategoryColors overlaid with overrides.
// Keys are lower-cased and values are normalized; entries whose value does not
// normalize are dropped.
func MergeCategoryColors(overrides map[string]string) map[string]string {
	merged := make(map[string]string, len(DefaultCategoryColors)+len(overrides))
	for k, v := range DefaultCategoryColors {
		merged[k] = v
	}
	for k, v := range overrides {
		key := strings.ToLower(strings.TrimSpace(k))
		if key == "" {
			continue
		}
		if id := Normalize(v); id != "" {
			merged[key] = id
		}
	}
	return merged
}
