package palette_test

import (
	"testing"

	"smart-assistant/pkg/palette"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		hint string
		want string
	}{
		{name: "valid id", hint: "7", want: "7"},
		{name: "padded id", hint: "  11 ", want: "11"},
		{name: "hash prefix", hint: "#11", want: "11"},
		{name: "leading zero", hint: "color_07", want: "7"},
		{name: "out of range digits", hint: "12", want: ""},
		{name: "zero", hint: "0", want: ""},
		{name: "official name", hint: "Tomato", want: "11"},
		{name: "alias", hint: "grey", want: "8"},
		{name: "chinese", hint: "红色", want: "11"},
		{name: "chinese short", hint: "蓝", want: "9"},
		{name: "chinese suffix stripped", hint: "葡萄色", want: "3"},
		{name: "unknown", hint: "chartreuse", want: ""},
		{name: "empty", hint: "", want: ""},
		{name: "whitespace", hint: "   ", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := palette.Normalize(tt.hint); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.hint, got, tt.want)
			}
		})
	}
}

func TestNormalize_AlwaysValidOrEmpty(t *testing.T) {
	hints := []string{"1", "11", "99", "blue", "abc123", "#5", "x", "紫", "灰色", "-3", "3.5"}
	for _, h := range hints {
		got := palette.Normalize(h)
		if got != "" && !palette.Valid(got) {
			t.Errorf("Normalize(%q) returned invalid id %q", h, got)
		}
	}
}

func TestValid(t *testing.T) {
	for i, id := range []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "10", "11"} {
		if !palette.Valid(id) {
			t.Errorf("case %d: expected %q to be valid", i, id)
		}
	}
	for _, id := range []string{"", "0", "12", "07", "a", " 1"} {
		if palette.Valid(id) {
			t.Errorf("expected %q to be invalid", id)
		}
	}
}

func TestMergeCategoryColors(t *testing.T) {
	merged := palette.MergeCategoryColors(map[string]string{
		"Work":     "tomato",
		"shopping": "6",
		"broken":   "not-a-color",
	})

	if merged["work"] != "11" {
		t.Errorf("expected override work=11, got %q", merged["work"])
	}
	if merged["shopping"] != "6" {
		t.Errorf("expected shopping=6, got %q", merged["shopping"])
	}
	if _, ok := merged["broken"]; ok {
		t.Errorf("expected unparseable override to be dropped")
	}
	if merged["medical"] != "10" {
		t.Errorf("expected default medical=10, got %q", merged["medical"])
	}
	if palette.DefaultCategoryColors["work"] != "7" {
		t.Errorf("defaults must not be mutated")
	}
}
