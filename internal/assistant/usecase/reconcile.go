package usecase

import (
	"context"
	"strings"

	"smart-assistant/internal/extraction"
	"smart-assistant/internal/model"
)

// reconcileTask asks the model to move a task onto a preset list when its
// category or list is outside the presets, or both are empty.
// Anything but an exact preset name leaves the task unchanged.
func (uc *implUseCase) reconcileTask(ctx context.Context, sc model.Scope, t *model.TaskItem) {
	presets := uc.extractor.TaskPresets()
	if len(presets) == 0 {
		return
	}

	category := normalizeName(t.Category)
	list := normalizeName(t.ListName)
	outside := (category != "" && !contains(presets, category)) || (list != "" && !contains(presets, list))
	if !outside && !(category == "" && list == "") {
		return
	}

	out, err := uc.extractor.MapTaskToAllowed(ctx, sc, extraction.MapTaskInput{Title: t.Title, Notes: t.Notes})
	if err != nil {
		uc.l.Warnf(ctx, "reconcileTask: remap of %q failed, keeping category=%q list=%q: %v", t.Title, t.Category, t.ListName, err)
		return
	}

	if c := normalizeName(out.Category); contains(presets, c) {
		t.Category = c
	}
	if l := normalizeName(out.ListName); contains(presets, l) {
		t.ListName = l
	}
	if t.ListName == "" && t.Category != "" {
		t.ListName = t.Category
	}
	uc.l.Debugf(ctx, "reconcileTask: %q -> category=%q list=%q", t.Title, t.Category, t.ListName)
}

func normalizeName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func contains(list []string, s string) bool {
	if s == "" {
		return false
	}
	for _, v := range list {
		if normalizeName(v) == s {
			return true
		}
	}
	return false
}
