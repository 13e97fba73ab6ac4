package usecase

import (
	"context"

	"smart-assistant/internal/model"
	"smart-assistant/pkg/palette"
)

// applyColor fills in ev.ColorID: explicit id, then the category table, then the default color.
func (uc *implUseCase) applyColor(ctx context.Context, ev *model.CalendarEvent) {
	if palette.Valid(ev.ColorID) {
		return
	}
	ev.ColorID = ""

	category := normalizeName(ev.Category)
	if id, ok := uc.colors[category]; ok && category != "" {
		ev.ColorID = id
		uc.l.Debugf(ctx, "applyColor: color %s for category %q", id, category)
		return
	}
	if uc.defaultColor != "" {
		ev.ColorID = uc.defaultColor
		uc.l.Debugf(ctx, "applyColor: default color %s for category %q", uc.defaultColor, category)
		return
	}
	uc.l.Warnf(ctx, "applyColor: no color for category %q and no default color configured", category)
}
