package email

import (
	"strings"

	"smart-assistant/internal/model"
)

func formatNotification(subject string, result model.AssistantResult) string {
	var b strings.Builder
	b.WriteString("📧 ")
	if subject == "" {
		subject = "(no subject)"
	}
	b.WriteString(subject)
	b.WriteString("\n")
	b.WriteString(result.Message)
	for _, ev := range result.Events {
		b.WriteString("\n📅 ")
		b.WriteString(ev.HumanReadable())
	}
	for _, t := range result.Tasks {
		b.WriteString("\n📝 ")
		b.WriteString(t.HumanReadable())
	}
	return b.String()
}
