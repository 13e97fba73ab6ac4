package telegram

import (
	"fmt"
	"strings"

	"smart-assistant/internal/assistant"
	"smart-assistant/internal/model"
)

const (
	msgStart = "👋 Welcome! Send me a message, a forwarded e-mail or a photo of a poster and I will add the events to your calendar and the to-dos to your task lists.\n\nType /help for examples."
	msgHelp  = "How to use:\n\n" +
		"• Write naturally: \"Dentist next Tuesday 3pm, buy milk tomorrow\"\n" +
		"• Send a photo of a poster or a screenshot, optionally with a caption\n\n" +
		"Commands:\n" +
		"/today - today's calendar\n" +
		"/usage - model token usage\n" +
		"/help - this message"
	msgProcessing     = "⏳ Processing..."
	msgUnsupported    = "Please send text or a photo."
	msgUnknownCommand = "Unknown command %s. Type /help for the list of commands."
	msgNotAllowed     = "Sorry, you are not allowed to use this bot."
	msgRateLimited    = "Too many requests, please slow down and try again in a minute."
	msgInternalError  = "Something went wrong while handling your request. Please try again."
	msgDownloadFailed = "Could not download the image from Telegram. Please try again."
	msgNoCalendar     = "No calendar is configured."
	msgTodayFailed    = "Could not load today's calendar. Please try again later."
	msgNoUsage        = "No model usage recorded yet."
)

// formatResult renders an AssistantResult as a chat reply with one line per item.
func formatResult(result model.AssistantResult) string {
	if !result.Success {
		return "⚠️ " + result.Message
	}

	var b strings.Builder
	b.WriteString("✅ ")
	b.WriteString(result.Message)

	for i, ev := range result.Events {
		b.WriteString("\n\n📅 ")
		b.WriteString(ev.HumanReadable())
		if i < len(result.CalendarLinks) && result.CalendarLinks[i] != "" {
			b.WriteString("\n")
			b.WriteString(result.CalendarLinks[i])
		}
	}
	for i, t := range result.Tasks {
		b.WriteString("\n\n📝 ")
		b.WriteString(t.HumanReadable())
		if i < len(result.TaskLinks) && result.TaskLinks[i] != "" {
			b.WriteString("\n")
			b.WriteString(result.TaskLinks[i])
		}
	}
	return b.String()
}

func formatToday(out assistant.TodayOutput) string {
	if len(out.Events) == 0 {
		return fmt.Sprintf("📅 Nothing on the calendar for %s.", out.Date)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "📅 %s (%d)", out.Date, len(out.Events))
	for _, ev := range out.Events {
		b.WriteString("\n• ")
		b.WriteString(ev.HumanReadable())
	}
	return b.String()
}

func formatUsage(lines []string) string {
	if len(lines) == 0 {
		return msgNoUsage
	}
	return "📊 Token usage\n" + strings.Join(lines, "\n")
}
