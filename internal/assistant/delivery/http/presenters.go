package http

import (
	"strings"
	"time"

	"smart-assistant/internal/assistant"
	"smart-assistant/internal/model"
	"smart-assistant/pkg/response"
)

const (
	defaultUserID = "api"
)

// --- Request DTOs ---

type textReq struct {
	Text     string `json:"text"     binding:"required,max=8000"`
	UserID   string `json:"user_id"  binding:"max=128"`
	Username string `json:"username" binding:"max=128"`
}

func (r textReq) validate() error {
	if strings.TrimSpace(r.Text) == "" {
		return errEmptyText
	}
	return nil
}

func (r textReq) toInput() assistant.ProcessTextInput {
	return assistant.ProcessTextInput{Text: r.Text}
}

func (r textReq) scope() model.Scope {
	return newScope(r.UserID, r.Username)
}

// ---

type todayReq struct {
	UserID string `form:"user_id"`
}

func (r todayReq) scope() model.Scope {
	return newScope(r.UserID, "")
}

func newScope(userID, username string) model.Scope {
	if strings.TrimSpace(userID) == "" {
		userID = defaultUserID
	}
	return model.NewScope(model.SourceHTTP, userID, username)
}

// --- Response DTOs ---

type eventResp struct {
	Title       string   `json:"title"`
	Start       string   `json:"start"`
	End         string   `json:"end"`
	Timezone    string   `json:"timezone"`
	AllDay      bool     `json:"all_day"`
	Description string   `json:"description,omitempty"`
	Location    string   `json:"location,omitempty"`
	Attendees   []string `json:"attendees,omitempty"`
	Category    string   `json:"category,omitempty"`
	ColorID     string   `json:"color_id,omitempty"`
	Link        string   `json:"link,omitempty"`
}

type taskResp struct {
	Title    string         `json:"title"`
	Due      *response.Date `json:"due,omitempty"`
	Notes    string         `json:"notes,omitempty"`
	Category string         `json:"category,omitempty"`
	ListName string         `json:"list_name,omitempty"`
	Link     string         `json:"link,omitempty"`
}

type resultResp struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Events  []eventResp `json:"events"`
	Tasks   []taskResp  `json:"tasks"`
}

type parseResp struct {
	Events []eventResp `json:"events"`
	Tasks  []taskResp  `json:"tasks"`
}

type todayResp struct {
	Date   string      `json:"date"`
	Events []eventResp `json:"events"`
}

func (h *handler) newResultResp(r model.AssistantResult) resultResp {
	return resultResp{
		Success: r.Success,
		Message: r.Message,
		Events:  toEventResps(r.Events, r.CalendarLinks),
		Tasks:   toTaskResps(r.Tasks, r.TaskLinks),
	}
}

func (h *handler) newParseResp(items model.ParsedItems) parseResp {
	return parseResp{
		Events: toEventResps(items.Events, nil),
		Tasks:  toTaskResps(items.Tasks, nil),
	}
}

func (h *handler) newTodayResp(out assistant.TodayOutput) todayResp {
	return todayResp{
		Date:   out.Date,
		Events: toEventResps(out.Events, nil),
	}
}

func toEventResps(events []model.CalendarEvent, links []string) []eventResp {
	out := make([]eventResp, 0, len(events))
	for i, ev := range events {
		loc := ev.Loc()
		resp := eventResp{
			Title:       ev.Title,
			Start:       ev.Start.In(loc).Format(time.RFC3339),
			End:         ev.End.In(loc).Format(time.RFC3339),
			Timezone:    loc.String(),
			AllDay:      ev.AllDay,
			Description: ev.Description,
			Location:    ev.Location,
			Attendees:   ev.Attendees,
			Category:    ev.Category,
			ColorID:     ev.ColorID,
		}
		if i < len(links) {
			resp.Link = links[i]
		}
		out = append(out, resp)
	}
	return out
}

func toTaskResps(tasks []model.TaskItem, links []string) []taskResp {
	out := make([]taskResp, 0, len(tasks))
	for i, t := range tasks {
		resp := taskResp{
			Title:    t.Title,
			Notes:    t.Notes,
			Category: t.Category,
			ListName: t.ListName,
		}
		if t.Due != nil {
			due := response.Date(t.Due.In(model.CalendarEvent{Timezone: t.Timezone}.Loc()))
			resp.Due = &due
		}
		if i < len(links) {
			resp.Link = links[i]
		}
		out = append(out, resp)
	}
	return out
}
