package caldav

import (
	"net/http"
	"time"
)

// Config locates one calendar collection on a CalDAV server.
type Config struct {
	// URL is the server root, e.g. https://dav.example.com.
	URL string
	// CalendarPath is the collection path below URL, e.g. /calendars/alice/home/.
	CalendarPath string
	// TaskPath is the VTODO collection path. Empty means CalendarPath.
	TaskPath string
	Username string
	Password string
	// HTTPClient defaults to a client with a 30s timeout.
	HTTPClient *http.Client
	// Now defaults to time.Now; used for DTSTAMP.
	Now func() time.Time
}

// Event is the subset of a VEVENT the assistant writes and reads.
type Event struct {
	UID         string
	Summary     string
	Description string
	Location    string
	Start       time.Time
	End         time.Time
	AllDay      bool
	Attendees   []string
	Category    string
	// ColorID is a calendar color id "1".."11"; written as an RFC 7986 COLOR name.
	ColorID string
	// Href is the resource URL, filled in by the client.
	Href string
}

// Todo is the subset of a VTODO the assistant writes.
type Todo struct {
	UID         string
	Summary     string
	Description string
	// Due is written as a date; the time of day is dropped.
	Due      *time.Time
	Category string
	Href     string
}
