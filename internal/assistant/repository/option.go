package repository

import "time"

// ListEventsOptions bounds an event listing.
type ListEventsOptions struct {
	From     time.Time
	To       time.Time
	Timezone string
	Limit    int
}
