package datemath

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var inDurationRe = regexp.MustCompile(`^in (\d+) (day|days|week|weeks|month|months)$`)

var weekdays = map[string]time.Weekday{
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sunday":    time.Sunday,
}

// relative day offsets in the other language users write in
var dayWords = map[string]int{
	"今天": 0,
	"明天": 1,
	"后天": 2,
	"昨天": -1,
}

// Parser converts date strings to absolute time.Time values in one location.
type Parser struct {
	location *time.Location
}

// NewParser creates a new date parser for the given IANA timezone string.
// e.g. "Asia/Shanghai"
func NewParser(timezone string) (*Parser, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return &Parser{location: loc}, nil
}

// MustParser is NewParser with UTC as the fallback for unknown zones.
func MustParser(timezone string) *Parser {
	return &Parser{location: LoadLocation(timezone)}
}

// LoadLocation resolves an IANA zone name, falling back to UTC.
func LoadLocation(timezone string) *time.Location {
	if strings.TrimSpace(timezone) == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Location returns the parser's timezone.
func (p *Parser) Location() *time.Location {
	return p.location
}

// Parse converts a relative date string to an absolute time.Time.
// The baseTime is used as the reference point (usually time.Now()).
func (p *Parser) Parse(relative string, baseTime time.Time) (time.Time, error) {
	relative = strings.ToLower(strings.TrimSpace(relative))

	switch relative {
	case "today", "tonight":
		return p.startOfDay(baseTime), nil
	case "tomorrow":
		return p.startOfDay(baseTime.AddDate(0, 0, 1)), nil
	case "yesterday":
		return p.startOfDay(baseTime.AddDate(0, 0, -1)), nil
	}

	if offset, ok := dayWords[relative]; ok {
		return p.startOfDay(baseTime.AddDate(0, 0, offset)), nil
	}

	if strings.HasPrefix(relative, "in ") {
		return p.parseInDuration(relative, baseTime)
	}

	if strings.HasPrefix(relative, "next ") {
		return p.parseNextWeekday(relative, baseTime)
	}

	return baseTime, fmt.Errorf("%w: %q", ErrUnrecognized, relative)
}

// ParseAbsolute parses RFC 3339 values, offset-less date-times (read in the
// parser's location) and bare dates.
func (p *Parser) ParseAbsolute(value string) (ParseResult, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return ParseResult{}, fmt.Errorf("%w: empty value", ErrUnrecognized)
	}

	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return ParseResult{AbsoluteTime: t}, nil
	}

	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, value, p.location); err == nil {
			return ParseResult{AbsoluteTime: t}, nil
		}
	}

	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, value, p.location); err == nil {
			return ParseResult{AbsoluteTime: t, IsAllDay: true}, nil
		}
	}

	return ParseResult{}, fmt.Errorf("%w: %q", ErrUnrecognized, value)
}

// ParseDue is the best-effort reading used for task due dates: an absolute
// value first, a relative expression second. It returns nil when neither works.
func (p *Parser) ParseDue(value string, baseTime time.Time) *time.Time {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	if res, err := p.ParseAbsolute(value); err == nil {
		t := res.AbsoluteTime
		return &t
	}
	if t, err := p.Parse(value, baseTime); err == nil {
		return &t
	}
	return nil
}

// parseInDuration handles patterns like "in 3 days", "in 2 weeks", "in 1 month".
func (p *Parser) parseInDuration(relative string, baseTime time.Time) (time.Time, error) {
	matches := inDurationRe.FindStringSubmatch(relative)
	if len(matches) != 3 {
		return baseTime, fmt.Errorf("invalid duration format: %q", relative)
	}

	amount, _ := strconv.Atoi(matches[1])
	unit := matches[2]

	switch {
	case strings.HasPrefix(unit, "day"):
		return p.startOfDay(baseTime.AddDate(0, 0, amount)), nil
	case strings.HasPrefix(unit, "week"):
		return p.startOfDay(baseTime.AddDate(0, 0, amount*7)), nil
	case strings.HasPrefix(unit, "month"):
		return p.startOfDay(baseTime.AddDate(0, amount, 0)), nil
	}

	return baseTime, fmt.Errorf("unknown time unit: %q", unit)
}

// parseNextWeekday handles patterns like "next monday", "next friday".
func (p *Parser) parseNextWeekday(relative string, baseTime time.Time) (time.Time, error) {
	dayName := strings.TrimPrefix(relative, "next ")
	targetWeekday, ok := weekdays[dayName]
	if !ok {
		return baseTime, fmt.Errorf("unknown weekday: %q", dayName)
	}

	daysUntil := int(targetWeekday - baseTime.In(p.location).Weekday())
	if daysUntil <= 0 {
		daysUntil += 7
	}

	return p.startOfDay(baseTime.AddDate(0, 0, daysUntil)), nil
}

// startOfDay returns midnight at the start of the given day in the parser's timezone.
func (p *Parser) startOfDay(t time.Time) time.Time {
	t = t.In(p.location)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, p.location)
}

// EndOfDay returns 23:59:59 at the end of the given start-of-day time.
func (p *Parser) EndOfDay(startOfDay time.Time) time.Time {
	return startOfDay.Add(23*time.Hour + 59*time.Minute + 59*time.Second)
}
