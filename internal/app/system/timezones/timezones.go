// internal/app/system/timezones/timezones.go

// Package timezones resolves the school's wall clock. Dates stored in the
// database are UTC-midnight days, but "today" and "this week" are decided in
// the school's own zone.
package timezones

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"
)

// Default is the zone used when none is configured.
const Default = "Asia/Jakarta"

var aliases = map[string]string{
	"wib":  "Asia/Jakarta",
	"wita": "Asia/Makassar",
	"wit":  "Asia/Jayapura",
}

// Load resolves an IANA name or one of the WIB/WITA/WIT abbreviations.
// An empty name loads Default.
func Load(name string) (*time.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = Default
	}
	if id, ok := aliases[strings.ToLower(name)]; ok {
		name = id
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("timezones: %q: %w", name, err)
	}
	return loc, nil
}

// Clock reports the current school day.
type Clock struct {
	Loc *time.Location
	Now func() time.Time
}

// NewClock returns a Clock in loc using the real time.
func NewClock(loc *time.Location) Clock {
	if loc == nil {
		loc = time.UTC
	}
	return Clock{Loc: loc, Now: time.Now}
}

// Today returns the school's current date as a UTC-midnight value.
func (c Clock) Today() time.Time {
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	loc := c.Loc
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := now().In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
