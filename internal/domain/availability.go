package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/omerbhr129/meety-sub000/pkg/types"
)

// TimeWindow represents a wall-clock interval [Start, End) within a day
type TimeWindow struct {
	Start types.TimeString `json:"start"`
	End   types.TimeString `json:"end"`
}

// Validate checks 0 <= start < end <= 24:00
func (w TimeWindow) Validate() error {
	if err := w.Start.Validate(); err != nil {
		return fmt.Errorf("%w: start %v", ErrInvalidWindow, err)
	}
	if err := w.End.Validate(); err != nil {
		return fmt.Errorf("%w: end %v", ErrInvalidWindow, err)
	}
	if !w.Start.IsBefore(w.End) {
		return fmt.Errorf("%w: start %s must be before end %s", ErrInvalidWindow, w.Start, w.End)
	}
	return nil
}

// LengthMinutes returns the window length in minutes
func (w TimeWindow) LengthMinutes() int {
	return w.End.Minutes() - w.Start.Minutes()
}

// Overlaps returns true if two windows share at least one minute (touching windows do not overlap)
func (w TimeWindow) Overlaps(other TimeWindow) bool {
	return w.Start.IsBefore(other.End) && other.Start.IsBefore(w.End)
}

// WeekdayAvailability is the availability of a single weekday.
// Windows are ignored when Enabled is false and may be stale.
type WeekdayAvailability struct {
	Enabled bool         `json:"enabled"`
	Windows []TimeWindow `json:"windows"`
}

// IsBookable returns true if the weekday produces slots at all
func (d WeekdayAvailability) IsBookable() bool {
	return d.Enabled && len(d.Windows) > 0
}

// Validate checks windows of an enabled weekday: each well-formed, none overlapping
func (d WeekdayAvailability) Validate() error {
	if !d.Enabled {
		return nil
	}

	if len(d.Windows) > MaxWindowsPerDay {
		return fmt.Errorf("%w: %d > %d", ErrTooManyWindows, len(d.Windows), MaxWindowsPerDay)
	}

	for _, w := range d.Windows {
		if err := w.Validate(); err != nil {
			return err
		}
	}

	sorted := make([]TimeWindow, len(d.Windows))
	copy(sorted, d.Windows)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	for i := 1; i < len(sorted); i++ {
		if sorted[i-1].Overlaps(sorted[i]) {
			return fmt.Errorf("%w: %s-%s and %s-%s", ErrOverlappingWindows,
				sorted[i-1].Start, sorted[i-1].End, sorted[i].Start, sorted[i].End)
		}
	}

	return nil
}

// WeeklyAvailability is the recurring weekly template, indexed by time.Weekday (Sunday = 0)
type WeeklyAvailability [7]WeekdayAvailability

// ForDate returns the availability of the weekday the date falls on
func (a WeeklyAvailability) ForDate(date time.Time) WeekdayAvailability {
	return a[date.Weekday()]
}

// Validate validates every weekday
func (a WeeklyAvailability) Validate() error {
	for day, availability := range a {
		if err := availability.Validate(); err != nil {
			return fmt.Errorf("%s: %w", weekdayKey(time.Weekday(day)), err)
		}
	}
	return nil
}

// HasBookableDays returns true if at least one weekday produces slots
func (a WeeklyAvailability) HasBookableDays() bool {
	for _, d := range a {
		if d.IsBookable() {
			return true
		}
	}
	return false
}

// MarshalJSON encodes the template as an object keyed by weekday name ("monday", ...)
func (a WeeklyAvailability) MarshalJSON() ([]byte, error) {
	out := make(map[string]WeekdayAvailability, len(a))
	for day, availability := range a {
		if availability.Windows == nil {
			availability.Windows = []TimeWindow{}
		}
		out[weekdayKey(time.Weekday(day))] = availability
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes an object keyed by weekday name; missing weekdays are disabled
func (a *WeeklyAvailability) UnmarshalJSON(data []byte) error {
	var in map[string]WeekdayAvailability
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	var result WeeklyAvailability
	for key, availability := range in {
		day, ok := ParseWeekday(key)
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownWeekday, key)
		}
		result[day] = availability
	}

	*a = result
	return nil
}

// Value stores the template in a JSONB column.
// lib/pq sends []byte as bytea, so the document is passed as text.
func (a WeeklyAvailability) Value() (driver.Value, error) {
	data, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan reads the template from a JSONB column
func (a *WeeklyAvailability) Scan(src interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, a)
	case string:
		return json.Unmarshal([]byte(v), a)
	case nil:
		*a = WeeklyAvailability{}
		return nil
	default:
		return fmt.Errorf("cannot scan %T into WeeklyAvailability", src)
	}
}

// ParseWeekday parses a lowercase English weekday name
func ParseWeekday(s string) (time.Weekday, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for day := time.Sunday; day <= time.Saturday; day++ {
		if weekdayKey(day) == s {
			return day, true
		}
	}
	return 0, false
}

func weekdayKey(day time.Weekday) string {
	return strings.ToLower(day.String())
}
