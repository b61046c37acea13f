package calendar

import (
	"fmt"
	"sort"
	"time"

	"github.com/arborview-health/practice-manager/backend/internal/domain"
)

// LocalInterval is a half-open wall-clock interval within one day, in
// minutes from midnight.
type LocalInterval struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// AvailableIntervals reports, for each calendar day of the window projected
// into loc, which local intervals the staff member's weekly template marks
// available. Templates are weekday-specific, so the per-weekday lookup is
// built once and reused for every matching day.
//
// The resolver assumes validated input: overlapping or inverted windows are
// rejected when the template is written, not here. Its output only shades
// the calendar background; it does not gate appointment creation.
func AvailableIntervals(template *domain.AvailabilityTemplate, windowStart, windowEnd time.Time, loc *time.Location) (map[CivilDate][]LocalInterval, error) {
	byWeekday := make(map[int][]LocalInterval, 7)
	if template != nil {
		for _, w := range template.Windows {
			if !w.IsActive {
				continue
			}
			start, err := parseLocalTime(w.StartTime)
			if err != nil {
				return nil, fmt.Errorf("availability window %d: %w", w.ID, err)
			}
			end, err := parseLocalTime(w.EndTime)
			if err != nil {
				return nil, fmt.Errorf("availability window %d: %w", w.ID, err)
			}
			byWeekday[w.DayOfWeek] = append(byWeekday[w.DayOfWeek], LocalInterval{Start: start, End: end})
		}
		for _, intervals := range byWeekday {
			sort.Slice(intervals, func(i, j int) bool { return intervals[i].Start < intervals[j].Start })
		}
	}

	days := make(map[CivilDate][]LocalInterval)
	last := ToCivil(windowEnd, loc).Date()
	for day := ToCivil(windowStart, loc).Date(); !day.After(last); day = day.Next() {
		if intervals, ok := byWeekday[day.Weekday()]; ok {
			days[day] = intervals
		}
	}

	return days, nil
}

// parseLocalTime parses a "15:04" wall-clock string into minutes from
// midnight.
func parseLocalTime(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("bad local time %q: %v", s, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}
