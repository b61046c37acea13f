package utils

import (
	"fmt"
	"time"

	"github.com/arborview-health/practice-manager/backend/internal/domain"
)

// ValidateAvailabilityWindows enforces the template invariants at write
// time: parseable "15:04" bounds, start before end, and no overlap between
// windows that share a weekday. The read path assumes these hold.
func ValidateAvailabilityWindows(windows []domain.AvailabilityWindow) error {
	type span struct {
		start, end int
		index      int
	}
	byDay := make(map[int][]span)

	for i, w := range windows {
		if w.DayOfWeek < 0 || w.DayOfWeek > 6 {
			return fmt.Errorf("window %d: day of week %d is out of range", i+1, w.DayOfWeek)
		}
		start, err := parseMinutes(w.StartTime)
		if err != nil {
			return fmt.Errorf("window %d: bad start time %q", i+1, w.StartTime)
		}
		end, err := parseMinutes(w.EndTime)
		if err != nil {
			return fmt.Errorf("window %d: bad end time %q", i+1, w.EndTime)
		}
		if start >= end {
			return fmt.Errorf("window %d: start time must be before end time", i+1)
		}
		byDay[w.DayOfWeek] = append(byDay[w.DayOfWeek], span{start: start, end: end, index: i + 1})
	}

	for _, spans := range byDay {
		for i := 0; i < len(spans); i++ {
			for j := i + 1; j < len(spans); j++ {
				if spans[i].start < spans[j].end && spans[j].start < spans[i].end {
					return fmt.Errorf("windows %d and %d overlap on the same day", spans[i].index, spans[j].index)
				}
			}
		}
	}

	return nil
}

// ValidateAppointmentTimes checks the interval of an appointment or manual
// block before it is written.
func ValidateAppointmentTimes(start, end time.Time) error {
	if !end.After(start) {
		return fmt.Errorf("end time must be after start time")
	}
	return nil
}

func parseMinutes(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}
