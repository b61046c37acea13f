package calendar

import (
	"fmt"
	"sort"
	"time"

	"github.com/arborview-health/practice-manager/backend/internal/domain"
)

const defaultMaxOccurrencesPerSeries = 1000

// Occurrence is one concrete appearance of an appointment inside a query
// window: either a standalone appointment row or an instance derived from a
// recurring series. Derived occurrences are recomputed on every fetch and
// never persisted. All instants are UTC.
type Occurrence struct {
	ID            string                   `json:"id"`
	AppointmentID int64                    `json:"appointmentID,omitempty"` // 0 when derived without a row
	SeriesID      int64                    `json:"seriesID,omitempty"`      // 0 for standalone appointments
	StaffID       int64                    `json:"staffID"`
	ClientName    string                   `json:"clientName"`
	Start         time.Time                `json:"start"`
	End           time.Time                `json:"end"`
	Status        domain.AppointmentStatus `json:"status"`
}

// Expander materializes recurring series into occurrences. It is stateless
// and safe for concurrent use; identical inputs always produce identical
// output, so results may be memoized by the caller.
type Expander struct {
	// MaxOccurrences caps generation for a single series inside one window,
	// guarding against pathological sub-day frequencies. Zero means the
	// default cap.
	MaxOccurrences int
}

// Expand generates the occurrences of one series that intersect
// [windowStart, windowEnd), applying per-occurrence exceptions.
//
// Exceptions are keyed by the original start the rule computed for the
// occurrence. A cancelled exception drops the slot. A rescheduled exception
// substitutes the replacement appointment's own instants; the series
// duration no longer applies to it. replacements maps appointment id to the
// replacement rows referenced by rescheduled exceptions.
//
// An inactive series yields nothing: occurrences that were materialized into
// real rows before deactivation reach the calendar as standalone
// appointments, not through expansion.
func (e *Expander) Expand(
	series *domain.RecurringSeries,
	exceptions []*domain.SeriesException,
	replacements map[int64]*domain.Appointment,
	windowStart, windowEnd time.Time,
) ([]Occurrence, error) {
	if !series.IsActive {
		return nil, nil
	}

	loc, err := LoadTimezone(series.Timezone)
	if err != nil {
		return nil, fmt.Errorf("series %d: %w", series.ID, err)
	}

	rule, err := compileRule(series, loc)
	if err != nil {
		return nil, fmt.Errorf("series %d: %w", series.ID, err)
	}

	duration := time.Duration(series.DurationMinutes) * time.Minute

	// Widen the left edge by one duration so an occurrence that starts
	// before the window but overlaps into it is still generated.
	genStart := windowStart.Add(-duration).In(loc)
	genEnd := windowEnd.In(loc)

	starts := rule.Between(genStart, genEnd, true)

	limit := e.MaxOccurrences
	if limit <= 0 {
		limit = defaultMaxOccurrencesPerSeries
	}
	if len(starts) > limit {
		starts = starts[:limit]
	}

	excByStart := make(map[int64]*domain.SeriesException, len(exceptions))
	for _, exc := range exceptions {
		excByStart[exc.OriginalStart.Unix()] = exc
	}

	occurrences := make([]Occurrence, 0, len(starts))
	for _, localStart := range starts {
		start := localStart.UTC()
		end := start.Add(duration)

		if exc, ok := excByStart[start.Unix()]; ok {
			switch exc.ChangeType {
			case domain.ExceptionCancelled:
				continue
			case domain.ExceptionRescheduled:
				if exc.ReplacementAppointmentID == nil {
					continue
				}
				repl, ok := replacements[*exc.ReplacementAppointmentID]
				if !ok || repl.Status == domain.AppointmentCancelled {
					continue
				}
				if !intersects(repl.StartTime, repl.EndTime, windowStart, windowEnd) {
					continue
				}
				occurrences = append(occurrences, occurrenceFromAppointment(repl))
				continue
			}
		}

		if !intersects(start, end, windowStart, windowEnd) {
			continue
		}

		occurrences = append(occurrences, Occurrence{
			ID:         fmt.Sprintf("series-%d-%d", series.ID, start.Unix()),
			SeriesID:   series.ID,
			StaffID:    series.StaffID,
			ClientName: series.ClientName,
			Start:      start,
			End:        end,
			Status:     domain.AppointmentScheduled,
		})
	}

	sortOccurrences(occurrences)
	return occurrences, nil
}

// MergeStandalone folds standalone appointment rows into a set of expanded
// occurrences. Cancelled rows and rows already present as rescheduled
// replacements are skipped; the result is ordered by start instant with a
// stable id tie-break.
func MergeStandalone(occurrences []Occurrence, appointments []*domain.Appointment, windowStart, windowEnd time.Time) []Occurrence {
	seen := make(map[int64]bool, len(occurrences))
	for _, occ := range occurrences {
		if occ.AppointmentID != 0 {
			seen[occ.AppointmentID] = true
		}
	}

	merged := make([]Occurrence, len(occurrences))
	copy(merged, occurrences)

	for _, appt := range appointments {
		if appt.Status == domain.AppointmentCancelled || seen[appt.ID] {
			continue
		}
		if !intersects(appt.StartTime, appt.EndTime, windowStart, windowEnd) {
			continue
		}
		merged = append(merged, occurrenceFromAppointment(appt))
	}

	sortOccurrences(merged)
	return merged
}

func occurrenceFromAppointment(appt *domain.Appointment) Occurrence {
	occ := Occurrence{
		ID:            fmt.Sprintf("appointment-%d", appt.ID),
		AppointmentID: appt.ID,
		StaffID:       appt.StaffID,
		ClientName:    appt.ClientName,
		Start:         appt.StartTime.UTC(),
		End:           appt.EndTime.UTC(),
		Status:        appt.Status,
	}
	if appt.SeriesID != nil {
		occ.SeriesID = *appt.SeriesID
	}
	return occ
}

func sortOccurrences(occurrences []Occurrence) {
	sort.SliceStable(occurrences, func(i, j int) bool {
		if !occurrences[i].Start.Equal(occurrences[j].Start) {
			return occurrences[i].Start.Before(occurrences[j].Start)
		}
		return occurrences[i].ID < occurrences[j].ID
	})
}

func intersects(start, end, windowStart, windowEnd time.Time) bool {
	return start.Before(windowEnd) && end.After(windowStart)
}
