package extsync

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/teambition/rrule-go"

	"github.com/arborview-health/practice-manager/backend/internal/domain"
)

const maxOccurrencesPerFeedEvent = 1000

// ExpandEvents turns parsed feed events into concrete busy rows for one
// calendar within [windowStart, windowEnd). Recurring events are walked in
// the timezone their DTSTART carries, so a feed's "every Monday 9am" stays
// 9am local across DST. Events with a bad RRULE are logged and skipped.
func ExpandEvents(calendarID int64, events []FeedEvent, windowStart, windowEnd time.Time) []*domain.ExternalEvent {
	syncID := uuid.New()
	out := make([]*domain.ExternalEvent, 0, len(events))

	for _, ev := range events {
		duration := ev.End.Sub(ev.Start)

		if ev.RawRule == "" {
			if ev.Start.Before(windowEnd) && ev.End.After(windowStart) {
				out = append(out, externalEvent(calendarID, syncID, ev, ev.Start, duration))
			}
			continue
		}

		r, err := rrule.StrToRRule(ev.RawRule)
		if err != nil {
			slog.Warn("skipping feed event with bad RRULE", "uid", ev.UID, "rrule", ev.RawRule, "error", err)
			continue
		}
		r.DTStart(ev.Start)

		var set rrule.Set
		set.RRule(r)
		for _, ex := range ev.ExDates {
			set.ExDate(ex.In(ev.Start.Location()))
		}

		loc := ev.Start.Location()
		starts := set.Between(windowStart.Add(-duration).In(loc), windowEnd.In(loc), true)
		if len(starts) > maxOccurrencesPerFeedEvent {
			starts = starts[:maxOccurrencesPerFeedEvent]
		}

		for _, start := range starts {
			if start.Before(windowEnd) && start.Add(duration).After(windowStart) {
				out = append(out, externalEvent(calendarID, syncID, ev, start, duration))
			}
		}
	}

	return out
}

func externalEvent(calendarID int64, syncID uuid.UUID, ev FeedEvent, start time.Time, duration time.Duration) *domain.ExternalEvent {
	return &domain.ExternalEvent{
		CalendarID: calendarID,
		EventUID:   ev.UID,
		SyncID:     syncID,
		Summary:    ev.Summary,
		StartTime:  start.UTC(),
		EndTime:    start.Add(duration).UTC(),
	}
}
