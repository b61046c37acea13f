package extsync

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestExpandEventsSingle(t *testing.T) {
	events := []FeedEvent{{
		UID:     "single-1@example.com",
		Summary: "Quarterly review",
		Start:   time.Date(2024, 3, 11, 14, 0, 0, 0, time.UTC),
		End:     time.Date(2024, 3, 11, 15, 0, 0, 0, time.UTC),
	}}

	windowStart := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	windowEnd := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)

	rows := ExpandEvents(42, events, windowStart, windowEnd)
	require.Len(t, rows, 1)
	require.Equal(t, int64(42), rows[0].CalendarID)
	require.Equal(t, "single-1@example.com", rows[0].EventUID)
	require.Equal(t, events[0].Start, rows[0].StartTime)
	require.Equal(t, events[0].End, rows[0].EndTime)
}

func TestExpandEventsOutsideWindowDropped(t *testing.T) {
	events := []FeedEvent{{
		UID:   "past@example.com",
		Start: time.Date(2024, 1, 5, 9, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC),
	}}

	rows := ExpandEvents(1, events,
		time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC))
	require.Empty(t, rows)
}

func TestExpandEventsRecurringWithExDate(t *testing.T) {
	start := time.Date(2024, 3, 4, 17, 0, 0, 0, time.UTC)
	events := []FeedEvent{{
		UID:     "weekly-1@example.com",
		Summary: "Team standup",
		Start:   start,
		End:     start.Add(30 * time.Minute),
		RawRule: "FREQ=WEEKLY;BYDAY=MO",
		ExDates: []time.Time{time.Date(2024, 3, 18, 17, 0, 0, 0, time.UTC)},
	}}

	rows := ExpandEvents(7, events,
		time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC))

	// Mondays in March: 4, 11, 18 (excluded), 25.
	require.Len(t, rows, 3)
	require.Equal(t, time.Date(2024, 3, 4, 17, 0, 0, 0, time.UTC), rows[0].StartTime)
	require.Equal(t, time.Date(2024, 3, 11, 17, 0, 0, 0, time.UTC), rows[1].StartTime)
	require.Equal(t, time.Date(2024, 3, 25, 17, 0, 0, 0, time.UTC), rows[2].StartTime)
	for _, row := range rows {
		require.Equal(t, 30*time.Minute, row.EndTime.Sub(row.StartTime))
	}
}

func TestExpandEventsRecurringKeepsLocalTimeAcrossDST(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// 9am Eastern every Wednesday, crossing the March 10 DST change.
	start := time.Date(2024, 3, 6, 9, 0, 0, 0, loc)
	events := []FeedEvent{{
		UID:     "wed@example.com",
		Start:   start,
		End:     start.Add(time.Hour),
		RawRule: "FREQ=WEEKLY;BYDAY=WE",
	}}

	rows := ExpandEvents(3, events,
		time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 21, 0, 0, 0, 0, time.UTC))

	require.Len(t, rows, 3)
	// EST before the change, EDT after; 9am local either way.
	require.Equal(t, time.Date(2024, 3, 6, 14, 0, 0, 0, time.UTC), rows[0].StartTime)
	require.Equal(t, time.Date(2024, 3, 13, 13, 0, 0, 0, time.UTC), rows[1].StartTime)
	require.Equal(t, time.Date(2024, 3, 20, 13, 0, 0, 0, time.UTC), rows[2].StartTime)
}

func TestExpandEventsBadRuleSkipped(t *testing.T) {
	events := []FeedEvent{
		{
			UID:     "bad@example.com",
			Start:   time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC),
			End:     time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC),
			RawRule: "FREQ=SOMETIMES",
		},
		{
			UID:   "good@example.com",
			Start: time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC),
			End:   time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC),
		},
	}

	rows := ExpandEvents(9, events,
		time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC))
	require.Len(t, rows, 1)
	require.Equal(t, "good@example.com", rows[0].EventUID)
}

func TestExpandEventsSharedSyncID(t *testing.T) {
	events := []FeedEvent{
		{
			UID:   "a@example.com",
			Start: time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC),
			End:   time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC),
		},
		{
			UID:   "b@example.com",
			Start: time.Date(2024, 3, 6, 9, 0, 0, 0, time.UTC),
			End:   time.Date(2024, 3, 6, 10, 0, 0, 0, time.UTC),
		},
	}

	rows := ExpandEvents(9, events,
		time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC))
	require.Len(t, rows, 2)
	require.Equal(t, rows[0].SyncID, rows[1].SyncID)
}
