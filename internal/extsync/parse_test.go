package extsync

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const sampleFeed = "BEGIN:VCALENDAR\r\n" +
	"VERSION:2.0\r\n" +
	"PRODID:-//Example Corp//Calendar//EN\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:single-1@example.com\r\n" +
	"SUMMARY:Quarterly review\r\n" +
	"DTSTART:20240311T140000Z\r\n" +
	"DTEND:20240311T150000Z\r\n" +
	"END:VEVENT\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:weekly-1@example.com\r\n" +
	"SUMMARY:Team standup\r\n" +
	"DTSTART:20240304T170000Z\r\n" +
	"DTEND:20240304T173000Z\r\n" +
	"RRULE:FREQ=WEEKLY;BYDAY=MO\r\n" +
	"EXDATE:20240318T170000Z\r\n" +
	"END:VEVENT\r\n" +
	"END:VCALENDAR\r\n"

func TestParseFeed(t *testing.T) {
	events, err := ParseFeed([]byte(sampleFeed))
	require.NoError(t, err)
	require.Len(t, events, 2)

	single := events[0]
	require.Equal(t, "single-1@example.com", single.UID)
	require.Equal(t, "Quarterly review", single.Summary)
	require.Equal(t, time.Date(2024, 3, 11, 14, 0, 0, 0, time.UTC), single.Start.UTC())
	require.Equal(t, time.Date(2024, 3, 11, 15, 0, 0, 0, time.UTC), single.End.UTC())
	require.Empty(t, single.RawRule)

	weekly := events[1]
	require.Equal(t, "FREQ=WEEKLY;BYDAY=MO", weekly.RawRule)
	require.Len(t, weekly.ExDates, 1)
	require.Equal(t, time.Date(2024, 3, 18, 17, 0, 0, 0, time.UTC), weekly.ExDates[0].UTC())
}

func TestParseFeedMissingDTEND(t *testing.T) {
	feed := "BEGIN:VCALENDAR\r\n" +
		"VERSION:2.0\r\n" +
		"PRODID:-//Example Corp//Calendar//EN\r\n" +
		"BEGIN:VEVENT\r\n" +
		"UID:open-ended@example.com\r\n" +
		"SUMMARY:Check-in\r\n" +
		"DTSTART:20240311T140000Z\r\n" +
		"END:VEVENT\r\n" +
		"END:VCALENDAR\r\n"

	events, err := ParseFeed([]byte(feed))
	require.NoError(t, err)
	require.Len(t, events, 1)
	require.Equal(t, 30*time.Minute, events[0].End.Sub(events[0].Start))
}

func TestParseFeedSkipsEventWithoutUID(t *testing.T) {
	feed := "BEGIN:VCALENDAR\r\n" +
		"VERSION:2.0\r\n" +
		"PRODID:-//Example Corp//Calendar//EN\r\n" +
		"BEGIN:VEVENT\r\n" +
		"SUMMARY:No identity\r\n" +
		"DTSTART:20240311T140000Z\r\n" +
		"DTEND:20240311T150000Z\r\n" +
		"END:VEVENT\r\n" +
		"BEGIN:VEVENT\r\n" +
		"UID:ok@example.com\r\n" +
		"SUMMARY:Fine\r\n" +
		"DTSTART:20240312T140000Z\r\n" +
		"DTEND:20240312T150000Z\r\n" +
		"END:VEVENT\r\n" +
		"END:VCALENDAR\r\n"

	events, err := ParseFeed([]byte(feed))
	require.NoError(t, err)
	require.Len(t, events, 1)
	require.Equal(t, "ok@example.com", events[0].UID)
}

func TestParseFeedRejectsGarbage(t *testing.T) {
	_, err := ParseFeed([]byte("not a calendar"))
	require.Error(t, err)
}
