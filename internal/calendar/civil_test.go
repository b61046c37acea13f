package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestToCivil(t *testing.T) {
	ny, err := LoadTimezone("America/New_York")
	require.NoError(t, err)

	// 2024-01-02T19:00:00Z is 2pm EST.
	instant := time.Date(2024, 1, 2, 19, 0, 0, 0, time.UTC)
	civil := ToCivil(instant, ny)
	require.Equal(t, CivilTime{Year: 2024, Month: 1, Day: 2, Hour: 14, Minute: 0}, civil)
}

func TestRoundTrip(t *testing.T) {
	zones := []string{"UTC", "America/New_York", "America/Los_Angeles", "Europe/Athens", "Australia/Sydney"}
	instants := []time.Time{
		time.Date(2024, 1, 15, 8, 30, 0, 0, time.UTC),
		time.Date(2024, 3, 10, 6, 45, 0, 0, time.UTC), // inside the US spring-forward morning
		time.Date(2024, 7, 1, 23, 59, 0, 0, time.UTC),
		time.Date(2024, 12, 31, 0, 1, 0, 0, time.UTC),
	}

	for _, name := range zones {
		loc, err := LoadTimezone(name)
		require.NoError(t, err)
		for _, instant := range instants {
			back := ToInstant(ToCivil(instant, loc), loc)
			require.True(t, back.Equal(instant), "round trip through %s changed %v to %v", name, instant, back)
		}
	}
}

func TestToInstantSpringForwardGap(t *testing.T) {
	ny, err := LoadTimezone("America/New_York")
	require.NoError(t, err)

	// 2:30am does not exist on 2024-03-10 in New York; it normalizes
	// forward to 3:30am EDT.
	instant := ToInstant(CivilTime{Year: 2024, Month: 3, Day: 10, Hour: 2, Minute: 30}, ny)
	require.Equal(t, time.Date(2024, 3, 10, 7, 30, 0, 0, time.UTC), instant)
	require.Equal(t, CivilTime{Year: 2024, Month: 3, Day: 10, Hour: 3, Minute: 30}, ToCivil(instant, ny))

	// The projected instant must sit on the post-gap side of the
	// transition, not the pre-gap side.
	require.True(t, instant.After(time.Date(2024, 3, 10, 7, 0, 0, 0, time.UTC)))
}

func TestToInstantSpringForwardGapHalfHourZone(t *testing.T) {
	lh, err := LoadTimezone("Australia/Lord_Howe")
	require.NoError(t, err)

	// Lord Howe springs forward by 30 minutes: on 2024-10-06, 2:00am
	// (+10:30) jumps to 2:30am (+11). 2:15am does not exist and
	// normalizes forward to 2:45am.
	instant := ToInstant(CivilTime{Year: 2024, Month: 10, Day: 6, Hour: 2, Minute: 15}, lh)
	require.Equal(t, time.Date(2024, 10, 5, 15, 45, 0, 0, time.UTC), instant)
	require.Equal(t, CivilTime{Year: 2024, Month: 10, Day: 6, Hour: 2, Minute: 45}, ToCivil(instant, lh))
}

func TestToInstantFallBackOverlap(t *testing.T) {
	ny, err := LoadTimezone("America/New_York")
	require.NoError(t, err)

	// 1:30am happens twice on 2024-11-03 in New York: 05:30Z (EDT) and
	// 06:30Z (EST). The earlier candidate wins.
	instant := ToInstant(CivilTime{Year: 2024, Month: 11, Day: 3, Hour: 1, Minute: 30}, ny)
	require.Equal(t, time.Date(2024, 11, 3, 5, 30, 0, 0, time.UTC), instant)
}

func TestRoundTripAmbiguousHour(t *testing.T) {
	ny, err := LoadTimezone("America/New_York")
	require.NoError(t, err)

	earlier := time.Date(2024, 11, 3, 5, 30, 0, 0, time.UTC) // 1:30 EDT
	later := time.Date(2024, 11, 3, 6, 30, 0, 0, time.UTC)   // 1:30 EST

	// Both instants project to the same wall clock; converting back must
	// land on the earlier one.
	require.Equal(t, ToCivil(earlier, ny), ToCivil(later, ny))
	require.Equal(t, earlier, ToInstant(ToCivil(later, ny), ny))
}

func TestLoadTimezoneUnknown(t *testing.T) {
	_, err := LoadTimezone("Nowhere/Special")
	require.ErrorIs(t, err, ErrInvalidTimezone)

	_, err = LoadTimezone("")
	require.ErrorIs(t, err, ErrInvalidTimezone)
}

func TestCivilDateWeekdayAndNext(t *testing.T) {
	d := CivilDate{Year: 2024, Month: 3, Day: 10} // a Sunday
	require.Equal(t, 0, d.Weekday())
	require.Equal(t, CivilDate{Year: 2024, Month: 3, Day: 11}, d.Next())

	// month rollover
	require.Equal(t, CivilDate{Year: 2024, Month: 4, Day: 1}, CivilDate{Year: 2024, Month: 3, Day: 31}.Next())
}
