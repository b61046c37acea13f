package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/arborview-health/practice-manager/backend/internal/domain"
)

func weekdayTemplate() *domain.AvailabilityTemplate {
	return &domain.AvailabilityTemplate{
		StaffID: 3,
		Windows: []domain.AvailabilityWindow{
			{ID: 1, DayOfWeek: 1, StartTime: "09:00", EndTime: "12:00", IsActive: true},
			{ID: 2, DayOfWeek: 1, StartTime: "13:00", EndTime: "17:00", IsActive: true},
			{ID: 3, DayOfWeek: 3, StartTime: "10:00", EndTime: "16:00", IsActive: true},
			{ID: 4, DayOfWeek: 5, StartTime: "08:00", EndTime: "11:00", IsActive: false},
		},
	}
}

func TestAvailableIntervals(t *testing.T) {
	la, err := LoadTimezone("America/Los_Angeles")
	require.NoError(t, err)

	// Mon Mar 4 through Sun Mar 10, 2024, in LA local terms.
	start := time.Date(2024, 3, 4, 8, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 11, 7, 59, 0, 0, time.UTC)

	days, err := AvailableIntervals(weekdayTemplate(), start, end, la)
	require.NoError(t, err)

	monday := CivilDate{Year: 2024, Month: 3, Day: 4}
	require.Equal(t, []LocalInterval{
		{Start: 9 * 60, End: 12 * 60},
		{Start: 13 * 60, End: 17 * 60},
	}, days[monday])

	wednesday := CivilDate{Year: 2024, Month: 3, Day: 6}
	require.Equal(t, []LocalInterval{{Start: 10 * 60, End: 16 * 60}}, days[wednesday])

	// Friday's only window is inactive; Tuesday has none at all.
	require.NotContains(t, days, CivilDate{Year: 2024, Month: 3, Day: 8})
	require.NotContains(t, days, CivilDate{Year: 2024, Month: 3, Day: 5})
}

func TestAvailableIntervalsSameWeekdayReused(t *testing.T) {
	la, err := LoadTimezone("America/Los_Angeles")
	require.NoError(t, err)

	// Two weeks: both Mondays resolve to the same template intervals.
	start := time.Date(2024, 3, 4, 8, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 18, 7, 59, 0, 0, time.UTC)

	days, err := AvailableIntervals(weekdayTemplate(), start, end, la)
	require.NoError(t, err)
	require.Equal(t, days[CivilDate{Year: 2024, Month: 3, Day: 4}], days[CivilDate{Year: 2024, Month: 3, Day: 11}])
}

func TestAvailableIntervalsNilTemplate(t *testing.T) {
	la, err := LoadTimezone("America/Los_Angeles")
	require.NoError(t, err)

	days, err := AvailableIntervals(nil, time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), la)
	require.NoError(t, err)
	require.Empty(t, days)
}
