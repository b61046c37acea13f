package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/arborview-health/practice-manager/backend/internal/domain"
)

type fakeCache struct {
	entries map[string][]Occurrence
	hits    int
	sets    int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string][]Occurrence)}
}

func (c *fakeCache) Get(key string) ([]Occurrence, bool) {
	occs, ok := c.entries[key]
	if ok {
		c.hits++
	}
	return occs, ok
}

func (c *fakeCache) Set(key string, occurrences []Occurrence) {
	c.sets++
	c.entries[key] = occurrences
}

func buildInput() BuildInput {
	series := weeklyTuesdaySeries()
	start, end := marchWindow()

	return BuildInput{
		StaffID:        3,
		ViewerTimezone: "America/Los_Angeles",
		WindowStart:    start,
		WindowEnd:      end,
		WorkingHours:   &domain.WorkingHoursPreference{StartHour: 7, EndHour: 21},
		Series:         []*domain.RecurringSeries{series},
		ManualBlocks: []*domain.ManualBlock{{
			ID:        4,
			StaffID:   3,
			StartTime: time.Date(2024, 3, 5, 19, 30, 0, 0, time.UTC),
			EndTime:   time.Date(2024, 3, 5, 20, 30, 0, 0, time.UTC),
			Label:     "Chart review",
		}},
		ExternalEvents: []*domain.ExternalEvent{{
			ID:        8,
			Summary:   "Dentist",
			StartTime: time.Date(2024, 3, 5, 19, 15, 0, 0, time.UTC),
			EndTime:   time.Date(2024, 3, 5, 19, 45, 0, 0, time.UTC),
		}},
		Availability: weekdayTemplate(),
	}
}

func TestBuildProjectsIntoViewerTimezone(t *testing.T) {
	now := time.Date(2024, 3, 5, 20, 0, 0, 0, time.UTC)
	b := &Builder{Now: func() time.Time { return now }}

	vm, err := b.Build(buildInput())
	require.NoError(t, err)

	// 4 Tuesday occurrences + manual block + external event.
	require.Len(t, vm.Events, 6)

	// The Mar 5 occurrence starts 19:00Z = 11am in Los Angeles.
	require.Equal(t, CivilTime{Year: 2024, Month: 3, Day: 5, Hour: 11, Minute: 0}, vm.Events[0].Start)
	require.Equal(t, SourceAppointment, vm.Events[0].Source)

	// The now marker goes through the identical projection.
	require.Equal(t, CivilTime{Year: 2024, Month: 3, Day: 5, Hour: 12, Minute: 0}, vm.NowMarker)

	// Grid bounds come from the viewer's working hours on the first day.
	require.Equal(t, 7, vm.GridStart.Hour)
	require.Equal(t, 21, vm.GridEnd.Hour)

	// Availability was resolved in the viewer's zone.
	require.NotEmpty(t, vm.Availability)
}

func TestBuildInvalidViewerTimezoneFailsFast(t *testing.T) {
	b := &Builder{}
	input := buildInput()
	input.ViewerTimezone = "Local" // the dangerous implicit default is rejected too

	_, err := b.Build(input)
	require.ErrorIs(t, err, ErrInvalidTimezone)
}

func TestBuildSkipsAndReportsBadSeries(t *testing.T) {
	b := &Builder{}
	input := buildInput()

	bad := weeklyTuesdaySeries()
	bad.ID = 8
	bad.RecurrenceRule = "FREQ=SOMETIMES"
	input.Series = append(input.Series, bad)

	vm, err := b.Build(input)
	require.NoError(t, err)

	// The healthy series still expanded.
	require.Len(t, vm.Events, 6)
	require.Len(t, vm.SkippedSeries, 1)
	require.Equal(t, int64(8), vm.SkippedSeries[0].SeriesID)
}

func TestBuildClampsWorkingHours(t *testing.T) {
	b := &Builder{}
	input := buildInput()
	input.WorkingHours = &domain.WorkingHoursPreference{StartHour: 20, EndHour: 21}

	vm, err := b.Build(input)
	require.NoError(t, err)
	require.GreaterOrEqual(t, vm.GridEnd.Hour-vm.GridStart.Hour, domain.MinWorkingHoursGap)
}

func TestBuildGridEndAtMidnight(t *testing.T) {
	b := &Builder{}
	input := buildInput()
	input.WorkingHours = &domain.WorkingHoursPreference{StartHour: 22, EndHour: 23}

	// A start bound at 22 pushes the end to the exclusive hour-24 bound on
	// the same day, not to 00:00 of the next.
	vm, err := b.Build(input)
	require.NoError(t, err)
	require.Equal(t, 24, vm.GridEnd.Hour)
	require.Equal(t, vm.GridStart.Date(), vm.GridEnd.Date())
}

func TestBuildDefaultsWorkingHours(t *testing.T) {
	b := &Builder{}
	input := buildInput()
	input.WorkingHours = nil

	vm, err := b.Build(input)
	require.NoError(t, err)
	require.Equal(t, domain.DefaultWorkingHoursFrom, vm.GridStart.Hour)
	require.Equal(t, domain.DefaultWorkingHoursTo, vm.GridEnd.Hour)
}

func TestBuildUsesExpansionCache(t *testing.T) {
	cache := newFakeCache()
	b := &Builder{Cache: cache}
	input := buildInput()

	first, err := b.Build(input)
	require.NoError(t, err)
	require.Equal(t, 1, cache.sets)
	require.Equal(t, 0, cache.hits)

	second, err := b.Build(input)
	require.NoError(t, err)
	require.Equal(t, 1, cache.sets)
	require.Equal(t, 1, cache.hits)
	require.Equal(t, first.Events, second.Events)
}

func TestBuildRejectsEmptyWindow(t *testing.T) {
	b := &Builder{}
	input := buildInput()
	input.WindowEnd = input.WindowStart

	_, err := b.Build(input)
	require.Error(t, err)
}
