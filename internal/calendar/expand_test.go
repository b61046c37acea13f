package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/arborview-health/practice-manager/backend/internal/domain"
)

// weeklyTuesdaySeries is the canonical DST fixture: every Tuesday at 2pm
// New York time, anchored before the March 2024 spring-forward.
func weeklyTuesdaySeries() *domain.RecurringSeries {
	return &domain.RecurringSeries{
		ID:              7,
		StaffID:         3,
		ClientName:      "R. Alvarez",
		AnchorStart:     time.Date(2024, 1, 2, 19, 0, 0, 0, time.UTC), // 2pm EST
		DurationMinutes: 60,
		RecurrenceRule:  "FREQ=WEEKLY;BYDAY=TU",
		Timezone:        "America/New_York",
		IsActive:        true,
		EndType:         domain.SeriesEndNone,
	}
}

func marchWindow() (time.Time, time.Time) {
	return time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 3, 31, 23, 59, 0, 0, time.UTC)
}

func TestExpandKeepsLocalTimeAcrossDST(t *testing.T) {
	e := &Expander{}
	series := weeklyTuesdaySeries()
	start, end := marchWindow()

	occs, err := e.Expand(series, nil, nil, start, end)
	require.NoError(t, err)
	require.Len(t, occs, 4) // Tuesdays: Mar 5, 12, 19, 26

	ny, err := LoadTimezone("America/New_York")
	require.NoError(t, err)

	for _, occ := range occs {
		civil := ToCivil(occ.Start, ny)
		require.Equal(t, 14, civil.Hour, "occurrence on %v drifted off 2pm local", occ.Start)
		require.Equal(t, 0, civil.Minute)
	}

	// Offset flips at the March 10 transition: 19:00Z before, 18:00Z after.
	require.Equal(t, time.Date(2024, 3, 5, 19, 0, 0, 0, time.UTC), occs[0].Start)
	require.Equal(t, time.Date(2024, 3, 12, 18, 0, 0, 0, time.UTC), occs[1].Start)
	require.Equal(t, time.Date(2024, 3, 19, 18, 0, 0, 0, time.UTC), occs[2].Start)
	require.Equal(t, time.Date(2024, 3, 26, 18, 0, 0, 0, time.UTC), occs[3].Start)
}

func TestExpandIdempotent(t *testing.T) {
	e := &Expander{}
	series := weeklyTuesdaySeries()
	start, end := marchWindow()

	first, err := e.Expand(series, nil, nil, start, end)
	require.NoError(t, err)
	second, err := e.Expand(series, nil, nil, start, end)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestExpandCancelledException(t *testing.T) {
	e := &Expander{}
	series := weeklyTuesdaySeries()
	start, end := marchWindow()

	exceptions := []*domain.SeriesException{{
		SeriesID:      series.ID,
		OriginalStart: time.Date(2024, 3, 12, 18, 0, 0, 0, time.UTC),
		ChangeType:    domain.ExceptionCancelled,
	}}

	occs, err := e.Expand(series, exceptions, nil, start, end)
	require.NoError(t, err)
	require.Len(t, occs, 3)
	for _, occ := range occs {
		require.NotEqual(t, time.Date(2024, 3, 12, 18, 0, 0, 0, time.UTC), occ.Start)
	}
}

func TestExpandRescheduledException(t *testing.T) {
	e := &Expander{}
	series := weeklyTuesdaySeries()
	start, end := marchWindow()

	replacementID := int64(99)
	replacement := &domain.Appointment{
		ID:         replacementID,
		SeriesID:   &series.ID,
		StaffID:    series.StaffID,
		ClientName: series.ClientName,
		StartTime:  time.Date(2024, 3, 13, 20, 0, 0, 0, time.UTC), // moved to Wednesday, 90 min
		EndTime:    time.Date(2024, 3, 13, 21, 30, 0, 0, time.UTC),
		Status:     domain.AppointmentScheduled,
	}
	exceptions := []*domain.SeriesException{{
		SeriesID:                 series.ID,
		OriginalStart:            time.Date(2024, 3, 12, 18, 0, 0, 0, time.UTC),
		ChangeType:               domain.ExceptionRescheduled,
		ReplacementAppointmentID: &replacementID,
	}}

	occs, err := e.Expand(series, exceptions, map[int64]*domain.Appointment{replacementID: replacement}, start, end)
	require.NoError(t, err)
	require.Len(t, occs, 4)

	// The replacement keeps its own instants and duration.
	var found *Occurrence
	for i := range occs {
		if occs[i].AppointmentID == replacementID {
			found = &occs[i]
		}
	}
	require.NotNil(t, found)
	require.Equal(t, replacement.StartTime, found.Start)
	require.Equal(t, replacement.EndTime, found.End)
}

func TestExceptionDoesNotPerturbSiblings(t *testing.T) {
	e := &Expander{}
	series := weeklyTuesdaySeries()
	start, end := marchWindow()

	plain, err := e.Expand(series, nil, nil, start, end)
	require.NoError(t, err)

	exceptions := []*domain.SeriesException{{
		SeriesID:      series.ID,
		OriginalStart: time.Date(2024, 3, 12, 18, 0, 0, 0, time.UTC),
		ChangeType:    domain.ExceptionCancelled,
	}}
	withException, err := e.Expand(series, exceptions, nil, start, end)
	require.NoError(t, err)

	// Remaining occurrences keep exactly the starts they had before.
	require.Equal(t, plain[0].Start, withException[0].Start)
	require.Equal(t, plain[2].Start, withException[1].Start)
	require.Equal(t, plain[3].Start, withException[2].Start)
}

func TestExpandEndConditions(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	e := &Expander{}

	count := 3
	series := weeklyTuesdaySeries()
	series.EndType = domain.SeriesEndAfterCount
	series.EndCount = &count

	occs, err := e.Expand(series, nil, nil, start, end)
	require.NoError(t, err)
	require.Len(t, occs, 3) // Jan 2, 9, 16

	until := time.Date(2024, 1, 24, 0, 0, 0, 0, time.UTC)
	series = weeklyTuesdaySeries()
	series.EndType = domain.SeriesEndAfterDate
	series.EndDate = &until

	occs, err = e.Expand(series, nil, nil, start, end)
	require.NoError(t, err)
	require.Len(t, occs, 4) // Jan 2, 9, 16, 23
}

func TestExpandInactiveSeries(t *testing.T) {
	e := &Expander{}
	series := weeklyTuesdaySeries()
	series.IsActive = false
	start, end := marchWindow()

	occs, err := e.Expand(series, nil, nil, start, end)
	require.NoError(t, err)
	require.Empty(t, occs)
}

func TestExpandBadRule(t *testing.T) {
	e := &Expander{}
	series := weeklyTuesdaySeries()
	series.RecurrenceRule = "FREQ=SOMETIMES"
	start, end := marchWindow()

	_, err := e.Expand(series, nil, nil, start, end)
	require.ErrorIs(t, err, ErrUnparseableRecurrenceRule)
}

func TestExpandBadSeriesTimezone(t *testing.T) {
	e := &Expander{}
	series := weeklyTuesdaySeries()
	series.Timezone = "Mars/Olympus_Mons"
	start, end := marchWindow()

	_, err := e.Expand(series, nil, nil, start, end)
	require.ErrorIs(t, err, ErrInvalidTimezone)
}

func TestExpandIncludesOccurrenceOverlappingWindowStart(t *testing.T) {
	e := &Expander{}
	series := weeklyTuesdaySeries()
	series.DurationMinutes = 120

	// Window opens mid-appointment: Mar 5 19:00Z-21:00Z, window from 20:00Z.
	start := time.Date(2024, 3, 5, 20, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 6, 0, 0, 0, 0, time.UTC)

	occs, err := e.Expand(series, nil, nil, start, end)
	require.NoError(t, err)
	require.Len(t, occs, 1)
	require.Equal(t, time.Date(2024, 3, 5, 19, 0, 0, 0, time.UTC), occs[0].Start)
}

func TestMergeStandalone(t *testing.T) {
	e := &Expander{}
	series := weeklyTuesdaySeries()
	start, end := marchWindow()

	occs, err := e.Expand(series, nil, nil, start, end)
	require.NoError(t, err)

	standalone := []*domain.Appointment{
		{
			ID:         11,
			StaffID:    3,
			ClientName: "P. Okafor",
			StartTime:  time.Date(2024, 3, 4, 15, 0, 0, 0, time.UTC),
			EndTime:    time.Date(2024, 3, 4, 15, 30, 0, 0, time.UTC),
			Status:     domain.AppointmentScheduled,
		},
		{
			ID:         12,
			StaffID:    3,
			ClientName: "Cancelled visit",
			StartTime:  time.Date(2024, 3, 6, 15, 0, 0, 0, time.UTC),
			EndTime:    time.Date(2024, 3, 6, 15, 30, 0, 0, time.UTC),
			Status:     domain.AppointmentCancelled,
		},
		{
			ID:         13,
			StaffID:    3,
			ClientName: "Outside window",
			StartTime:  time.Date(2024, 5, 1, 15, 0, 0, 0, time.UTC),
			EndTime:    time.Date(2024, 5, 1, 15, 30, 0, 0, time.UTC),
			Status:     domain.AppointmentScheduled,
		},
	}

	merged := MergeStandalone(occs, standalone, start, end)
	require.Len(t, merged, 5)
	require.Equal(t, "appointment-11", merged[0].ID) // earliest start first
	for i := 1; i < len(merged); i++ {
		require.False(t, merged[i].Start.Before(merged[i-1].Start))
	}
}

func TestMergeStandaloneSkipsReplacementRows(t *testing.T) {
	replacementID := int64(99)
	occs := []Occurrence{{
		ID:            "appointment-99",
		AppointmentID: replacementID,
		StaffID:       3,
		Start:         time.Date(2024, 3, 13, 20, 0, 0, 0, time.UTC),
		End:           time.Date(2024, 3, 13, 21, 0, 0, 0, time.UTC),
		Status:        domain.AppointmentScheduled,
	}}

	seriesID := int64(7)
	rows := []*domain.Appointment{{
		ID:        replacementID,
		SeriesID:  &seriesID,
		StaffID:   3,
		StartTime: time.Date(2024, 3, 13, 20, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2024, 3, 13, 21, 0, 0, 0, time.UTC),
		Status:    domain.AppointmentScheduled,
	}}

	merged := MergeStandalone(occs, rows, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC))
	require.Len(t, merged, 1)
}
