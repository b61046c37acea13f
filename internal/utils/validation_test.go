package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/arborview-health/practice-manager/backend/internal/domain"
)

func TestValidateAvailabilityWindows(t *testing.T) {
	valid := []domain.AvailabilityWindow{
		{DayOfWeek: 1, StartTime: "09:00", EndTime: "12:00", IsActive: true},
		{DayOfWeek: 1, StartTime: "13:00", EndTime: "17:00", IsActive: true},
		{DayOfWeek: 2, StartTime: "09:00", EndTime: "17:00", IsActive: true},
	}
	require.NoError(t, ValidateAvailabilityWindows(valid))
}

func TestValidateAvailabilityWindowsRejectsOverlap(t *testing.T) {
	overlapping := []domain.AvailabilityWindow{
		{DayOfWeek: 1, StartTime: "09:00", EndTime: "13:00"},
		{DayOfWeek: 1, StartTime: "12:00", EndTime: "17:00"},
	}
	require.Error(t, ValidateAvailabilityWindows(overlapping))

	// The same spans on different days are fine.
	separate := []domain.AvailabilityWindow{
		{DayOfWeek: 1, StartTime: "09:00", EndTime: "13:00"},
		{DayOfWeek: 2, StartTime: "12:00", EndTime: "17:00"},
	}
	require.NoError(t, ValidateAvailabilityWindows(separate))
}

func TestValidateAvailabilityWindowsRejectsInvertedAndMalformed(t *testing.T) {
	require.Error(t, ValidateAvailabilityWindows([]domain.AvailabilityWindow{
		{DayOfWeek: 1, StartTime: "14:00", EndTime: "09:00"},
	}))
	require.Error(t, ValidateAvailabilityWindows([]domain.AvailabilityWindow{
		{DayOfWeek: 1, StartTime: "half past nine", EndTime: "17:00"},
	}))
	require.Error(t, ValidateAvailabilityWindows([]domain.AvailabilityWindow{
		{DayOfWeek: 9, StartTime: "09:00", EndTime: "17:00"},
	}))
}

func TestValidateAppointmentTimes(t *testing.T) {
	start := time.Date(2024, 3, 5, 19, 0, 0, 0, time.UTC)
	require.NoError(t, ValidateAppointmentTimes(start, start.Add(30*time.Minute)))
	require.Error(t, ValidateAppointmentTimes(start, start))
	require.Error(t, ValidateAppointmentTimes(start, start.Add(-time.Hour)))
}
