package calendar

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arborview-health/practice-manager/backend/internal/domain"
)

func TestClampWorkingHoursStartPushesEnd(t *testing.T) {
	// The documented scenario: {7, 21}, start moved to 20, end clamps to 22.
	pref := &domain.WorkingHoursPreference{StartHour: 20, EndHour: 21}
	ClampWorkingHours(pref, BoundStart)
	require.Equal(t, 20, pref.StartHour)
	require.Equal(t, 22, pref.EndHour)
}

func TestClampWorkingHoursEndPushesStart(t *testing.T) {
	pref := &domain.WorkingHoursPreference{StartHour: 7, EndHour: 8}
	ClampWorkingHours(pref, BoundEnd)
	require.Equal(t, 6, pref.StartHour)
	require.Equal(t, 8, pref.EndHour)
}

func TestClampWorkingHoursBounds(t *testing.T) {
	pref := &domain.WorkingHoursPreference{StartHour: 23, EndHour: 23}
	ClampWorkingHours(pref, BoundStart)
	require.Equal(t, 22, pref.StartHour)
	require.Equal(t, 24, pref.EndHour)

	pref = &domain.WorkingHoursPreference{StartHour: 0, EndHour: 1}
	ClampWorkingHours(pref, BoundEnd)
	require.Equal(t, 0, pref.StartHour)
	require.Equal(t, 2, pref.EndHour)
}

func TestClampWorkingHoursInvariantHoldsOverUpdateSequences(t *testing.T) {
	pref := domain.DefaultWorkingHours(1)
	updates := []struct {
		bound Bound
		value int
	}{
		{BoundStart, 20}, {BoundEnd, 3}, {BoundStart, 0}, {BoundEnd, 24},
		{BoundStart, 23}, {BoundEnd, 1}, {BoundStart, 12}, {BoundEnd, 13},
	}

	for _, u := range updates {
		if u.bound == BoundStart {
			pref.StartHour = u.value
		} else {
			pref.EndHour = u.value
		}
		ClampWorkingHours(pref, u.bound)

		require.GreaterOrEqual(t, pref.EndHour-pref.StartHour, domain.MinWorkingHoursGap)
		require.GreaterOrEqual(t, pref.StartHour, 0)
		require.LessOrEqual(t, pref.EndHour, 24)
	}
}
