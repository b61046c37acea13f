package domain

// WorkingHoursPreference bounds the visible calendar grid for one viewer.
// It is viewer-scoped, not staff-scoped: two schedulers looking at the same
// clinician can keep different grids. EndHour must stay at least
// MinWorkingHoursGap above StartHour; changing one bound clamps the other.
type WorkingHoursPreference struct {
	UserID    int64 `json:"-"`
	StartHour int   `json:"startHour"`
	EndHour   int   `json:"endHour"`
	Version   int32 `json:"-"`
}

const (
	MinWorkingHoursGap      = 2
	DefaultWorkingHoursFrom = 8
	DefaultWorkingHoursTo   = 18
)

// DefaultWorkingHours is applied the first time a viewer opens the calendar.
func DefaultWorkingHours(userID int64) *WorkingHoursPreference {
	return &WorkingHoursPreference{
		UserID:    userID,
		StartHour: DefaultWorkingHoursFrom,
		EndHour:   DefaultWorkingHoursTo,
	}
}
