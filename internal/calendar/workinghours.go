package calendar

import "github.com/arborview-health/practice-manager/backend/internal/domain"

// Bound names which working-hours bound the user edited.
type Bound int

const (
	BoundStart Bound = iota
	BoundEnd
)

// ClampWorkingHours enforces the minimum-gap invariant after one bound
// changed. The edited bound wins and the other one is pushed to keep
// end - start >= MinWorkingHoursGap; both are kept inside [0, 24]. The
// violation is corrected silently, never surfaced as an error.
func ClampWorkingHours(pref *domain.WorkingHoursPreference, changed Bound) {
	if pref.StartHour < 0 {
		pref.StartHour = 0
	}
	if pref.EndHour > 24 {
		pref.EndHour = 24
	}

	switch changed {
	case BoundStart:
		if pref.StartHour > 24-domain.MinWorkingHoursGap {
			pref.StartHour = 24 - domain.MinWorkingHoursGap
		}
		if pref.EndHour-pref.StartHour < domain.MinWorkingHoursGap {
			pref.EndHour = pref.StartHour + domain.MinWorkingHoursGap
		}
	case BoundEnd:
		if pref.EndHour < domain.MinWorkingHoursGap {
			pref.EndHour = domain.MinWorkingHoursGap
		}
		if pref.EndHour-pref.StartHour < domain.MinWorkingHoursGap {
			pref.StartHour = pref.EndHour - domain.MinWorkingHoursGap
		}
	}
}

// NormalizeWorkingHours repairs a stored preference without knowing which
// bound was edited last; the start bound wins. Used defensively on read.
func NormalizeWorkingHours(pref *domain.WorkingHoursPreference) {
	ClampWorkingHours(pref, BoundStart)
}
