package domain

import "time"

// AvailabilityWindow is one weekday window of an availability template.
// StartTime and EndTime are local wall-clock times in "15:04" form; the
// window is weekday-specific, not date-specific. Windows for the same
// weekday must not overlap; that is enforced at write time.
type AvailabilityWindow struct {
	ID        int64  `json:"id"`
	DayOfWeek int    `json:"dayOfWeek"` // 0 = Sunday, 6 = Saturday
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	IsActive  bool   `json:"isActive"`
}

// AvailabilityTemplate is a staff member's weekly availability.
type AvailabilityTemplate struct {
	StaffID   int64                `json:"staffID"`
	Windows   []AvailabilityWindow `json:"windows"`
	UpdatedAt time.Time            `json:"updatedAt"`
	Version   int32                `json:"-"`
}
