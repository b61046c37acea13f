package domain

import (
	"time"

	"github.com/google/uuid"
)

// ExternalCalendar is a connected third-party calendar, synced from an ICS
// feed. Its events appear on the schedule as read-only busy blocks.
type ExternalCalendar struct {
	ID           int64      `json:"id"`
	StaffID      int64      `json:"staffID"`
	Label        string     `json:"label"`
	FeedURL      string     `json:"feedURL"`
	LastSyncedAt *time.Time `json:"lastSyncedAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	Version      int32      `json:"-"`
}

// ExternalEvent is one busy interval synced from an external calendar.
// Recurring feed events are expanded at sync time, one row per occurrence
// inside the sync window. Rows are replaced wholesale on every sync.
type ExternalEvent struct {
	ID         int64     `json:"id"`
	CalendarID int64     `json:"calendarID"`
	EventUID   string    `json:"eventUID"`
	SyncID     uuid.UUID `json:"syncID"`
	Summary    string    `json:"summary"`
	StartTime  time.Time `json:"startTime"`
	EndTime    time.Time `json:"endTime"`
}
