package domain

import (
	"time"

	"github.com/google/uuid"
)

type SeriesEndType string

const (
	SeriesEndNone       SeriesEndType = "none"
	SeriesEndAfterDate  SeriesEndType = "after_date"
	SeriesEndAfterCount SeriesEndType = "after_count"
)

type ExceptionChangeType string

const (
	ExceptionCancelled   ExceptionChangeType = "cancelled"
	ExceptionRescheduled ExceptionChangeType = "rescheduled"
)

// RecurringSeries describes a repeating appointment. AnchorStart is an
// absolute instant (UTC); RecurrenceRule is an iCalendar RRULE
// (FREQ/INTERVAL/BYDAY/UNTIL/COUNT) evaluated in Timezone so that the local
// wall-clock time of occurrences survives DST transitions.
type RecurringSeries struct {
	ID              int64         `json:"id"`
	GroupID         uuid.UUID     `json:"groupID"`
	StaffID         int64         `json:"staffID"`
	ClientName      string        `json:"clientName"`
	AnchorStart     time.Time     `json:"anchorStart"`
	DurationMinutes int           `json:"durationMinutes"`
	RecurrenceRule  string        `json:"recurrenceRule"`
	Timezone        string        `json:"timezone"`
	IsActive        bool          `json:"isActive"`
	EndType         SeriesEndType `json:"endType"`
	EndDate         *time.Time    `json:"endDate,omitempty"`
	EndCount        *int          `json:"endCount,omitempty"`
	CreatedAt       time.Time     `json:"createdAt"`
	Version         int32         `json:"-"`
}

// SeriesException overrides a single occurrence of a series. OriginalStart
// is always the start the recurrence rule computed for that occurrence,
// never an already-adjusted time, so exceptions stay stable when the series
// anchor is later edited for future occurrences only.
type SeriesException struct {
	ID                       int64               `json:"id"`
	SeriesID                 int64               `json:"seriesID"`
	OriginalStart            time.Time           `json:"originalStart"`
	ChangeType               ExceptionChangeType `json:"changeType"`
	ReplacementAppointmentID *int64              `json:"replacementAppointmentID,omitempty"`
	CreatedAt                time.Time           `json:"createdAt"`
}
