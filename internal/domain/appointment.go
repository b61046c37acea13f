package domain

import "time"

type AppointmentStatus string

const (
	AppointmentScheduled AppointmentStatus = "scheduled"
	AppointmentCompleted AppointmentStatus = "completed"
	AppointmentCancelled AppointmentStatus = "cancelled"
	AppointmentNoShow    AppointmentStatus = "no_show"
)

// Appointment is a standalone appointment row. Occurrences of a recurring
// series are derived on read and never stored, except when a single
// occurrence is rescheduled: the replacement becomes a real row referenced
// by a SeriesException.
//
// StartTime and EndTime are absolute instants, stored UTC.
type Appointment struct {
	ID         int64             `json:"id"`
	SeriesID   *int64            `json:"seriesID,omitempty"`
	StaffID    int64             `json:"staffID"`
	ClientName string            `json:"clientName"`
	StartTime  time.Time         `json:"startTime"`
	EndTime    time.Time         `json:"endTime"`
	Status     AppointmentStatus `json:"status"`
	Notes      string            `json:"notes"`
	CreatedAt  time.Time         `json:"createdAt"`
	Version    int32             `json:"-"`
}
