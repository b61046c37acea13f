package domain

import "time"

// ManualBlock is a staff-entered blocked-time interval (lunch, admin time,
// out of office). Instants stored UTC.
type ManualBlock struct {
	ID        int64     `json:"id"`
	StaffID   int64     `json:"staffID"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Label     string    `json:"label"`
	CreatedAt time.Time `json:"createdAt"`
	Version   int32     `json:"-"`
}
