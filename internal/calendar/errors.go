package calendar

import "errors"

var (
	// ErrInvalidTimezone marks an unknown IANA timezone identifier. A bad
	// viewer timezone fails the whole request; there is deliberately no
	// fallback to the process timezone.
	ErrInvalidTimezone = errors.New("invalid timezone")

	// ErrUnparseableRecurrenceRule marks a series whose RRULE cannot be
	// compiled. The series is skipped and reported; the rest of the window
	// is still computed.
	ErrUnparseableRecurrenceRule = errors.New("unparseable recurrence rule")
)
