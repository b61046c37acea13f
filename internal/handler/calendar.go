package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/arborview-health/practice-manager/backend/internal/calendar"
	"github.com/arborview-health/practice-manager/backend/internal/domain"
)

// GetStaffCalendar returns the render-ready schedule for one staff member.
// The window comes from the start and end query parameters (RFC 3339) and
// everything in the response is projected into the timezone query parameter,
// which is the viewer's, not the staff member's.
func (h *Handler) GetStaffCalendar(w http.ResponseWriter, r *http.Request) {
	staff := r.Context().Value(StaffInfoCtx).(*domain.User)

	query := r.URL.Query()

	windowStart, err := time.Parse(time.RFC3339, query.Get("start"))
	if err != nil {
		h.errorResponse(w, r, "invalid start parameter, expected RFC 3339")
		return
	}
	windowEnd, err := time.Parse(time.RFC3339, query.Get("end"))
	if err != nil {
		h.errorResponse(w, r, "invalid end parameter, expected RFC 3339")
		return
	}
	if !windowEnd.After(windowStart) {
		h.errorResponse(w, r, "end must be after start")
		return
	}

	viewerID, err := strconv.ParseInt(r.Context().Value(SubCtxKey).(string), 10, 64)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	series, err := h.repository.GetSeriesForStaff(staff.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	seriesIDs := make([]int64, 0, len(series))
	for _, s := range series {
		seriesIDs = append(seriesIDs, s.ID)
	}

	exceptions, err := h.repository.GetSeriesExceptions(seriesIDs)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	replacements, err := h.repository.GetReplacementAppointments(seriesIDs)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	appointments, err := h.repository.GetAppointmentsInWindow(staff.ID, windowStart, windowEnd)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	manualBlocks, err := h.repository.GetManualBlocksInWindow(staff.ID, windowStart, windowEnd)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	externalEvents, err := h.repository.GetExternalEventsInWindow(staff.ID, windowStart, windowEnd)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	template, err := h.repository.GetAvailabilityTemplate(staff.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	workingHours, err := h.repository.GetWorkingHours(viewerID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	vm, err := h.builder.Build(calendar.BuildInput{
		StaffID:        staff.ID,
		ViewerTimezone: query.Get("timezone"),
		WindowStart:    windowStart,
		WindowEnd:      windowEnd,
		WorkingHours:   workingHours,

		Series:             series,
		ExceptionsBySeries: exceptions,
		Replacements:       replacements,
		Appointments:       appointments,
		ManualBlocks:       manualBlocks,
		ExternalEvents:     externalEvents,
		Availability:       template,
	})
	if err != nil {
		switch {
		case errors.Is(err, calendar.ErrInvalidTimezone):
			h.errorResponse(w, r, "invalid timezone parameter")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "fetched calendar", vm)
}
