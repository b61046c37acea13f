package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/arborview-health/practice-manager/backend/internal/calendar"
	"github.com/arborview-health/practice-manager/backend/internal/domain"
	"github.com/arborview-health/practice-manager/backend/internal/utils"
)

func (h *Handler) CreateSeries(w http.ResponseWriter, r *http.Request) {
	var req struct {
		StaffID         int64      `json:"staffID" validate:"required"`
		ClientName      string     `json:"clientName" validate:"required"`
		AnchorStart     time.Time  `json:"anchorStart" validate:"required"`
		DurationMinutes int        `json:"durationMinutes" validate:"required,min=1"`
		RecurrenceRule  string     `json:"recurrenceRule" validate:"required"`
		Timezone        string     `json:"timezone" validate:"required"`
		EndType         string     `json:"endType" validate:"required,oneof=none after_date after_count"`
		EndDate         *time.Time `json:"endDate"`
		EndCount        *int       `json:"endCount" validate:"omitempty,min=1"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	// reject bad rules and timezones at write time, so reads never have
	// to deal with a series that was broken from the start
	if _, err := calendar.LoadTimezone(req.Timezone); err != nil {
		h.badRequest(w, r, errors.New("unknown timezone"))
		return
	}
	if err := calendar.ValidateRule(req.RecurrenceRule); err != nil {
		h.badRequest(w, r, errors.New("invalid recurrence rule"))
		return
	}
	switch domain.SeriesEndType(req.EndType) {
	case domain.SeriesEndAfterDate:
		if req.EndDate == nil {
			h.badRequest(w, r, errors.New("endDate is required when endType is after_date"))
			return
		}
	case domain.SeriesEndAfterCount:
		if req.EndCount == nil {
			h.badRequest(w, r, errors.New("endCount is required when endType is after_count"))
			return
		}
	}

	series := &domain.RecurringSeries{
		GroupID:         uuid.New(),
		StaffID:         req.StaffID,
		ClientName:      req.ClientName,
		AnchorStart:     req.AnchorStart.UTC(),
		DurationMinutes: req.DurationMinutes,
		RecurrenceRule:  req.RecurrenceRule,
		Timezone:        req.Timezone,
		IsActive:        true,
		EndType:         domain.SeriesEndType(req.EndType),
		EndDate:         req.EndDate,
		EndCount:        req.EndCount,
	}

	if err := h.repository.CreateSeries(series); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "series created", series)
}

func (h *Handler) GetSeriesForStaff(w http.ResponseWriter, r *http.Request) {
	staffIDParam := r.URL.Query().Get("staffID")
	staffID, err := strconv.ParseInt(staffIDParam, 10, 64)
	if err != nil {
		h.errorResponse(w, r, "invalid staffID parameter")
		return
	}

	series, err := h.repository.GetSeriesForStaff(staffID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "fetched series", series)
}

func (h *Handler) GetSeries(w http.ResponseWriter, r *http.Request) {
	series := r.Context().Value(SeriesCtx).(*domain.RecurringSeries)
	h.successResponse(w, r, "fetched series", series)
}

func (h *Handler) GetSeriesExceptions(w http.ResponseWriter, r *http.Request) {
	series := r.Context().Value(SeriesCtx).(*domain.RecurringSeries)

	exceptions, err := h.repository.GetSeriesExceptions([]int64{series.ID})
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	result := exceptions[series.ID]
	if result == nil {
		result = []*domain.SeriesException{}
	}

	h.successResponse(w, r, "fetched series exceptions", result)
}

func (h *Handler) UpdateSeries(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ClientName      *string    `json:"clientName"`
		AnchorStart     *time.Time `json:"anchorStart"`
		DurationMinutes *int       `json:"durationMinutes" validate:"omitempty,min=1"`
		RecurrenceRule  *string    `json:"recurrenceRule"`
		Timezone        *string    `json:"timezone"`
		IsActive        *bool      `json:"isActive"`
		EndType         *string    `json:"endType" validate:"omitempty,oneof=none after_date after_count"`
		EndDate         *time.Time `json:"endDate"`
		EndCount        *int       `json:"endCount" validate:"omitempty,min=1"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.Timezone != nil {
		if _, err := calendar.LoadTimezone(*req.Timezone); err != nil {
			h.badRequest(w, r, errors.New("unknown timezone"))
			return
		}
	}
	if req.RecurrenceRule != nil {
		if err := calendar.ValidateRule(*req.RecurrenceRule); err != nil {
			h.badRequest(w, r, errors.New("invalid recurrence rule"))
			return
		}
	}

	series := r.Context().Value(SeriesCtx).(*domain.RecurringSeries)

	if req.ClientName != nil {
		series.ClientName = *req.ClientName
	}
	if req.AnchorStart != nil {
		series.AnchorStart = req.AnchorStart.UTC()
	}
	if req.DurationMinutes != nil {
		series.DurationMinutes = *req.DurationMinutes
	}
	if req.RecurrenceRule != nil {
		series.RecurrenceRule = *req.RecurrenceRule
	}
	if req.Timezone != nil {
		series.Timezone = *req.Timezone
	}
	if req.IsActive != nil {
		series.IsActive = *req.IsActive
	}
	if req.EndType != nil {
		series.EndType = domain.SeriesEndType(*req.EndType)
	}
	if req.EndDate != nil {
		series.EndDate = req.EndDate
	}
	if req.EndCount != nil {
		series.EndCount = req.EndCount
	}

	if err := h.repository.UpdateSeries(series); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "series update failed, please try again")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "series updated", series)
}

func (h *Handler) DeleteSeries(w http.ResponseWriter, r *http.Request) {
	series := r.Context().Value(SeriesCtx).(*domain.RecurringSeries)

	if err := h.repository.DeleteSeries(series.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "series deleted", nil)
}

// CancelOccurrence removes a single occurrence from a series without
// touching its siblings. The occurrence is identified by the start instant
// the recurrence rule computed for it.
func (h *Handler) CancelOccurrence(w http.ResponseWriter, r *http.Request) {
	series := r.Context().Value(SeriesCtx).(*domain.RecurringSeries)

	var req struct {
		OriginalStart time.Time `json:"originalStart" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.repository.CancelSeriesOccurrence(series, req.OriginalStart.UTC()); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "cancellation failed, please try again")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "occurrence cancelled", nil)
}

// RescheduleOccurrence moves a single occurrence to a new time. The moved
// occurrence becomes a real appointment row owned by the series, so later
// edits to the series leave it where the user put it.
func (h *Handler) RescheduleOccurrence(w http.ResponseWriter, r *http.Request) {
	series := r.Context().Value(SeriesCtx).(*domain.RecurringSeries)

	var req struct {
		OriginalStart time.Time `json:"originalStart" validate:"required"`
		NewStart      time.Time `json:"newStart" validate:"required"`
		NewEnd        time.Time `json:"newEnd" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := utils.ValidateAppointmentTimes(req.NewStart, req.NewEnd); err != nil {
		h.badRequest(w, r, err)
		return
	}

	replacement := &domain.Appointment{
		SeriesID:   &series.ID,
		StaffID:    series.StaffID,
		ClientName: series.ClientName,
		StartTime:  req.NewStart.UTC(),
		EndTime:    req.NewEnd.UTC(),
		Status:     domain.AppointmentScheduled,
	}

	if err := h.repository.RescheduleSeriesOccurrence(series, req.OriginalStart.UTC(), replacement); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "reschedule failed, please try again")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "occurrence rescheduled", replacement)
}
