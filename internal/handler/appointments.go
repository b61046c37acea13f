package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/arborview-health/practice-manager/backend/internal/calendar"
	"github.com/arborview-health/practice-manager/backend/internal/domain"
	"github.com/arborview-health/practice-manager/backend/internal/utils"
)

const confirmationTimeLayout = "Monday, January 2, 2006 at 3:04 PM"

func (h *Handler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		StaffID    int64     `json:"staffID" validate:"required"`
		ClientName string    `json:"clientName" validate:"required"`
		StartTime  time.Time `json:"startTime" validate:"required"`
		EndTime    time.Time `json:"endTime" validate:"required"`
		Notes      string    `json:"notes"`
		Timezone   string    `json:"timezone"` // used to format the confirmation email, defaults to UTC
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := utils.ValidateAppointmentTimes(req.StartTime, req.EndTime); err != nil {
		h.badRequest(w, r, err)
		return
	}

	staff, err := h.repository.GetUserByID(req.StaffID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "staff member not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	appt := &domain.Appointment{
		StaffID:    staff.ID,
		ClientName: req.ClientName,
		StartTime:  req.StartTime.UTC(),
		EndTime:    req.EndTime.UTC(),
		Status:     domain.AppointmentScheduled,
		Notes:      req.Notes,
	}

	if err := h.repository.CreateAppointment(appt); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	loc := time.UTC
	if req.Timezone != "" {
		if parsed, err := calendar.LoadTimezone(req.Timezone); err == nil {
			loc = parsed
		}
	}

	mailMessage := domain.MailMessage{
		Type: "appointment_confirmation",
		To:   staff.Email,
		Data: domain.AppointmentConfirmationMailData{
			StaffName:  staff.FullName,
			ClientName: appt.ClientName,
			StartsAt:   appt.StartTime.In(loc).Format(confirmationTimeLayout),
			EndsAt:     appt.EndTime.In(loc).Format(confirmationTimeLayout),
		},
	}

	if err := h.publishMail(mailMessage); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "appointment created", appt)
}

func (h *Handler) GetAppointment(w http.ResponseWriter, r *http.Request) {
	appt := r.Context().Value(AppointmentCtx).(*domain.Appointment)
	h.successResponse(w, r, "fetched appointment", appt)
}

func (h *Handler) UpdateAppointment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ClientName *string    `json:"clientName"`
		StartTime  *time.Time `json:"startTime"`
		EndTime    *time.Time `json:"endTime"`
		Status     *string    `json:"status" validate:"omitempty,oneof=scheduled completed cancelled no_show"`
		Notes      *string    `json:"notes"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	appt := r.Context().Value(AppointmentCtx).(*domain.Appointment)

	if req.ClientName != nil {
		appt.ClientName = *req.ClientName
	}
	if req.StartTime != nil {
		appt.StartTime = req.StartTime.UTC()
	}
	if req.EndTime != nil {
		appt.EndTime = req.EndTime.UTC()
	}
	if req.Status != nil {
		appt.Status = domain.AppointmentStatus(*req.Status)
	}
	if req.Notes != nil {
		appt.Notes = *req.Notes
	}

	if err := utils.ValidateAppointmentTimes(appt.StartTime, appt.EndTime); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.repository.UpdateAppointment(appt); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "appointment update failed, please try again")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "appointment updated", appt)
}

func (h *Handler) DeleteAppointment(w http.ResponseWriter, r *http.Request) {
	appt := r.Context().Value(AppointmentCtx).(*domain.Appointment)

	if err := h.repository.DeleteAppointment(appt.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "appointment deleted", nil)
}
