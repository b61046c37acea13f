package handler

import (
	"net/http"

	"github.com/arborview-health/practice-manager/backend/internal/domain"
)

func (h *Handler) CreateExternalCalendar(w http.ResponseWriter, r *http.Request) {
	var req struct {
		StaffID int64  `json:"staffID" validate:"required"`
		Label   string `json:"label" validate:"required"`
		FeedURL string `json:"feedURL" validate:"required,url"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	cal := &domain.ExternalCalendar{
		StaffID: req.StaffID,
		Label:   req.Label,
		FeedURL: req.FeedURL,
	}

	if err := h.repository.CreateExternalCalendar(cal); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	// first sync runs inline so the calendar shows up populated; later
	// refreshes come from the periodic job
	if err := h.syncer.SyncCalendar(r.Context(), cal); err != nil {
		h.successResponse(w, r, "calendar connected, but the first sync failed; it will be retried automatically", cal)
		return
	}

	h.successResponse(w, r, "calendar connected", cal)
}

func (h *Handler) GetAllExternalCalendars(w http.ResponseWriter, r *http.Request) {
	calendars, err := h.repository.GetAllExternalCalendars()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "fetched external calendars", calendars)
}

func (h *Handler) DeleteExternalCalendar(w http.ResponseWriter, r *http.Request) {
	cal := r.Context().Value(ExternalCalendarCtx).(*domain.ExternalCalendar)

	if err := h.repository.DeleteExternalCalendar(cal.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "external calendar disconnected", nil)
}

func (h *Handler) SyncExternalCalendar(w http.ResponseWriter, r *http.Request) {
	cal := r.Context().Value(ExternalCalendarCtx).(*domain.ExternalCalendar)

	if err := h.syncer.SyncCalendar(r.Context(), cal); err != nil {
		h.errorResponse(w, r, "sync failed: "+err.Error())
		return
	}

	h.successResponse(w, r, "calendar synced", cal)
}
