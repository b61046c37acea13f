package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/arborview-health/practice-manager/backend/internal/domain"
	"github.com/arborview-health/practice-manager/backend/internal/utils"
)

func (h *Handler) GetAvailabilityTemplate(w http.ResponseWriter, r *http.Request) {
	staff := r.Context().Value(StaffInfoCtx).(*domain.User)

	template, err := h.repository.GetAvailabilityTemplate(staff.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "fetched availability template", template)
}

// ReplaceAvailabilityTemplate swaps the staff member's weekly availability
// wholesale. Overlapping windows on the same weekday are rejected here so
// the projection code never sees them.
func (h *Handler) ReplaceAvailabilityTemplate(w http.ResponseWriter, r *http.Request) {
	staff := r.Context().Value(StaffInfoCtx).(*domain.User)

	var req struct {
		Windows []domain.AvailabilityWindow `json:"windows" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := utils.ValidateAvailabilityWindows(req.Windows); err != nil {
		h.badRequest(w, r, err)
		return
	}

	template := &domain.AvailabilityTemplate{
		StaffID: staff.ID,
		Windows: req.Windows,
	}

	if err := h.repository.ReplaceAvailabilityTemplate(template); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "template update failed, please try again")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "availability template updated", template)
}
