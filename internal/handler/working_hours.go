package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/arborview-health/practice-manager/backend/internal/calendar"
	"github.com/arborview-health/practice-manager/backend/internal/domain"
)

func (h *Handler) GetMyWorkingHours(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	pref, err := h.repository.GetWorkingHours(myInfo.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "fetched working hours", pref)
}

// UpdateMyWorkingHours changes one bound of the viewer's grid. The edited
// bound always wins; the other bound is pushed if the two would end up less
// than the minimum gap apart. The response carries the stored result so the
// client can show what actually took effect.
func (h *Handler) UpdateMyWorkingHours(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	var req struct {
		StartHour *int `json:"startHour" validate:"omitempty,min=0,max=24"`
		EndHour   *int `json:"endHour" validate:"omitempty,min=0,max=24"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if req.StartHour == nil && req.EndHour == nil {
		h.errorResponse(w, r, "nothing to update")
		return
	}

	pref, err := h.repository.GetWorkingHours(myInfo.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if req.StartHour != nil {
		pref.StartHour = *req.StartHour
		calendar.ClampWorkingHours(pref, calendar.BoundStart)
	}
	if req.EndHour != nil {
		pref.EndHour = *req.EndHour
		calendar.ClampWorkingHours(pref, calendar.BoundEnd)
	}

	if err := h.repository.UpsertWorkingHours(pref); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "working hours update failed, please try again")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "working hours updated", pref)
}
