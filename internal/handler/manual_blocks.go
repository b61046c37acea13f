package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/arborview-health/practice-manager/backend/internal/domain"
	"github.com/arborview-health/practice-manager/backend/internal/utils"
)

func (h *Handler) CreateManualBlock(w http.ResponseWriter, r *http.Request) {
	var req struct {
		StaffID   int64     `json:"staffID" validate:"required"`
		StartTime time.Time `json:"startTime" validate:"required"`
		EndTime   time.Time `json:"endTime" validate:"required"`
		Label     string    `json:"label" validate:"required"`
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

	block := &domain.ManualBlock{
		StaffID:   req.StaffID,
		StartTime: req.StartTime.UTC(),
		EndTime:   req.EndTime.UTC(),
		Label:     req.Label,
	}

	if err := h.repository.CreateManualBlock(block); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "blocked time created", block)
}

func (h *Handler) UpdateManualBlock(w http.ResponseWriter, r *http.Request) {
	var req struct {
		StartTime *time.Time `json:"startTime"`
		EndTime   *time.Time `json:"endTime"`
		Label     *string    `json:"label"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	block := r.Context().Value(ManualBlockCtx).(*domain.ManualBlock)

	if req.StartTime != nil {
		block.StartTime = req.StartTime.UTC()
	}
	if req.EndTime != nil {
		block.EndTime = req.EndTime.UTC()
	}
	if req.Label != nil {
		block.Label = *req.Label
	}

	if err := utils.ValidateAppointmentTimes(block.StartTime, block.EndTime); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.repository.UpdateManualBlock(block); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "blocked time update failed, please try again")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "blocked time updated", block)
}

func (h *Handler) DeleteManualBlock(w http.ResponseWriter, r *http.Request) {
	block := r.Context().Value(ManualBlockCtx).(*domain.ManualBlock)

	if err := h.repository.DeleteManualBlock(block.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "blocked time deleted", nil)
}
