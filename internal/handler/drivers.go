package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/greencart-dev/greencart/backend/internal/domain"
)

type driverRequest struct {
	Name              string    `json:"name" validate:"required,min=1"`
	CurrentShiftHours float64   `json:"currentShiftHours" validate:"gte=0"`
	Past7DayHours     []float64 `json:"past7DayHours" validate:"required,len=7,dive,gte=0"`
}

func (h *Handler) CreateDriver(w http.ResponseWriter, r *http.Request) {
	var req driverRequest

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	driver := &domain.Driver{
		Name:              req.Name,
		CurrentShiftHours: req.CurrentShiftHours,
		Past7DayHours:     req.Past7DayHours,
	}

	if err := h.repository.CreateDriver(driver); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "driver created", driver)
}

func (h *Handler) GetAllDrivers(w http.ResponseWriter, r *http.Request) {
	drivers, err := h.repository.GetAllDrivers()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "drivers fetched", drivers)
}

func (h *Handler) GetDriver(w http.ResponseWriter, r *http.Request) {
	driver := r.Context().Value(DriverCtx).(*domain.Driver)
	h.successResponse(w, r, "driver fetched", driver)
}

func (h *Handler) UpdateDriver(w http.ResponseWriter, r *http.Request) {
	driver := r.Context().Value(DriverCtx).(*domain.Driver)

	var req driverRequest

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	driver.Name = req.Name
	driver.CurrentShiftHours = req.CurrentShiftHours
	driver.Past7DayHours = req.Past7DayHours

	if err := h.repository.UpdateDriver(driver); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "driver was modified concurrently, please retry")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "driver updated", driver)
}

func (h *Handler) DeleteDriver(w http.ResponseWriter, r *http.Request) {
	driver := r.Context().Value(DriverCtx).(*domain.Driver)

	if err := h.repository.DeleteDriver(driver.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "driver deleted", nil)
}
