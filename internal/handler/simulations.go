package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/greencart-dev/greencart/backend/internal/domain"
	"github.com/greencart-dev/greencart/backend/internal/simulator"
)

// RunSimulation is the what-if entry point: it snapshots the records,
// hands them to the allocation engine and persists the resulting report.
// The records are fetched exactly once; the engine never touches storage.
func (h *Handler) RunSimulation(w http.ResponseWriter, r *http.Request) {
	var req struct {
		DriversAvailable  int     `json:"driversAvailable" validate:"required,gt=0"`
		StartTime         string  `json:"startTime" validate:"required,datetime=15:04"`
		MaxHoursPerDriver float64 `json:"maxHoursPerDriver" validate:"required,gt=0"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	drivers, err := h.repository.GetAllDrivers()
	if err != nil {
		h.metrics.SimulationsTotal.WithLabelValues("error").Inc()
		h.internalServerError(w, r, err)
		return
	}
	routes, err := h.repository.GetAllRoutes()
	if err != nil {
		h.metrics.SimulationsTotal.WithLabelValues("error").Inc()
		h.internalServerError(w, r, err)
		return
	}
	orders, err := h.repository.GetAllOrders()
	if err != nil {
		h.metrics.SimulationsTotal.WithLabelValues("error").Inc()
		h.internalServerError(w, r, err)
		return
	}

	inputs := &domain.SimulationInputs{
		DriversAvailable:  req.DriversAvailable,
		StartTime:         req.StartTime,
		MaxHoursPerDriver: req.MaxHoursPerDriver,
	}

	sim, err := simulator.New(inputs, drivers, routes, orders)
	if err != nil {
		switch {
		case errors.Is(err, simulator.ErrInsufficientData):
			h.metrics.SimulationsTotal.WithLabelValues("insufficient_data").Inc()
			h.errorResponse(w, r, "insufficient data to run simulation")
		default:
			h.metrics.SimulationsTotal.WithLabelValues("error").Inc()
			h.internalServerError(w, r, err)
		}
		return
	}

	result, err := sim.Run()
	if err != nil {
		h.metrics.SimulationsTotal.WithLabelValues("error").Inc()
		h.internalServerError(w, r, err)
		return
	}

	if skipped := sim.Skipped(); skipped > 0 {
		// preserved behavior: orders without a matching route are silently
		// dropped from the report, so at least make the drop visible here
		slog.Warn("orders skipped during simulation", "count", skipped)
		h.metrics.OrdersSkippedTotal.Add(float64(skipped))
	}

	if err := h.repository.InsertSimulationResult(result); err != nil {
		h.metrics.SimulationsTotal.WithLabelValues("error").Inc()
		h.internalServerError(w, r, err)
		return
	}

	h.metrics.SimulationsTotal.WithLabelValues("ok").Inc()
	h.successResponse(w, r, "simulation complete", result)
}

func (h *Handler) GetSimulationHistory(w http.ResponseWriter, r *http.Request) {
	limit := h.config.Simulation.HistoryLimit
	if limitParam := r.URL.Query().Get("limit"); limitParam != "" {
		parsed, err := strconv.Atoi(limitParam)
		if err != nil || parsed <= 0 {
			h.errorResponse(w, r, "invalid limit")
			return
		}
		limit = parsed
	}

	results, err := h.repository.GetRecentSimulationResults(limit)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "simulation history fetched", results)
}

func (h *Handler) GetSimulationResult(w http.ResponseWriter, r *http.Request) {
	result := r.Context().Value(SimulationResultCtx).(*domain.SimulationResult)
	h.successResponse(w, r, "simulation fetched", result)
}
