package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/greencart-dev/greencart/backend/internal/domain"
)

type routeRequest struct {
	RouteID      int64   `json:"routeId" validate:"required,gt=0"`
	DistanceKm   float64 `json:"distanceKm" validate:"required,gt=0"`
	TrafficLevel string  `json:"trafficLevel" validate:"required,oneof=Low Medium High"`
	BaseTimeMin  float64 `json:"baseTimeMin" validate:"required,gt=0"`
}

func (h *Handler) CreateRoute(w http.ResponseWriter, r *http.Request) {
	var req routeRequest

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	route := &domain.Route{
		RouteID:      req.RouteID,
		DistanceKm:   req.DistanceKm,
		TrafficLevel: domain.TrafficLevel(req.TrafficLevel),
		BaseTimeMin:  req.BaseTimeMin,
	}

	if err := h.repository.CreateRoute(route); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "routes_route_id_key":
			h.errorResponse(w, r, "routeId already exists")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "route created", route)
}

func (h *Handler) GetAllRoutes(w http.ResponseWriter, r *http.Request) {
	routes, err := h.repository.GetAllRoutes()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "routes fetched", routes)
}

func (h *Handler) GetRoute(w http.ResponseWriter, r *http.Request) {
	route := r.Context().Value(RouteCtx).(*domain.Route)
	h.successResponse(w, r, "route fetched", route)
}

func (h *Handler) UpdateRoute(w http.ResponseWriter, r *http.Request) {
	route := r.Context().Value(RouteCtx).(*domain.Route)

	var req routeRequest

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	route.RouteID = req.RouteID
	route.DistanceKm = req.DistanceKm
	route.TrafficLevel = domain.TrafficLevel(req.TrafficLevel)
	route.BaseTimeMin = req.BaseTimeMin

	if err := h.repository.UpdateRoute(route); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "route was modified concurrently, please retry")
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "routes_route_id_key":
			h.errorResponse(w, r, "routeId already exists")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "route updated", route)
}

func (h *Handler) DeleteRoute(w http.ResponseWriter, r *http.Request) {
	route := r.Context().Value(RouteCtx).(*domain.Route)

	if err := h.repository.DeleteRoute(route.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "route deleted", nil)
}
