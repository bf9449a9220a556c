package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/greencart-dev/greencart/backend/internal/domain"
)

type orderRequest struct {
	OrderID      int64   `json:"orderId" validate:"required,gt=0"`
	ValueRs      float64 `json:"valueRs" validate:"gte=0"`
	RouteID      int64   `json:"routeId" validate:"required,gt=0"`
	DeliveryTime string  `json:"deliveryTime" validate:"required,datetime=15:04"`
}

// routeExists enforces the referential rule: an order may only point at a
// stored route. The simulation engine relies on this being checked here.
func (h *Handler) routeExists(w http.ResponseWriter, r *http.Request, routeID int64) bool {
	if _, err := h.repository.GetRouteByRouteID(routeID); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "referenced route does not exist")
		default:
			h.internalServerError(w, r, err)
		}
		return false
	}
	return true
}

func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req orderRequest

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if !h.routeExists(w, r, req.RouteID) {
		return
	}

	order := &domain.Order{
		OrderID:      req.OrderID,
		ValueRs:      req.ValueRs,
		RouteID:      req.RouteID,
		DeliveryTime: req.DeliveryTime,
	}

	if err := h.repository.CreateOrder(order); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "orders_order_id_key":
			h.errorResponse(w, r, "orderId already exists")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "order created", order)
}

func (h *Handler) GetAllOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.repository.GetAllOrders()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "orders fetched", orders)
}

func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	order := r.Context().Value(OrderCtx).(*domain.Order)
	h.successResponse(w, r, "order fetched", order)
}

func (h *Handler) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	order := r.Context().Value(OrderCtx).(*domain.Order)

	var req orderRequest

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if !h.routeExists(w, r, req.RouteID) {
		return
	}

	order.OrderID = req.OrderID
	order.ValueRs = req.ValueRs
	order.RouteID = req.RouteID
	order.DeliveryTime = req.DeliveryTime

	if err := h.repository.UpdateOrder(order); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "order was modified concurrently, please retry")
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "orders_order_id_key":
			h.errorResponse(w, r, "orderId already exists")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "order updated", order)
}

func (h *Handler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	order := r.Context().Value(OrderCtx).(*domain.Order)

	if err := h.repository.DeleteOrder(order.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "order deleted", nil)
}
