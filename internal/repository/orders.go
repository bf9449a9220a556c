package repository

import (
	"context"
	"time"

	"github.com/greencart-dev/greencart/backend/internal/domain"
)

func (r *Repository) CreateOrder(order *domain.Order) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO orders (order_id, value_rs, route_id, delivery_time)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, version
	`

	args := []any{order.OrderID, order.ValueRs, order.RouteID, order.DeliveryTime}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&order.ID, &order.CreatedAt, &order.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetOrderByID(id int64) (*domain.Order, error) {
	query := `
		SELECT order_id, value_rs, route_id, delivery_time, created_at, version
		FROM orders WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	order := &domain.Order{
		ID: id,
	}

	dst := []any{&order.OrderID, &order.ValueRs, &order.RouteID, &order.DeliveryTime, &order.CreatedAt, &order.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return order, nil
}

func (r *Repository) GetAllOrders() ([]*domain.Order, error) {
	query := `
		SELECT id, order_id, value_rs, route_id, delivery_time, created_at, version
		FROM orders ORDER BY id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]*domain.Order, 0)
	for rows.Next() {
		order := &domain.Order{}
		dst := []any{&order.ID, &order.OrderID, &order.ValueRs, &order.RouteID, &order.DeliveryTime, &order.CreatedAt, &order.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}

func (r *Repository) UpdateOrder(order *domain.Order) error {
	query := `
		UPDATE orders
		SET
			order_id = $1,
			value_rs = $2,
			route_id = $3,
			delivery_time = $4,
			version = version + 1
		WHERE id = $5 AND version = $6
		RETURNING created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{order.OrderID, order.ValueRs, order.RouteID, order.DeliveryTime, order.ID, order.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&order.CreatedAt, &order.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteOrder(id int64) error {
	query := `
		DELETE FROM orders WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return nil
}
