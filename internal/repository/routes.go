package repository

import (
	"context"
	"time"

	"github.com/greencart-dev/greencart/backend/internal/domain"
)

func (r *Repository) CreateRoute(route *domain.Route) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO routes (route_id, distance_km, traffic_level, base_time_min)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, version
	`

	args := []any{route.RouteID, route.DistanceKm, route.TrafficLevel, route.BaseTimeMin}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&route.ID, &route.CreatedAt, &route.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetRouteByID(id int64) (*domain.Route, error) {
	query := `
		SELECT route_id, distance_km, traffic_level, base_time_min, created_at, version
		FROM routes WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	route := &domain.Route{
		ID: id,
	}

	dst := []any{&route.RouteID, &route.DistanceKm, &route.TrafficLevel, &route.BaseTimeMin, &route.CreatedAt, &route.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return route, nil
}

// GetRouteByRouteID looks a route up by its business key, the one orders
// reference.
func (r *Repository) GetRouteByRouteID(routeID int64) (*domain.Route, error) {
	query := `
		SELECT id, distance_km, traffic_level, base_time_min, created_at, version
		FROM routes WHERE route_id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	route := &domain.Route{
		RouteID: routeID,
	}

	dst := []any{&route.ID, &route.DistanceKm, &route.TrafficLevel, &route.BaseTimeMin, &route.CreatedAt, &route.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, routeID).Scan(dst...); err != nil {
		return nil, err
	}

	return route, nil
}

func (r *Repository) GetAllRoutes() ([]*domain.Route, error) {
	query := `
		SELECT id, route_id, distance_km, traffic_level, base_time_min, created_at, version
		FROM routes ORDER BY id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	routes := make([]*domain.Route, 0)
	for rows.Next() {
		route := &domain.Route{}
		dst := []any{&route.ID, &route.RouteID, &route.DistanceKm, &route.TrafficLevel, &route.BaseTimeMin, &route.CreatedAt, &route.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		routes = append(routes, route)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return routes, nil
}

func (r *Repository) UpdateRoute(route *domain.Route) error {
	query := `
		UPDATE routes
		SET
			route_id = $1,
			distance_km = $2,
			traffic_level = $3,
			base_time_min = $4,
			version = version + 1
		WHERE id = $5 AND version = $6
		RETURNING created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{route.RouteID, route.DistanceKm, route.TrafficLevel, route.BaseTimeMin, route.ID, route.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&route.CreatedAt, &route.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteRoute(id int64) error {
	query := `
		DELETE FROM routes WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return nil
}
