package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/greencart-dev/greencart/backend/internal/domain"
)

// InsertSimulationResult persists a report and its assignments in one
// transaction, so a report is either visible whole or not at all. Results
// are append-only; there is no update path.
func (r *Repository) InsertSimulationResult(result *domain.SimulationResult) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		INSERT INTO simulation_results (
			drivers_available, start_time, max_hours_per_driver,
			total_profit, efficiency, on_time, late,
			base_fuel, high_traffic_surcharge
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, version
	`

	args := []any{
		result.Inputs.DriversAvailable,
		result.Inputs.StartTime,
		result.Inputs.MaxHoursPerDriver,
		result.KPIs.TotalProfit,
		result.KPIs.Efficiency,
		result.KPIs.OnTime,
		result.KPIs.Late,
		result.KPIs.FuelCostBreakdown.BaseFuel,
		result.KPIs.FuelCostBreakdown.HighTrafficSurcharge,
	}
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&result.ID, &result.CreatedAt, &result.Version); err != nil {
		return err
	}

	for i, assignment := range result.Assignments {
		query := `
			INSERT INTO simulation_assignments (
				simulation_result_id, position, order_id, driver_name, route_id, on_time, profit_for_order
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`

		args := []any{result.ID, i, assignment.OrderID, assignment.DriverName, assignment.RouteID, assignment.OnTime, assignment.ProfitForOrder}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetSimulationResultByID(id int64) (*domain.SimulationResult, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT
			sr.drivers_available, sr.start_time, sr.max_hours_per_driver,
			sr.total_profit, sr.efficiency, sr.on_time, sr.late,
			sr.base_fuel, sr.high_traffic_surcharge,
			sr.created_at, sr.version,
			a.order_id, a.driver_name, a.route_id, a.on_time, a.profit_for_order
		FROM simulation_results sr
		LEFT JOIN simulation_assignments a ON sr.id = a.simulation_result_id
		WHERE sr.id = $1
		ORDER BY a.position
	`

	rows, err := r.dbpool.QueryContext(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := &domain.SimulationResult{
		ID:          id,
		Assignments: make([]domain.Assignment, 0),
	}
	found := false

	for rows.Next() {
		var row struct {
			orderID        sql.NullInt64
			driverName     sql.NullString
			routeID        sql.NullInt64
			onTime         sql.NullBool
			profitForOrder sql.NullFloat64
		}

		dst := []any{
			&result.Inputs.DriversAvailable,
			&result.Inputs.StartTime,
			&result.Inputs.MaxHoursPerDriver,
			&result.KPIs.TotalProfit,
			&result.KPIs.Efficiency,
			&result.KPIs.OnTime,
			&result.KPIs.Late,
			&result.KPIs.FuelCostBreakdown.BaseFuel,
			&result.KPIs.FuelCostBreakdown.HighTrafficSurcharge,
			&result.CreatedAt,
			&result.Version,
			&row.orderID,
			&row.driverName,
			&row.routeID,
			&row.onTime,
			&row.profitForOrder,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		found = true

		if !row.orderID.Valid {
			// a run whose orders all referenced unknown routes has no
			// assignments
			continue
		}

		result.Assignments = append(result.Assignments, domain.Assignment{
			OrderID:        row.orderID.Int64,
			DriverName:     row.driverName.String,
			RouteID:        row.routeID.Int64,
			OnTime:         row.onTime.Bool,
			ProfitForOrder: row.profitForOrder.Float64,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if !found {
		return nil, sql.ErrNoRows
	}

	return result, nil
}

// GetRecentSimulationResults returns the latest limit reports, newest
// first, each with its assignments.
func (r *Repository) GetRecentSimulationResults(limit int) ([]*domain.SimulationResult, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT
			sr.id,
			sr.drivers_available, sr.start_time, sr.max_hours_per_driver,
			sr.total_profit, sr.efficiency, sr.on_time, sr.late,
			sr.base_fuel, sr.high_traffic_surcharge,
			sr.created_at, sr.version,
			a.order_id, a.driver_name, a.route_id, a.on_time, a.profit_for_order
		FROM (
			SELECT * FROM simulation_results ORDER BY created_at DESC, id DESC LIMIT $1
		) sr
		LEFT JOIN simulation_assignments a ON sr.id = a.simulation_result_id
		ORDER BY sr.created_at DESC, sr.id DESC, a.position
	`

	rows, err := r.dbpool.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := make([]*domain.SimulationResult, 0, limit)
	var current *domain.SimulationResult

	for rows.Next() {
		result := &domain.SimulationResult{
			Assignments: make([]domain.Assignment, 0),
		}
		var row struct {
			orderID        sql.NullInt64
			driverName     sql.NullString
			routeID        sql.NullInt64
			onTime         sql.NullBool
			profitForOrder sql.NullFloat64
		}

		dst := []any{
			&result.ID,
			&result.Inputs.DriversAvailable,
			&result.Inputs.StartTime,
			&result.Inputs.MaxHoursPerDriver,
			&result.KPIs.TotalProfit,
			&result.KPIs.Efficiency,
			&result.KPIs.OnTime,
			&result.KPIs.Late,
			&result.KPIs.FuelCostBreakdown.BaseFuel,
			&result.KPIs.FuelCostBreakdown.HighTrafficSurcharge,
			&result.CreatedAt,
			&result.Version,
			&row.orderID,
			&row.driverName,
			&row.routeID,
			&row.onTime,
			&row.profitForOrder,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}

		if current == nil || current.ID != result.ID {
			current = result
			results = append(results, current)
		}

		if !row.orderID.Valid {
			continue
		}

		current.Assignments = append(current.Assignments, domain.Assignment{
			OrderID:        row.orderID.Int64,
			DriverName:     row.driverName.String,
			RouteID:        row.routeID.Int64,
			OnTime:         row.onTime.Bool,
			ProfitForOrder: row.profitForOrder.Float64,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return results, nil
}
