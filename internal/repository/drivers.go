package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/greencart-dev/greencart/backend/internal/domain"
)

// past_7_day_hours is stored as jsonb so the record round-trips as the
// clients send it.

func (r *Repository) CreateDriver(driver *domain.Driver) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	hours, err := json.Marshal(driver.Past7DayHours)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO drivers (name, current_shift_hours, past_7_day_hours)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, version
	`

	args := []any{driver.Name, driver.CurrentShiftHours, hours}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&driver.ID, &driver.CreatedAt, &driver.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetDriverByID(id int64) (*domain.Driver, error) {
	query := `
		SELECT name, current_shift_hours, past_7_day_hours, created_at, version
		FROM drivers WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	driver := &domain.Driver{
		ID: id,
	}

	var hours []byte
	dst := []any{&driver.Name, &driver.CurrentShiftHours, &hours, &driver.CreatedAt, &driver.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(hours, &driver.Past7DayHours); err != nil {
		return nil, err
	}

	return driver, nil
}

func (r *Repository) GetAllDrivers() ([]*domain.Driver, error) {
	query := `
		SELECT id, name, current_shift_hours, past_7_day_hours, created_at, version
		FROM drivers ORDER BY id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	drivers := make([]*domain.Driver, 0)
	for rows.Next() {
		driver := &domain.Driver{}
		var hours []byte
		dst := []any{&driver.ID, &driver.Name, &driver.CurrentShiftHours, &hours, &driver.CreatedAt, &driver.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(hours, &driver.Past7DayHours); err != nil {
			return nil, err
		}
		drivers = append(drivers, driver)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return drivers, nil
}

func (r *Repository) UpdateDriver(driver *domain.Driver) error {
	query := `
		UPDATE drivers
		SET
			name = $1,
			current_shift_hours = $2,
			past_7_day_hours = $3,
			version = version + 1
		WHERE id = $4 AND version = $5
		RETURNING created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	hours, err := json.Marshal(driver.Past7DayHours)
	if err != nil {
		return err
	}

	args := []any{driver.Name, driver.CurrentShiftHours, hours, driver.ID, driver.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&driver.CreatedAt, &driver.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteDriver(id int64) error {
	query := `
		DELETE FROM drivers WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return nil
}
