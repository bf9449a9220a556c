package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greencart-dev/greencart/backend/internal/domain"
)

func expectRecordSnapshot(mock sqlmock.Sqlmock) {
	now := time.Now()

	mock.ExpectQuery("FROM drivers").WillReturnRows(
		sqlmock.NewRows([]string{"id", "name", "current_shift_hours", "past_7_day_hours", "created_at", "version"}).
			AddRow(1, "Amit", 6.0, []byte("[7,7,7,7,7,7,6]"), now, 1))
	mock.ExpectQuery("FROM routes").WillReturnRows(
		sqlmock.NewRows([]string{"id", "route_id", "distance_km", "traffic_level", "base_time_min", "created_at", "version"}).
			AddRow(1, 1, 10.0, "Low", 30.0, now, 1))
	mock.ExpectQuery("FROM orders").WillReturnRows(
		sqlmock.NewRows([]string{"id", "order_id", "value_rs", "route_id", "delivery_time", "created_at", "version"}).
			AddRow(1, 1, 500.0, 1, "12:00", now, 1))
}

func TestRunSimulation(t *testing.T) {
	h, mock := newTestHandler(t)

	expectRecordSnapshot(mock)
	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO simulation_results").
		WithArgs(1, "09:00", 8.0, 450.0, 100, 1, 0, 50.0, 0.0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "version"}).AddRow(1, time.Now(), 1))
	mock.ExpectExec("INSERT INTO simulation_assignments").
		WithArgs(int64(1), 0, int64(1), "Amit", int64(1), true, 450.0).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	body := `{"driversAvailable": 1, "startTime": "09:00", "maxHoursPerDriver": 8}`
	req := httptest.NewRequest("POST", "/simulations/", strings.NewReader(body))
	req.AddCookie(authCookie(t, h, domain.RoleManager))
	rec, resp := doRequest(h, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, resp.Success, "message: %s", resp.Message)
	assert.Equal(t, "simulation complete", resp.Message)

	raw, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var result domain.SimulationResult
	require.NoError(t, json.Unmarshal(raw, &result))

	assert.Equal(t, int64(1), result.ID)
	assert.Equal(t, 450.0, result.KPIs.TotalProfit)
	assert.Equal(t, 100, result.KPIs.Efficiency)
	require.Len(t, result.Assignments, 1)
	assert.Equal(t, "Amit", result.Assignments[0].DriverName)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRunSimulationWithoutRecords(t *testing.T) {
	h, mock := newTestHandler(t)

	now := time.Now()
	mock.ExpectQuery("FROM drivers").WillReturnRows(
		sqlmock.NewRows([]string{"id", "name", "current_shift_hours", "past_7_day_hours", "created_at", "version"}))
	mock.ExpectQuery("FROM routes").WillReturnRows(
		sqlmock.NewRows([]string{"id", "route_id", "distance_km", "traffic_level", "base_time_min", "created_at", "version"}).
			AddRow(1, 1, 10.0, "Low", 30.0, now, 1))
	mock.ExpectQuery("FROM orders").WillReturnRows(
		sqlmock.NewRows([]string{"id", "order_id", "value_rs", "route_id", "delivery_time", "created_at", "version"}).
			AddRow(1, 1, 500.0, 1, "12:00", now, 1))

	body := `{"driversAvailable": 1, "startTime": "09:00", "maxHoursPerDriver": 8}`
	req := httptest.NewRequest("POST", "/simulations/", strings.NewReader(body))
	req.AddCookie(authCookie(t, h, domain.RoleManager))
	rec, resp := doRequest(h, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, resp.Success)
	assert.Equal(t, "insufficient data to run simulation", resp.Message)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRunSimulationValidatesInputs(t *testing.T) {
	h, _ := newTestHandler(t)

	testCases := []struct {
		name string
		body string
	}{
		{"zero drivers", `{"driversAvailable": 0, "startTime": "09:00", "maxHoursPerDriver": 8}`},
		{"bad start time", `{"driversAvailable": 1, "startTime": "9am", "maxHoursPerDriver": 8}`},
		{"zero max hours", `{"driversAvailable": 1, "startTime": "09:00", "maxHoursPerDriver": 0}`},
		{"not json", `drivers=1`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/simulations/", strings.NewReader(tc.body))
			req.AddCookie(authCookie(t, h, domain.RoleManager))
			rec, resp := doRequest(h, req)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.False(t, resp.Success)
		})
	}
}

func TestGetSimulationHistoryRejectsBadLimit(t *testing.T) {
	h, _ := newTestHandler(t)

	for _, limit := range []string{"0", "-3", "ten"} {
		req := httptest.NewRequest("GET", "/simulations/?limit="+limit, nil)
		req.AddCookie(authCookie(t, h, domain.RoleViewer))
		_, resp := doRequest(h, req)

		assert.False(t, resp.Success, "limit %s", limit)
		assert.Equal(t, "invalid limit", resp.Message, "limit %s", limit)
	}
}

func TestGetSimulationResultNotFound(t *testing.T) {
	h, mock := newTestHandler(t)

	mock.ExpectQuery("FROM simulation_results sr").
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{
			"drivers_available", "start_time", "max_hours_per_driver",
			"total_profit", "efficiency", "on_time", "late",
			"base_fuel", "high_traffic_surcharge",
			"created_at", "version",
			"order_id", "driver_name", "route_id", "on_time", "profit_for_order",
		}))

	req := httptest.NewRequest("GET", "/simulations/99/", nil)
	req.AddCookie(authCookie(t, h, domain.RoleViewer))
	rec, resp := doRequest(h, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, resp.Success)
	assert.Equal(t, "simulation not found", resp.Message)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExportSimulationResult(t *testing.T) {
	h, mock := newTestHandler(t)

	rows := sqlmock.NewRows([]string{
		"drivers_available", "start_time", "max_hours_per_driver",
		"total_profit", "efficiency", "on_time", "late",
		"base_fuel", "high_traffic_surcharge",
		"created_at", "version",
		"order_id", "driver_name", "route_id", "on_time", "profit_for_order",
	}).
		AddRow(1, "09:00", 8.0, 450.0, 100, 1, 0, 50.0, 0.0, time.Now(), 1, 1, "Amit", 1, true, 450.0)

	mock.ExpectQuery("FROM simulation_results sr").
		WithArgs(int64(7)).
		WillReturnRows(rows)

	req := httptest.NewRequest("GET", "/simulations/7/export", nil)
	req.AddCookie(authCookie(t, h, domain.RoleViewer))
	rec := httptest.NewRecorder()
	h.Mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "simulation_7.pdf")
	assert.Equal(t, "%PDF", rec.Body.String()[:4])
	require.NoError(t, mock.ExpectationsWereMet())
}
