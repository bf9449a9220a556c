package repository

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greencart-dev/greencart/backend/internal/domain"
)

func TestCreateDriverEncodesHistoryAsJSON(t *testing.T) {
	repo, mock := newTestRepository(t)

	driver := &domain.Driver{
		Name:              "Amit",
		CurrentShiftHours: 6,
		Past7DayHours:     []float64{6, 8, 7.5, 7, 6, 10, 9},
	}

	mock.ExpectQuery("INSERT INTO drivers").
		WithArgs("Amit", 6.0, []byte("[6,8,7.5,7,6,10,9]")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "version"}).AddRow(3, time.Now(), 1))

	require.NoError(t, repo.CreateDriver(driver))
	assert.Equal(t, int64(3), driver.ID)
	assert.Equal(t, int32(1), driver.Version)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetDriverByIDDecodesHistory(t *testing.T) {
	repo, mock := newTestRepository(t)

	rows := sqlmock.NewRows([]string{"name", "current_shift_hours", "past_7_day_hours", "created_at", "version"}).
		AddRow("Amit", 6.0, []byte("[6,8,7.5,7,6,10,9]"), time.Now(), 1)

	mock.ExpectQuery("FROM drivers").
		WithArgs(int64(3)).
		WillReturnRows(rows)

	driver, err := repo.GetDriverByID(3)
	require.NoError(t, err)

	assert.Equal(t, "Amit", driver.Name)
	assert.Equal(t, []float64{6, 8, 7.5, 7, 6, 10, 9}, driver.Past7DayHours)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateDriverChecksVersion(t *testing.T) {
	repo, mock := newTestRepository(t)

	driver := &domain.Driver{
		ID:            3,
		Name:          "Amit",
		Past7DayHours: []float64{6, 8, 7.5, 7, 6, 10, 9},
		Version:       1,
	}

	mock.ExpectQuery("UPDATE drivers").
		WithArgs("Amit", 0.0, []byte("[6,8,7.5,7,6,10,9]"), int64(3), int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "version"}).AddRow(time.Now(), 2))

	require.NoError(t, repo.UpdateDriver(driver))
	assert.Equal(t, int32(2), driver.Version)
	require.NoError(t, mock.ExpectationsWereMet())
}
