package handler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greencart-dev/greencart/backend/internal/domain"
)

func TestBuildSimulationPDF(t *testing.T) {
	result := &domain.SimulationResult{
		ID: 7,
		Inputs: domain.SimulationInputs{
			DriversAvailable:  2,
			StartTime:         "09:00",
			MaxHoursPerDriver: 8,
		},
		KPIs: domain.SimulationKPIs{
			TotalProfit: 880,
			Efficiency:  50,
			OnTime:      1,
			Late:        1,
			FuelCostBreakdown: domain.FuelCostBreakdown{
				BaseFuel:             100,
				HighTrafficSurcharge: 20,
			},
		},
		Assignments: []domain.Assignment{
			{OrderID: 1, DriverName: "Amit", RouteID: 1, OnTime: true, ProfitForOrder: 450},
			{OrderID: 2, DriverName: "Priya", RouteID: 2, OnTime: false, ProfitForOrder: 430},
		},
		CreatedAt: time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC),
	}

	pdfBytes, err := buildSimulationPDF(result)
	require.NoError(t, err)
	require.NotEmpty(t, pdfBytes)
	assert.Equal(t, "%PDF", string(pdfBytes[:4]))
}

func TestBuildSimulationPDFWithoutAssignments(t *testing.T) {
	result := &domain.SimulationResult{ID: 8}

	pdfBytes, err := buildSimulationPDF(result)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(pdfBytes[:4]))
}
