package domain

import "time"

// SimulationInputs are the run parameters as supplied by the caller. They
// are persisted with every result so a report is reproducible on its own.
type SimulationInputs struct {
	DriversAvailable  int     `json:"driversAvailable"`
	StartTime         string  `json:"startTime"` // "HH:MM"
	MaxHoursPerDriver float64 `json:"maxHoursPerDriver"`
}

type FuelCostBreakdown struct {
	BaseFuel             float64 `json:"baseFuel"`
	HighTrafficSurcharge float64 `json:"highTrafficSurcharge"`
}

type SimulationKPIs struct {
	TotalProfit       float64           `json:"totalProfit"`
	Efficiency        int               `json:"efficiency"` // percentage, rounded
	OnTime            int               `json:"onTime"`
	Late              int               `json:"late"`
	FuelCostBreakdown FuelCostBreakdown `json:"fuelCostBreakdown"`
}

type Assignment struct {
	OrderID        int64   `json:"orderId"`
	DriverName     string  `json:"driverName"`
	RouteID        int64   `json:"routeId"`
	OnTime         bool    `json:"onTime"`
	ProfitForOrder float64 `json:"profitForOrder"`
}

// SimulationResult is append-only: it is written once per run and never
// updated afterwards. The JSON layout is consumed by dashboard clients and
// must stay stable.
type SimulationResult struct {
	ID          int64            `json:"id"`
	Inputs      SimulationInputs `json:"inputs"`
	KPIs        SimulationKPIs   `json:"kpis"`
	Assignments []Assignment     `json:"assignments"`
	CreatedAt   time.Time        `json:"createdAt"`
	Version     int32            `json:"-"`
}
