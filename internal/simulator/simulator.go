package simulator

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/greencart-dev/greencart/backend/internal/domain"
)

var ErrInsufficientData = errors.New("insufficient data to run simulation")

// Simulator assigns every pending order to a limited pool of drivers and
// scores the run. It holds an immutable snapshot of the records; all
// per-run state (driver clocks, accumulators) lives inside Run, so separate
// instances may run concurrently.
type Simulator struct {
	inputs  *domain.SimulationInputs
	drivers []*domain.Driver
	routes  map[int64]*domain.Route // routeId -> route
	orders  []*domain.Order
	skipped int
}

func New(inputs *domain.SimulationInputs, drivers []*domain.Driver, routes []*domain.Route, orders []*domain.Order) (*Simulator, error) {
	// only the first driversAvailable drivers participate; input order is
	// significant because it determines the round-robin
	pool := drivers
	if inputs.DriversAvailable < len(pool) {
		pool = pool[:inputs.DriversAvailable]
	}

	if len(pool) == 0 || len(routes) == 0 || len(orders) == 0 {
		return nil, ErrInsufficientData
	}

	routeMap := make(map[int64]*domain.Route, len(routes))
	for _, route := range routes {
		routeMap[route.RouteID] = route
	}

	return &Simulator{
		inputs:  inputs,
		drivers: pool,
		routes:  routeMap,
		orders:  orders,
	}, nil
}

func (s *Simulator) Run() (*domain.SimulationResult, error) {
	startMin, err := minutesFromMidnight(s.inputs.StartTime)
	if err != nil {
		return nil, err
	}

	// one clock per participating driver, advanced as orders are scheduled
	clocks := make([]float64, len(s.drivers))
	for i := range clocks {
		clocks[i] = startMin
	}

	var (
		totalProfit   float64
		onTime        int
		late          int
		baseFuel      float64
		highSurcharge float64
	)
	assignments := make([]domain.Assignment, 0, len(s.orders))
	s.skipped = 0

	for i, order := range s.orders {
		driverIndex := i % len(s.drivers)
		driver := s.drivers[driverIndex]

		route, ok := s.routes[order.RouteID]
		if !ok {
			// route existence is enforced when orders are created; an
			// unmatched order is skipped and contributes to nothing
			s.skipped++
			continue
		}

		// fatigue rule: drivers who worked more than 8 hours yesterday are
		// 30% slower today
		deliveryMinutes := route.BaseTimeMin
		if lastDayHours(driver) > 8 {
			deliveryMinutes = math.Ceil(deliveryMinutes * 1.3)
		}

		// hour cap: a driver who cannot fit this order keeps their clock,
		// the order goes down as late with no profit
		hoursWorkedSoFar := (clocks[driverIndex] - startMin) / 60
		if hoursWorkedSoFar+deliveryMinutes/60 > s.inputs.MaxHoursPerDriver {
			late++
			assignments = append(assignments, domain.Assignment{
				OrderID:    order.OrderID,
				DriverName: driver.Name,
				RouteID:    route.RouteID,
				OnTime:     false,
			})
			continue
		}

		orderStart := clocks[driverIndex]
		finish := orderStart + deliveryMinutes
		clocks[driverIndex] = finish

		// the deadline absorbs a 10 minute buffer over the nominal duration
		// but not the fatigue penalty
		deadline := orderStart + route.BaseTimeMin + 10
		deliveredOnTime := finish <= deadline

		fuelCost := route.DistanceKm * 5
		if route.TrafficLevel == domain.TrafficHigh {
			surcharge := route.DistanceKm * 2
			fuelCost += surcharge
			highSurcharge += surcharge
		}
		baseFuel += route.DistanceKm * 5

		var bonus, penalty float64
		if deliveredOnTime && order.ValueRs > 1000 {
			bonus = order.ValueRs * 0.1
		}
		if !deliveredOnTime {
			penalty = 50
		}

		profit := order.ValueRs + bonus - penalty - fuelCost
		totalProfit += profit

		if deliveredOnTime {
			onTime++
		} else {
			late++
		}

		assignments = append(assignments, domain.Assignment{
			OrderID:        order.OrderID,
			DriverName:     driver.Name,
			RouteID:        route.RouteID,
			OnTime:         deliveredOnTime,
			ProfitForOrder: profit,
		})
	}

	// efficiency is measured against the order count at run start, not the
	// matched count
	efficiency := 0
	if len(s.orders) > 0 {
		efficiency = int(math.Round(float64(onTime) / float64(len(s.orders)) * 100))
	}

	return &domain.SimulationResult{
		Inputs: *s.inputs,
		KPIs: domain.SimulationKPIs{
			TotalProfit: totalProfit,
			Efficiency:  efficiency,
			OnTime:      onTime,
			Late:        late,
			FuelCostBreakdown: domain.FuelCostBreakdown{
				BaseFuel:             baseFuel,
				HighTrafficSurcharge: highSurcharge,
			},
		},
		Assignments: assignments,
	}, nil
}

// Skipped reports how many orders of the last Run referenced an unknown
// route.
func (s *Simulator) Skipped() int {
	return s.skipped
}

// lastDayHours returns the hours the driver worked yesterday, i.e. the most
// recent entry of the 7 day history. An empty history counts as 0.
func lastDayHours(driver *domain.Driver) float64 {
	if n := len(driver.Past7DayHours); n > 0 {
		return driver.Past7DayHours[n-1]
	}
	return 0
}

func minutesFromMidnight(hhmm string) (float64, error) {
	parts := strings.SplitN(hhmm, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time %q, expected HH:MM", hhmm)
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", hhmm, err)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", hhmm, err)
	}
	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("invalid time %q, expected HH:MM", hhmm)
	}

	return float64(hours*60 + minutes), nil
}
