package seed

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/greencart-dev/greencart/backend/internal/domain"
	"github.com/greencart-dev/greencart/backend/internal/repository"
)

// SeedFixtures imports the reference data set (routes.csv, orders.csv,
// drivers.json) shipped under internal/seed/data. Existing rows with the
// same business keys make the inserts fail; run against a fresh database.
func SeedFixtures(r *repository.Repository) {
	seedRoutes(r)
	seedOrders(r)
	seedDrivers(r)
}

func seedRoutes(r *repository.Repository) {
	records, err := readCSV("./internal/seed/data/routes.csv")
	if err != nil {
		slog.Error("failed to read routes.csv", "error", err)
		return
	}

	cnt := 0
	for _, record := range records {
		routeID, err1 := strconv.ParseInt(record["route_id"], 10, 64)
		distanceKm, err2 := strconv.ParseFloat(record["distance_km"], 64)
		baseTimeMin, err3 := strconv.ParseFloat(record["base_time_min"], 64)
		if err1 != nil || err2 != nil || err3 != nil {
			slog.Error("malformed route record", "record", record)
			continue
		}

		route := &domain.Route{
			RouteID:      routeID,
			DistanceKm:   distanceKm,
			TrafficLevel: domain.TrafficLevel(record["traffic_level"]),
			BaseTimeMin:  baseTimeMin,
		}
		if err := r.CreateRoute(route); err != nil {
			slog.Error("failed to insert route", "routeId", routeID, "error", err)
			continue
		}
		cnt++
	}

	slog.Info("routes seeded", "count", cnt)
}

func seedOrders(r *repository.Repository) {
	records, err := readCSV("./internal/seed/data/orders.csv")
	if err != nil {
		slog.Error("failed to read orders.csv", "error", err)
		return
	}

	cnt := 0
	for _, record := range records {
		orderID, err1 := strconv.ParseInt(record["order_id"], 10, 64)
		valueRs, err2 := strconv.ParseFloat(record["value_rs"], 64)
		routeID, err3 := strconv.ParseInt(record["route_id"], 10, 64)
		if err1 != nil || err2 != nil || err3 != nil {
			slog.Error("malformed order record", "record", record)
			continue
		}

		order := &domain.Order{
			OrderID:      orderID,
			ValueRs:      valueRs,
			RouteID:      routeID,
			DeliveryTime: record["delivery_time"],
		}
		if err := r.CreateOrder(order); err != nil {
			slog.Error("failed to insert order", "orderId", orderID, "error", err)
			continue
		}
		cnt++
	}

	slog.Info("orders seeded", "count", cnt)
}

func seedDrivers(r *repository.Repository) {
	file, err := os.Open("./internal/seed/data/drivers.json")
	if err != nil {
		slog.Error("failed to open drivers.json", "error", err)
		return
	}
	defer file.Close()

	var drivers []struct {
		Name              string    `json:"name"`
		CurrentShiftHours float64   `json:"currentShiftHours"`
		Past7DayHours     []float64 `json:"past7DayHours"`
	}
	if err := json.NewDecoder(file).Decode(&drivers); err != nil {
		slog.Error("failed to decode drivers.json", "error", err)
		return
	}

	cnt := 0
	for _, d := range drivers {
		driver := &domain.Driver{
			Name:              d.Name,
			CurrentShiftHours: d.CurrentShiftHours,
			Past7DayHours:     d.Past7DayHours,
		}
		if err := r.CreateDriver(driver); err != nil {
			slog.Error("failed to insert driver", "name", d.Name, "error", err)
			continue
		}
		cnt++
	}

	slog.Info("drivers seeded", "count", cnt)
}

func readCSV(path string) ([]map[string]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	header, err := reader.Read()
	if err != nil {
		return nil, err
	}

	records := make([]map[string]string, 0)
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		record := make(map[string]string, len(header))
		for i, name := range header {
			record[name] = row[i]
		}
		records = append(records, record)
	}

	return records, nil
}
