package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/greencart-dev/greencart/backend/internal/config"
	"github.com/greencart-dev/greencart/backend/internal/repository"
	"github.com/greencart-dev/greencart/backend/internal/seed"
	"github.com/greencart-dev/greencart/backend/internal/utils"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int
	var n int

	flag.IntVar(&op, "op", 0, "operation (1: import fixture data, 2: insert random drivers, 3: insert random routes, 4: insert random orders)")
	flag.IntVar(&n, "n", 5, "number of records to insert")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	if err := godotenv.Load(); err != nil {
		logger.Info("no .env file found, using environment variables")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("failed to create database pool", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("failed to connect to database", "error", err)
		return
	}

	repo := repository.NewRepository(cfg, dbpool)

	switch op {
	case 0:
		slog.Error("no operation specified")
	case 1:
		seed.SeedFixtures(repo)
	case 2:
		if n <= 0 {
			slog.Error("invalid driver count")
			return
		}

		cnt := n
		for i := 0; i < n; i++ {
			driver := utils.GenerateRandomDriver()
			if err := repo.CreateDriver(driver); err != nil {
				slog.Error("failed to insert driver", slog.String("error", err.Error()))
				continue
			}
			cnt--
		}

		slog.Info("drivers inserted", slog.Int("count", n-cnt))
	case 3:
		if n <= 0 {
			slog.Error("invalid route count")
			return
		}

		// continue numbering after the highest stored routeId
		routes, err := repo.GetAllRoutes()
		if err != nil {
			slog.Error("failed to fetch routes", slog.String("error", err.Error()))
			return
		}
		var maxRouteID int64
		for _, route := range routes {
			if route.RouteID > maxRouteID {
				maxRouteID = route.RouteID
			}
		}

		cnt := n
		for i := 0; i < n; i++ {
			route := utils.GenerateRandomRoute(maxRouteID + int64(i) + 1)
			if err := repo.CreateRoute(route); err != nil {
				slog.Error("failed to insert route", slog.String("error", err.Error()))
				continue
			}
			cnt--
		}

		slog.Info("routes inserted", slog.Int("count", n-cnt))
	case 4:
		if n <= 0 {
			slog.Error("invalid order count")
			return
		}

		routes, err := repo.GetAllRoutes()
		if err != nil {
			slog.Error("failed to fetch routes", slog.String("error", err.Error()))
			return
		}
		if len(routes) == 0 {
			slog.Error("no routes to reference, seed routes first")
			return
		}
		routeIDs := make([]int64, 0, len(routes))
		for _, route := range routes {
			routeIDs = append(routeIDs, route.RouteID)
		}

		orders, err := repo.GetAllOrders()
		if err != nil {
			slog.Error("failed to fetch orders", slog.String("error", err.Error()))
			return
		}
		var maxOrderID int64
		for _, order := range orders {
			if order.OrderID > maxOrderID {
				maxOrderID = order.OrderID
			}
		}

		cnt := n
		for i := 0; i < n; i++ {
			order := utils.GenerateRandomOrder(maxOrderID+int64(i)+1, routeIDs)
			if err := repo.CreateOrder(order); err != nil {
				slog.Error("failed to insert order", slog.String("error", err.Error()))
				continue
			}
			cnt--
		}

		slog.Info("orders inserted", slog.Int("count", n-cnt))
	default:
		slog.Error("unknown operation")
	}
}
