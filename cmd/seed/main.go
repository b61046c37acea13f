package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/arborview-health/practice-manager/backend/internal/config"
	"github.com/arborview-health/practice-manager/backend/internal/domain"
	"github.com/arborview-health/practice-manager/backend/internal/repository"
	"github.com/arborview-health/practice-manager/backend/internal/seed"
	"github.com/arborview-health/practice-manager/backend/internal/utils"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int
	var n int
	var staffID int64
	var timezone string

	flag.IntVar(&op, "op", 0, "operation (1: insert random users, 2: insert random availability, 3: insert random series, 4: insert random appointments, 5: insert the demo practice)")
	flag.IntVar(&n, "n", 5, "number of records to insert")
	flag.Int64Var(&staffID, "staff-id", 0, "staff member to attach series or appointments to")
	flag.StringVar(&timezone, "timezone", "America/New_York", "timezone for generated series")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

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

	// sql.Open does not dial, so ping explicitly to fail fast
	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("failed to reach the database", "error", err)
		return
	}

	repo := repository.NewRepository(cfg, dbpool)

	switch op {
	case 0:
		slog.Error("no operation specified")
	case 1:
		if n <= 0 {
			slog.Error("please pass a positive user count")
		} else {
			cnt := n
			for i := 0; i < n; i++ {
				user, err := utils.GenerateRandomUser(cfg.Seed.User.Password, cfg.Email.UserDomain)
				if err != nil {
					slog.Error("failed to generate a random user", slog.String("error", err.Error()))
					continue
				}

				if err := repo.CreateUser(user); err != nil {
					slog.Error("failed to insert user", slog.String("error", err.Error()))
					continue
				}

				cnt--
			}

			slog.Info("inserted users", slog.Int("count", n-cnt))
		}
	case 2:
		if staffID <= 0 {
			slog.Error("please pass a valid staff ID")
			return
		}

		template := &domain.AvailabilityTemplate{
			StaffID: staffID,
			Windows: utils.GenerateRandomAvailabilityWindows(),
		}
		if err := repo.ReplaceAvailabilityTemplate(template); err != nil {
			slog.Error("failed to insert availability template", slog.String("error", err.Error()))
			return
		}

		slog.Info("inserted availability template", slog.Int64("staff_id", staffID))
	case 3:
		if staffID <= 0 {
			slog.Error("please pass a valid staff ID")
			return
		}
		if n <= 0 {
			slog.Error("please pass a positive series count")
			return
		}

		cnt := n
		for i := 0; i < n; i++ {
			series := utils.GenerateRandomSeries(staffID, timezone)
			if err := repo.CreateSeries(series); err != nil {
				slog.Error("failed to insert series", slog.String("error", err.Error()))
				continue
			}

			cnt--
		}

		slog.Info("inserted series", slog.Int("count", n-cnt))
	case 4:
		if staffID <= 0 {
			slog.Error("please pass a valid staff ID")
			return
		}
		if n <= 0 {
			slog.Error("please pass a positive appointment count")
			return
		}

		cnt := n
		for i := 0; i < n; i++ {
			appt := utils.GenerateRandomAppointment(staffID)
			if err := repo.CreateAppointment(appt); err != nil {
				slog.Error("failed to insert appointment", slog.String("error", err.Error()))
				continue
			}

			cnt--
		}

		slog.Info("inserted appointments", slog.Int("count", n-cnt))
	case 5:
		seed.SeedDemoPractice(repo)
	default:
		slog.Error("unknown operation")
	}
}
