package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jricardo27/trip-explorer2-sub002/internal/app"
	"github.com/jricardo27/trip-explorer2-sub002/internal/clock"
	"github.com/jricardo27/trip-explorer2-sub002/internal/config"
	"github.com/jricardo27/trip-explorer2-sub002/internal/routing"
	"github.com/jricardo27/trip-explorer2-sub002/internal/storage/postgres"
	transporthttp "github.com/jricardo27/trip-explorer2-sub002/internal/transport/http"
	"github.com/jricardo27/trip-explorer2-sub002/migrations"
)

func main() {
	logger := log.Default()

	cfg, err := config.Load(logger)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	startupCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pool, err := pgxpool.New(startupCtx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("connect to db: %v", err)
	}
	defer pool.Close()

	if err := pool.Ping(startupCtx); err != nil {
		log.Fatalf("db ping: %v", err)
	}
	if err := migrations.Apply(startupCtx, pool); err != nil {
		log.Fatalf("apply migrations: %v", err)
	}

	clk := clock.NewSystem()
	scheduleRepo := postgres.NewScheduleRepository(pool)
	plannerRepo := postgres.NewPlannerRepository(pool)

	mux := transporthttp.NewRouter(transporthttp.Services{
		Planner: app.NewPlannerService(plannerRepo, routing.NewStraightLine()),
		Feasibility: app.NewFeasibilityService(scheduleRepo,
			app.WithLocation(cfg.Location),
			app.WithConcurrency(cfg.ValidationConcurrency),
		),
		Impact: app.NewImpactService(scheduleRepo, clk),
		Commit: app.NewCommitService(scheduleRepo, clk),
		DB:     pool,
	})
	handler := transporthttp.RequestLogger(transporthttp.CORS(cfg.CORSOrigins, mux), logger)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Printf("api listening on :%s (trip timezone %s)", cfg.Port, cfg.Location)

	srvErr := make(chan error, 1)
	go func() {
		srvErr <- server.ListenAndServe()
	}()

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("server error: %v", err)
		}
	case <-stopCtx.Done():
		log.Printf("shutdown signal received, stopping server")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Printf("server shutdown error: %v", err)
	}
	log.Printf("server stopped")
}
