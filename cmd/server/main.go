package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/comfortcurators/portal/internal/server"
	"github.com/comfortcurators/portal/pkg/configuration"
	"github.com/comfortcurators/portal/pkg/logging"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			configuration.Use().Unload()
			log.Println(r)
			debug.PrintStack()
			os.Exit(1)
		}
	}()

	conf := configuration.Use()
	defer conf.Unload()
	logger := conf.Logger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Set up OpenTelemetry if enabled
	if conf.OpenTelemetry.Enabled {
		tracingCleanup := logging.SetupTracing(ctx, conf.OpenTelemetry.ServiceName, conf.OpenTelemetry.TempoURL)
		defer tracingCleanup()
		logger.Info("OpenTelemetry tracing enabled, exporting to Tempo at " + conf.OpenTelemetry.TempoURL)
	}

	var pool *pgxpool.Pool
	if !conf.InMemory() {
		connectCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		var err error
		pool, err = pgxpool.New(connectCtx, conf.Database.Opts)
		cancel()
		if err != nil {
			panic(err)
		}
		defer pool.Close()
	}

	app, err := server.NewApplication(conf, pool, logger)
	if err != nil {
		log.Fatalf("failed to load modules: %v", err)
	}

	if pool != nil {
		if err := app.Migrations().Run(ctx); err != nil {
			log.Fatalf("failed to run migrations: %v", err)
		}
	} else {
		logger.Warn("DATA_BACKEND=memory: data lives in process and is seeded with demo accounts")
		if err := app.Seeder().Seed(ctx, app); err != nil {
			log.Fatalf("failed to seed memory backend: %v", err)
		}
	}

	go app.RunWorkers(ctx)

	serverInstance, err := server.Default(&server.DefaultOptions{
		Logger:        logger,
		Configuration: conf,
		Application:   app,
		Pool:          pool,
	})
	if err != nil {
		log.Fatalf("failed to create server: %v", err)
	}
	log.Printf("Listening on: %s\n", conf.Origin)
	if err := serverInstance.Start(ctx, conf.SocketAddress); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
