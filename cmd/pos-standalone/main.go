package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/tuanvumaihuynh/poxpos/internal/config"
	"github.com/tuanvumaihuynh/poxpos/internal/event"
	"github.com/tuanvumaihuynh/poxpos/internal/gateway/driver"
	"github.com/tuanvumaihuynh/poxpos/internal/http"
	"github.com/tuanvumaihuynh/poxpos/internal/log"
	"github.com/tuanvumaihuynh/poxpos/internal/relay"
	"github.com/tuanvumaihuynh/poxpos/internal/repository"
	"github.com/tuanvumaihuynh/poxpos/internal/service"
	"github.com/tuanvumaihuynh/poxpos/internal/storage/db"
	"github.com/tuanvumaihuynh/poxpos/internal/storage/mq"
	"github.com/tuanvumaihuynh/poxpos/internal/telemetry"
	"github.com/tuanvumaihuynh/poxpos/pkg/cmdutil"
	"github.com/tuanvumaihuynh/poxpos/pkg/validator"
)

func main() {
	if err := run(); err != nil {
		fmt.Printf("error running standalone application: %v\n", err)
		os.Exit(1)
	}
}

// run starts the api on the direct postgres driver with the outbox enabled,
// plus the relay and the worker, in one process.
func run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	time.Local = time.UTC

	type Config struct {
		Log      config.Log
		Postgres config.Postgres
		HTTP     config.HTTP
		Gateway  config.Gateway
		Relay    config.Relay
		Kafka    config.Kafka
		Otel     config.Otel
	}
	cfg, err := config.New[Config]()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}
	cfg.Gateway.Driver = config.GatewayDriverPostgres
	cfg.Gateway.Outbox = true

	logger := log.NewSlogLogger(cfg.Log)

	cleanupTracer, err := telemetry.InitTracer(ctx, cfg.Otel)
	if err != nil {
		return fmt.Errorf("error initializing tracer: %w", err)
	}
	defer func() {
		if err := cleanupTracer(ctx); err != nil {
			logger.ErrorContext(ctx, "error cleaning up tracer", slog.Any("error", err))
		}
	}()

	pgxPool, err := db.NewPgxPool(ctx, cfg.Postgres)
	if err != nil {
		return fmt.Errorf("error creating pgx pool: %w", err)
	}
	defer pgxPool.Close()

	if err := db.Migrate(pgxPool); err != nil {
		return fmt.Errorf("error migrating database: %w", err)
	}

	dbClient := db.NewClient(pgxPool)

	kafkaProducer, err := mq.NewKafkaProducer(ctx, cfg.Kafka)
	if err != nil {
		return fmt.Errorf("error creating kafka producer: %w", err)
	}
	defer kafkaProducer.Close()

	kafkaConsumer, err := mq.NewKafkaConsumer(ctx, cfg.Kafka, logger)
	if err != nil {
		return fmt.Errorf("error creating kafka consumer: %w", err)
	}
	defer kafkaConsumer.Close()

	outboxMsgRepository := repository.NewOutboxMsgRepository(dbClient)
	notificationRepository := repository.NewNotificationRepository(dbClient)

	gw, err := driver.Open(cfg.Gateway, pgxPool)
	if err != nil {
		return fmt.Errorf("error opening gateway: %w", err)
	}

	v, err := validator.NewDefaultValidator()
	if err != nil {
		return fmt.Errorf("error creating validator: %w", err)
	}

	interruptChan := cmdutil.InterruptChan()
	var wg sync.WaitGroup

	wg.Go(func() {
		svc := event.New(logger, kafkaConsumer, notificationRepository)
		cleanup, err := svc.Run(ctx)
		if err != nil {
			panic(fmt.Errorf("error running event service: %w", err))
		}
		logger.InfoContext(ctx, "event service started")

		<-interruptChan

		logger.InfoContext(ctx, "event service is shutting down")
		cleanup()

		logger.InfoContext(ctx, "event service is stopped")
	})

	wg.Go(func() {
		svc := http.New(cfg.HTTP, logger, gw, http.Services{
			Auth:          service.NewAuthService(logger, gw),
			Branch:        service.NewBranchService(gw, v),
			Supplier:      service.NewSupplierService(gw, v),
			Product:       service.NewProductService(gw, v),
			Sale:          service.NewSaleService(gw, v),
			Stock:         service.NewStockService(gw, v),
			PurchaseOrder: service.NewPurchaseOrderService(gw, v),
			Return:        service.NewReturnService(gw, v),
		})
		cleanup, err := svc.Run(ctx)
		if err != nil {
			panic(fmt.Errorf("error running http service: %w", err))
		}

		logger.InfoContext(ctx, "http service started", slog.String("address", fmt.Sprintf(":%d", cfg.HTTP.Port)))

		<-interruptChan

		logger.InfoContext(ctx, "http service is shutting down")
		if err := cleanup(ctx); err != nil {
			logger.ErrorContext(ctx, "error shutting down http service", slog.Any("error", err))
		}

		logger.InfoContext(ctx, "http service is stopped")
	})

	wg.Go(func() {
		svc := relay.NewService(cfg.Relay, logger, dbClient, outboxMsgRepository, kafkaProducer)
		cleanup := svc.Run(ctx)
		logger.InfoContext(ctx, "relay service started")

		<-interruptChan

		logger.InfoContext(ctx, "relay service is shutting down")
		cleanup()

		logger.InfoContext(ctx, "relay service is stopped")
	})

	wg.Wait()

	return nil
}
