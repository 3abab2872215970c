package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tuanvumaihuynh/poxpos/internal/config"
	"github.com/tuanvumaihuynh/poxpos/internal/gateway/driver"
	"github.com/tuanvumaihuynh/poxpos/internal/http"
	"github.com/tuanvumaihuynh/poxpos/internal/log"
	"github.com/tuanvumaihuynh/poxpos/internal/service"
	"github.com/tuanvumaihuynh/poxpos/internal/storage/db"
	"github.com/tuanvumaihuynh/poxpos/internal/telemetry"
	"github.com/tuanvumaihuynh/poxpos/pkg/cmdutil"
	"github.com/tuanvumaihuynh/poxpos/pkg/validator"
)

func main() {
	if err := run(); err != nil {
		fmt.Printf("error running api application: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	time.Local = time.UTC

	type Config struct {
		Log     config.Log
		HTTP    config.HTTP
		Gateway config.Gateway
		Otel    config.Otel
	}
	cfg, err := config.New[Config]()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

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

	var pgxPool *pgxpool.Pool
	if driver.NeedsPool(cfg.Gateway) {
		// The direct driver shares the relay's database settings.
		pgCfg, err := config.New[config.Postgres]()
		if err != nil {
			return fmt.Errorf("error loading postgres config: %w", err)
		}

		pgxPool, err = db.NewPgxPool(ctx, pgCfg)
		if err != nil {
			return fmt.Errorf("error creating pgx pool: %w", err)
		}
		defer pgxPool.Close()
	}

	gw, err := driver.Open(cfg.Gateway, pgxPool)
	if err != nil {
		return fmt.Errorf("error opening gateway: %w", err)
	}

	v, err := validator.NewDefaultValidator()
	if err != nil {
		return fmt.Errorf("error creating validator: %w", err)
	}

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

	interruptChan := cmdutil.InterruptChan()

	cleanup, err := svc.Run(ctx)
	if err != nil {
		return fmt.Errorf("error running http service: %w", err)
	}
	logger.InfoContext(ctx, "api service started", slog.String("gateway_driver", cfg.Gateway.Driver.String()))

	<-interruptChan

	logger.InfoContext(ctx, "api service is shutting down")
	if err := cleanup(ctx); err != nil {
		logger.ErrorContext(ctx, "error shutting down http service", slog.Any("error", err))
	}

	logger.InfoContext(ctx, "api service is stopped")

	return nil
}
