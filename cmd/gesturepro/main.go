package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/HenriqueBragaMoreira/gesture-pro/internal/config"
	"github.com/HenriqueBragaMoreira/gesture-pro/internal/http"
	"github.com/HenriqueBragaMoreira/gesture-pro/internal/log"
	"github.com/HenriqueBragaMoreira/gesture-pro/internal/repository"
	"github.com/HenriqueBragaMoreira/gesture-pro/internal/service"
	"github.com/HenriqueBragaMoreira/gesture-pro/internal/storage/db"
	"github.com/HenriqueBragaMoreira/gesture-pro/internal/telemetry"
	"github.com/HenriqueBragaMoreira/gesture-pro/pkg/cmdutil"
)

func main() {
	if err := run(); err != nil {
		fmt.Printf("error running application: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	time.Local = time.UTC

	type Config struct {
		Log      config.Log
		Postgres config.Postgres
		HTTP     config.HTTP
		Otel     config.Otel
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

	pgxPool, err := db.NewPgxPool(ctx, cfg.Postgres)
	if err != nil {
		return fmt.Errorf("error creating pgx pool: %w", err)
	}
	defer pgxPool.Close()

	if err := db.Migrate(pgxPool); err != nil {
		return fmt.Errorf("error migrating database: %w", err)
	}

	dbClient := db.NewClient(pgxPool)

	categoryRepository := repository.NewCategoryRepository(dbClient)
	productRepository := repository.NewProductRepository(dbClient)
	saleRepository := repository.NewSaleRepository(dbClient)

	categoryService := service.NewCategoryService(categoryRepository)
	productService := service.NewProductService(dbClient, productRepository, categoryRepository)
	saleService := service.NewSaleService(saleRepository, productRepository)
	dashboardService := service.NewDashboardService(saleRepository, productRepository)

	interruptChan := cmdutil.InterruptChan()
	var wg sync.WaitGroup

	wg.Go(func() {
		svc := http.New(cfg.HTTP, logger, dbClient,
			categoryService, productService, saleService, dashboardService)
		cleanup, err := svc.Run(ctx)
		if err != nil {
			panic(fmt.Errorf("error running http service: %w", err))
		}

		logger.InfoContext(ctx, "http service started", slog.String("address", fmt.Sprintf(":%d", cfg.HTTP.Port)))

		<-interruptChan

		logger.InfoContext(ctx, "http service is shutting down")
		if err := cleanup(ctx); err != nil {
			logger.ErrorContext(ctx, "error cleaning up http service", slog.Any("error", err))
		}

		logger.InfoContext(ctx, "http service is stopped")
	})

	wg.Wait()

	return nil
}
