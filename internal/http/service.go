package http

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"

	"github.com/HenriqueBragaMoreira/gesture-pro/internal/config"
	"github.com/HenriqueBragaMoreira/gesture-pro/internal/http/metric"
	"github.com/HenriqueBragaMoreira/gesture-pro/internal/http/middleware"
	"github.com/HenriqueBragaMoreira/gesture-pro/internal/http/swagger"
	"github.com/HenriqueBragaMoreira/gesture-pro/internal/service"
	"github.com/HenriqueBragaMoreira/gesture-pro/internal/storage/db"
	"github.com/HenriqueBragaMoreira/gesture-pro/pkg/validator"
)

var tracer = otel.Tracer("internal/http")

// Service represents the HTTP service.
type Service struct {
	cfg     config.HTTP
	logger  *slog.Logger
	metrics *metric.Metrics
	health  db.HealthChecker

	categoryHandler  *CategoryHandler
	productHandler   *ProductHandler
	saleHandler      *SaleHandler
	dashboardHandler *DashboardHandler
}

type CleanupFunc func(ctx context.Context) error

func New(
	cfg config.HTTP,
	log *slog.Logger,
	health db.HealthChecker,
	categorySvc service.CategoryService,
	productSvc service.ProductService,
	saleSvc service.SaleService,
	dashboardSvc service.DashboardService,
) *Service {
	logger := log.With(slog.String("service", "http"))
	validate := validator.NewDefaultValidator()

	return &Service{
		cfg:     cfg,
		logger:  logger,
		metrics: metric.New(),
		health:  health,

		categoryHandler:  NewCategoryHandler(categorySvc, validate, logger),
		productHandler:   NewProductHandler(productSvc, validate, logger),
		saleHandler:      NewSaleHandler(saleSvc, validate, logger),
		dashboardHandler: NewDashboardHandler(dashboardSvc, logger),
	}
}

func (s *Service) Run(ctx context.Context) (CleanupFunc, error) {
	r := chi.NewRouter()
	s.RegisterMiddlewares(r)

	if s.cfg.Swagger {
		swagger.Register(r)
	}

	s.RegisterHandlers(r)

	return s.RunWithServer(ctx, r)
}

func (s *Service) RunWithServer(ctx context.Context, handler http.Handler) (CleanupFunc, error) {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.Port),
		Handler:           handler,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 16, // 64 KB
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			panic(err)
		}
	}()

	return func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}, nil
}

func (s *Service) RegisterMiddlewares(r chi.Router) {
	r.Use(
		middleware.Recoverer(s.logger),
		middleware.Trace(tracer),
		middleware.Metrics(s.metrics),
		middleware.CorrelationID(),
		middleware.Cors(),
		middleware.Logging(s.logger),
	)
}

func (s *Service) RegisterHandlers(r chi.Router) {
	r.Route("/categories", func(r chi.Router) {
		r.Post("/", s.categoryHandler.Create)
		r.Get("/", s.categoryHandler.List)
		r.Get("/{id}", s.categoryHandler.Get)
		r.Put("/{id}", s.categoryHandler.Update)
	})

	r.Route("/products", func(r chi.Router) {
		r.Post("/", s.productHandler.Create)
		r.Get("/", s.productHandler.List)
		r.Post("/upload-csv", s.productHandler.UploadCSV)
		r.Get("/{id}", s.productHandler.Get)
	})

	r.Route("/sales", func(r chi.Router) {
		r.Post("/", s.saleHandler.Create)
		r.Get("/", s.saleHandler.List)
	})

	r.Get("/dashboard", s.dashboardHandler.Summary)
	r.Get("/export-csv/sales", s.dashboardHandler.ExportSales)

	r.Get("/healthz", s.handleHealthz)

	r.Handle(middleware.MetricsPath, promhttp.HandlerFor(s.metrics.Registry, promhttp.HandlerOpts{
		ErrorLog: log.Default(),
	}))
}

func (s *Service) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if ok, err := s.health.IsHealthy(r.Context()); !ok {
		s.logger.WarnContext(r.Context(), "health check failed", slog.Any("error", err))
		respondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
