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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"

	"github.com/tuanvumaihuynh/poxpos/internal/config"
	"github.com/tuanvumaihuynh/poxpos/internal/http/metric"
	"github.com/tuanvumaihuynh/poxpos/internal/http/middleware"
	"github.com/tuanvumaihuynh/poxpos/internal/http/swagger"
	"github.com/tuanvumaihuynh/poxpos/internal/service"
)

var tracer = otel.Tracer("internal/http")

// Pinger reports whether the gateway answers.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Services groups the business services behind the HTTP operations.
type Services struct {
	Auth          service.AuthService
	Branch        service.BranchService
	Supplier      service.SupplierService
	Product       service.ProductService
	Sale          service.SaleService
	Stock         service.StockService
	PurchaseOrder service.PurchaseOrderService
	Return        service.ReturnService
}

// Service represents the HTTP service.
type Service struct {
	cfg      config.HTTP
	logger   *slog.Logger
	registry *prometheus.Registry
	metrics  *metric.Metrics
	health   Pinger

	authSvc          service.AuthService
	branchSvc        service.BranchService
	supplierSvc      service.SupplierService
	productSvc       service.ProductService
	saleSvc          service.SaleService
	stockSvc         service.StockService
	purchaseOrderSvc service.PurchaseOrderService
	returnSvc        service.ReturnService
}

type CleanupFunc func(ctx context.Context) error

func New(
	cfg config.HTTP,
	log *slog.Logger,
	health Pinger,
	svcs Services,
) *Service {
	registry := prometheus.NewRegistry()

	return &Service{
		cfg:              cfg,
		logger:           log.With(slog.String("service", "http")),
		registry:         registry,
		metrics:          metric.New(registry),
		health:           health,
		authSvc:          svcs.Auth,
		branchSvc:        svcs.Branch,
		supplierSvc:      svcs.Supplier,
		productSvc:       svcs.Product,
		saleSvc:          svcs.Sale,
		stockSvc:         svcs.Stock,
		purchaseOrderSvc: svcs.PurchaseOrder,
		returnSvc:        svcs.Return,
	}
}

// Router builds the complete handler tree.
func (s *Service) Router() (http.Handler, error) {
	r := chi.NewRouter()
	s.RegisterMiddlewares(r)

	if s.cfg.Swagger {
		if err := swagger.Register(r, "poxpos API"); err != nil {
			return nil, fmt.Errorf("register swagger: %w", err)
		}
	}

	s.RegisterHandlers(r)

	return r, nil
}

func (s *Service) Run(ctx context.Context) (CleanupFunc, error) {
	r, err := s.Router()
	if err != nil {
		return nil, err
	}

	return s.RunWithServer(ctx, r)
}

func (s *Service) RunWithServer(ctx context.Context, handler http.Handler) (CleanupFunc, error) {
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", s.cfg.Port),
		Handler: handler,
		// Procedures may take a while; the gateway timeout bounds them.
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
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

	s.logger.InfoContext(ctx, "http server started", slog.Uint64("port", uint64(s.cfg.Port)))

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
		middleware.Cors(s.cfg.AllowedOrigins),
		middleware.Logging(s.logger),
	)
}

// Operation prefixes. The legacy functions prefix stays for clients built
// against the serverless deployment.
const (
	APIPrefix       = "/api/"
	FunctionsPrefix = "/.netlify/functions/"
)

func (s *Service) RegisterHandlers(r chi.Router) {
	for name, h := range s.operations() {
		// Every method reaches the handler so it can answer 405 itself.
		r.HandleFunc(APIPrefix+name, h)
		r.HandleFunc(FunctionsPrefix+name, h)
	}

	r.Get(middleware.HealthPath, s.handleHealth)

	r.Handle(middleware.MetricsPath, promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{
		ErrorLog: log.Default(),
	}))
}

// Operation names as they appear in the URL.
const (
	OpBranchUpsert         = "branch-upsert"
	OpSupplierUpsert       = "supplier-upsert"
	OpSupplierDelete       = "supplier-delete"
	OpProductUpsert        = "product-upsert"
	OpManualSale           = "manual-sale"
	OpCheckout             = "checkout"
	OpStockReceive         = "stock-receive"
	OpStockAdjust          = "stock-adjust"
	OpPurchaseOrderCreate  = "purchase-order-create"
	OpPurchaseOrderReceive = "purchase-order-receive"
	OpReturnProcess        = "return-process"
)

func (s *Service) operations() map[string]http.HandlerFunc {
	branch := newBranchHandler(s.branchSvc)
	supplier := newSupplierHandler(s.supplierSvc)
	product := newProductHandler(s.productSvc)
	sale := newSaleHandler(s.saleSvc)
	stock := newStockHandler(s.stockSvc)
	po := newPurchaseOrderHandler(s.purchaseOrderSvc)
	ret := newReturnHandler(s.returnSvc)

	return map[string]http.HandlerFunc{
		OpBranchUpsert:         operation(s, service.BranchRoles, branch.upsertBranch),
		OpSupplierUpsert:       operation(s, service.SupplierRoles, supplier.upsertSupplier),
		OpSupplierDelete:       operation(s, service.SupplierRoles, supplier.deleteSupplier),
		OpProductUpsert:        operation(s, nil, product.upsertProduct),
		OpManualSale:           operation(s, nil, sale.recordManualSale),
		OpCheckout:             operation(s, nil, sale.checkout),
		OpStockReceive:         operation(s, nil, stock.receiveStock),
		OpStockAdjust:          operation(s, nil, stock.adjustStock),
		OpPurchaseOrderCreate:  operation(s, nil, po.createPurchaseOrder),
		OpPurchaseOrderReceive: operation(s, nil, po.receivePurchaseOrder),
		OpReturnProcess:        operation(s, nil, ret.processReturn),
	}
}
