package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/stockroom/internal/server/handlers"
	"github.com/mamadbah2/stockroom/internal/server/middleware"
	"github.com/mamadbah2/stockroom/pkg/metrics"
)

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	GRN           *handlers.GRNHandler
	Inventory     *handlers.InventoryHandler
	Dispatch      *handlers.DispatchHandler
	Invoice       *handlers.InvoiceHandler
	Customer      *handlers.CustomerHandler
	PurchaseOrder *handlers.PurchaseOrderHandler
	Health        *handlers.HealthHandler
}

// Options tunes the cross-cutting middleware.
type Options struct {
	CORSAllowedOrigins []string
	// Metrics enables request metrics and /metrics when set.
	Metrics *metrics.Metrics
}

// New wires the Gin engine with required routes and middlewares.
func New(h Handlers, opts Options, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	if opts.Metrics != nil {
		r.Use(middleware.Metrics(opts.Metrics))
	}
	if len(opts.CORSAllowedOrigins) > 0 {
		r.Use(middleware.CORS(opts.CORSAllowedOrigins))
	}

	api := r.Group("/api")

	grn := api.Group("/grn")
	grn.POST("", h.GRN.Create)
	grn.GET("", h.GRN.List)
	grn.PATCH("/:id", h.GRN.UpdateStatus)

	inventory := api.Group("/inventory")
	inventory.GET("", h.Inventory.List)
	inventory.GET("/export", h.Inventory.Export)
	inventory.POST("/snapshot", h.Inventory.Snapshot)
	inventory.GET("/:id", h.Inventory.Get)

	dispatches := api.Group("/sales-dispatch")
	dispatches.GET("", h.Dispatch.List)
	dispatches.POST("", h.Dispatch.Create)
	dispatches.PATCH("/:id", h.Dispatch.UpdateStatus)

	invoices := api.Group("/customer-invoices")
	invoices.GET("", h.Invoice.List)
	invoices.POST("", h.Invoice.Create)
	invoices.PATCH("/:id", h.Invoice.UpdateStatus)

	api.GET("/customers", h.Customer.List)
	api.POST("/customers", h.Customer.Create)

	api.GET("/purchase-orders", h.PurchaseOrder.List)
	api.POST("/purchase-orders", h.PurchaseOrder.Create)

	r.GET("/healthz", h.Health.Check)
	if opts.Metrics != nil {
		r.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))
	}

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}
