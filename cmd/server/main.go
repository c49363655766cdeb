package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/stockroom/internal/config"
	"github.com/mamadbah2/stockroom/internal/repository/memory"
	"github.com/mamadbah2/stockroom/internal/repository/mongodb"
	"github.com/mamadbah2/stockroom/internal/repository/sheets"
	"github.com/mamadbah2/stockroom/internal/scheduler"
	"github.com/mamadbah2/stockroom/internal/server/handlers"
	"github.com/mamadbah2/stockroom/internal/server/router"
	customersvc "github.com/mamadbah2/stockroom/internal/service/customers"
	dispatchsvc "github.com/mamadbah2/stockroom/internal/service/dispatch"
	inventorysvc "github.com/mamadbah2/stockroom/internal/service/inventory"
	invoicingsvc "github.com/mamadbah2/stockroom/internal/service/invoicing"
	purchasingsvc "github.com/mamadbah2/stockroom/internal/service/purchasing"
	receivingsvc "github.com/mamadbah2/stockroom/internal/service/receiving"
	reportingsvc "github.com/mamadbah2/stockroom/internal/service/reporting"
	"github.com/mamadbah2/stockroom/pkg/clients/webhook"
	"github.com/mamadbah2/stockroom/pkg/logger"
	"github.com/mamadbah2/stockroom/pkg/metrics"
)

// storage is everything the services need from a backing store.
type storage interface {
	handlers.Pinger
	receivingsvc.GRNRepository
	receivingsvc.LedgerRepository
	inventorysvc.Repository
	purchasingsvc.Repository
	customersvc.Repository
	dispatchsvc.Repository
	invoicingsvc.Repository
}

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Log.Level))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	store, tx, closeStore, err := openStorage(cfg, baseLogger)
	if err != nil {
		baseLogger.Fatal("failed to init storage", zap.String("driver", cfg.Storage.Driver), zap.Error(err))
	}
	defer closeStore()

	m := metrics.New()

	receivingOpts := []receivingsvc.Option{receivingsvc.WithRecorder(m)}
	if cfg.Receiving.Atomic {
		receivingOpts = append(receivingOpts, receivingsvc.WithTransactor(tx))
		baseLogger.Info("atomic receiving enabled")
	}
	if cfg.Receiving.WebhookURL != "" {
		receivingOpts = append(receivingOpts, receivingsvc.WithNotifier(
			receivingsvc.NewWebhookNotifier(webhook.NewClient(cfg.Receiving.WebhookURL))))
		baseLogger.Info("receipt webhook enabled")
	}

	purchasingSvc := purchasingsvc.NewService(store, baseLogger.Named("svc.purchasing"))
	customerSvc := customersvc.NewService(store, baseLogger.Named("svc.customers"))
	receivingSvc := receivingsvc.NewService(store, store, purchasingSvc, baseLogger.Named("svc.receiving"), receivingOpts...)
	inventorySvc := inventorysvc.NewService(store, baseLogger.Named("svc.inventory"))
	dispatchSvc := dispatchsvc.NewService(store, customerSvc, baseLogger.Named("svc.dispatch"))
	invoicingSvc := invoicingsvc.NewService(store, customerSvc, baseLogger.Named("svc.invoicing"))

	// The snapshot export is optional; without Sheets credentials the endpoint
	// answers 503 and no job is scheduled.
	var exporter handlers.SnapshotExporter
	if cfg.Sheets.Enabled() {
		sheetsRepo, err := sheets.NewGoogleSheetRepository(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
		}
		reportingSvc := reportingsvc.NewService(store, sheetsRepo, cfg.Snapshot.SheetRange, m, baseLogger.Named("svc.reporting"))
		exporter = reportingSvc

		sched, err := scheduler.NewScheduler(cfg.Snapshot, reportingSvc, baseLogger.Named("scheduler"))
		if err != nil {
			baseLogger.Fatal("failed to init scheduler", zap.Error(err))
		}
		sched.Start()
		defer sched.Stop()
	} else {
		baseLogger.Warn("google sheets not configured, inventory snapshot export disabled")
	}

	engine := router.New(router.Handlers{
		GRN:           handlers.NewGRNHandler(receivingSvc, baseLogger.Named("handlers.grn")),
		Inventory:     handlers.NewInventoryHandler(inventorySvc, exporter, baseLogger.Named("handlers.inventory")),
		Dispatch:      handlers.NewDispatchHandler(dispatchSvc, baseLogger.Named("handlers.dispatch")),
		Invoice:       handlers.NewInvoiceHandler(invoicingSvc, baseLogger.Named("handlers.invoice")),
		Customer:      handlers.NewCustomerHandler(customerSvc, baseLogger.Named("handlers.customer")),
		PurchaseOrder: handlers.NewPurchaseOrderHandler(purchasingSvc, baseLogger.Named("handlers.purchase_order")),
		Health:        handlers.NewHealthHandler(store, baseLogger.Named("handlers.health")),
	}, router.Options{
		CORSAllowedOrigins: cfg.Server.CORSAllowedOrigins,
		Metrics:            m,
	}, baseLogger.Named("router"))

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port), zap.String("storage", cfg.Storage.Driver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
	receivingSvc.Wait()
}

// openStorage returns the configured store, its transactor (nil when the
// driver has none) and a close func.
func openStorage(cfg *config.Config, log *zap.Logger) (storage, receivingsvc.Transactor, func(), error) {
	switch cfg.Storage.Driver {
	case config.StorageMemory:
		// Config rejects RECEIVING_ATOMIC on this driver, so no transactor.
		log.Warn("using in-memory storage, data is lost on restart")
		return memory.NewStore(), nil, func() {}, nil

	case config.StorageMongo:
		ctx, cancel := context.WithTimeout(context.Background(), cfg.MongoDB.Timeout)
		defer cancel()

		repo, err := mongodb.NewMongoDBRepository(ctx, cfg.MongoDB.URI, cfg.MongoDB.DBName)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := repo.EnsureIndexes(ctx); err != nil {
			_ = repo.Close(context.Background())
			return nil, nil, nil, fmt.Errorf("ensure indexes: %w", err)
		}

		closeFn := func() {
			if err := repo.Close(context.Background()); err != nil {
				log.Error("failed to close mongodb connection", zap.Error(err))
			}
		}
		return repo, repo, closeFn, nil

	default:
		return nil, nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}
