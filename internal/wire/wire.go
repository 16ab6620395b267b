// Package wire provides dependency injection for the AgriMetrics
// application. It creates singleton services with lazy initialization.
package wire

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/Jehuti-ms/AgriMetrics-sub000/internal/adapters/redis"
	"github.com/Jehuti-ms/AgriMetrics-sub000/internal/adapters/sqlite"
	"github.com/Jehuti-ms/AgriMetrics-sub000/internal/app"
	"github.com/Jehuti-ms/AgriMetrics-sub000/internal/config"
	"github.com/Jehuti-ms/AgriMetrics-sub000/internal/db"
	"github.com/Jehuti-ms/AgriMetrics-sub000/internal/logging"
	"github.com/Jehuti-ms/AgriMetrics-sub000/internal/ports/primary"
)

var (
	cfg                *config.Config
	logger             zerolog.Logger
	gateway            *redis.Gateway
	monitor            *app.ConnectivityMonitor
	coordinator        *app.SyncCoordinator
	productionService  primary.ProductionService
	transactionService primary.TransactionService
	salesService       primary.SalesService
	feedService        primary.FeedService
	reportService      primary.ReportService
	once               sync.Once
)

// Records returns the singleton record coordinator.
func Records() primary.RecordService {
	once.Do(initServices)
	return coordinator
}

// Monitor returns the singleton connectivity monitor.
func Monitor() *app.ConnectivityMonitor {
	once.Do(initServices)
	return monitor
}

// ProductionService returns the singleton ProductionService instance.
func ProductionService() primary.ProductionService {
	once.Do(initServices)
	return productionService
}

// TransactionService returns the singleton TransactionService instance.
func TransactionService() primary.TransactionService {
	once.Do(initServices)
	return transactionService
}

// SalesService returns the singleton SalesService instance.
func SalesService() primary.SalesService {
	once.Do(initServices)
	return salesService
}

// FeedService returns the singleton FeedService instance.
func FeedService() primary.FeedService {
	once.Do(initServices)
	return feedService
}

// ReportService returns the singleton ReportService instance.
func ReportService() primary.ReportService {
	once.Do(initServices)
	return reportService
}

// Config returns the loaded configuration.
func Config() *config.Config {
	once.Do(initServices)
	return cfg
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	var err error
	cfg, err = config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logger = logging.New(cfg.LogLevel)

	database, err := db.GetDB()
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	store := sqlite.NewRecordStore(database, logger)

	identity := func() string { return cfg.UserID }
	gateway = redis.NewGateway(redis.GatewayConfig{
		Addr: cfg.RedisAddr,
	}, identity, func() bool { return monitor != nil && monitor.Online() }, logger)

	monitor = app.NewConnectivityMonitor(gateway,
		time.Duration(cfg.ProbeIntervalSecs)*time.Second, logger)

	coordinator = app.NewSyncCoordinator(store, gateway, identity, app.SyncCoordinatorConfig{
		RemoteTimeout: time.Duration(cfg.RemoteTimeoutSecs) * time.Second,
		FetchLimit:    cfg.FetchLimit,
	}, logger)

	// Every offline-to-online transition pushes pending records for all
	// registered collections.
	monitor.OnOnline(func() { coordinator.ReconcileAll(context.Background()) })

	productionService = app.NewProductionService(coordinator)
	transactionService = app.NewTransactionService(coordinator)
	salesService = app.NewSalesService(coordinator)
	feedService = app.NewFeedService(coordinator, cfg.LowStockKg)
	reportService = app.NewReportService(coordinator)
}
