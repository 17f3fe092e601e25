package setup

import (
	"context"
	"fmt"
	"log"

	"github.com/belgahub/hub/internal/database"
	"github.com/belgahub/hub/internal/database/migrations"
	"github.com/belgahub/hub/internal/dispatch"
	"github.com/belgahub/hub/internal/gateway"
	"github.com/belgahub/hub/internal/postal"
	"github.com/belgahub/hub/internal/redis"
	"github.com/belgahub/hub/internal/setup/config"
	"github.com/uptrace/bun/migrate"
	"go.uber.org/zap"
)

// App bundles all core dependencies and services needed by the application.
// Each field represents a major subsystem that needs initialization and cleanup.
type App struct {
	Config       *config.Config       // Application configuration
	Logger       *zap.Logger          // Main application logger
	DBLogger     *zap.Logger          // Database-specific logger
	DB           database.Client      // Database connection pool
	RedisManager *redis.Manager       // Redis connection manager
	Queue        *dispatch.Queue      // Notification dispatch queue
	Dispatcher   *dispatch.Dispatcher // Background notification deliverer
	Gateway      *gateway.Gateway     // Auth, sessions, and live subscriptions
	Postal       *postal.Client       // Postal code lookup client
	LogManager   *LogManager          // Log rotation and session directories
	debug        *debugServer         // Loopback pprof server
}

// InitializeApp bootstraps all application dependencies in the correct
// order, ensuring each component has its required dependencies available.
func InitializeApp(ctx context.Context, logDir string) (*App, error) {
	// Load app configuration
	cfg, _, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	// Logging system is initialized next to capture setup issues
	logManager := NewLogManager(logDir, &cfg.Common.Debug)

	logger, dbLogger, err := logManager.GetLoggers()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loggers: %w", err)
	}

	// Database connection depends on migrations being up to date
	db, err := checkAndRunMigrations(ctx, &cfg.Common.PostgreSQL, dbLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Redis manager creates clients lazily per DB index
	redisManager := redis.NewManager(&cfg.Common.Redis, logger)

	// Notification queue and background dispatcher
	dispatchClient, err := redisManager.GetClient(redis.DispatchDBIndex)
	if err != nil {
		return nil, fmt.Errorf("failed to get dispatch Redis client: %w", err)
	}

	queue := dispatch.NewQueue(dispatchClient, logger)
	sink := dispatch.NewStoreSink(db.Model().Notification(), dispatchClient)
	dispatcher := dispatch.NewDispatcher(queue, sink, &cfg.Hub.Dispatch, logger)

	// Services enqueue side-effect notifications through the queue
	db.Service().SetNotifier(queue)

	// Gateway bundles auth, session cache, and live subscriptions
	gw, err := gateway.New(db, redisManager, &cfg.Hub, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize gateway: %w", err)
	}

	postalClient := postal.New(&cfg.Hub.Postal, logger)

	app := &App{
		Config:       cfg,
		Logger:       logger,
		DBLogger:     dbLogger,
		DB:           db,
		RedisManager: redisManager,
		Queue:        queue,
		Dispatcher:   dispatcher,
		Gateway:      gw,
		Postal:       postalClient,
		LogManager:   logManager,
	}

	// Start pprof server if enabled
	if cfg.Common.Debug.EnablePprof {
		srv, err := startDebugServer(cfg.Common.Debug.PprofPort, logger)
		if err != nil {
			logger.Error("Failed to start pprof server", zap.Error(err))
		} else {
			app.debug = srv
			logger.Warn("pprof debugging endpoint enabled - this should not be used in production!")
		}
	}

	return app, nil
}

// Cleanup ensures graceful shutdown of all components in reverse
// initialization order.
func (s *App) Cleanup(ctx context.Context) {
	// Shutdown pprof server if running
	if s.debug != nil {
		if err := s.debug.shutdown(ctx); err != nil {
			s.Logger.Error("Failed to shutdown pprof server", zap.Error(err))
		}
	}

	// Sync buffered logs before shutdown
	if err := s.Logger.Sync(); err != nil {
		log.Printf("Failed to sync logger: %v", err)
	}

	if err := s.DBLogger.Sync(); err != nil {
		log.Printf("Failed to sync DB logger: %v", err)
	}

	// Close database connections
	if err := s.DB.Close(); err != nil {
		log.Printf("Failed to close database connection: %v", err)
	}

	// Close Redis connections last as other components might need it during cleanup
	s.RedisManager.Close()
}

// checkAndRunMigrations runs database migrations if needed.
func checkAndRunMigrations(ctx context.Context, cfg *config.PostgreSQL, dbLogger *zap.Logger) (database.Client, error) {
	tempDB, err := database.NewConnection(ctx, cfg, dbLogger, false)
	if err != nil {
		return nil, err
	}

	migrator := migrate.NewMigrator(tempDB.DB(), migrations.Migrations)

	ms, err := migrator.MigrationsWithStatus(ctx)
	if err != nil {
		tempDB.Close()
		return nil, fmt.Errorf("failed to check migration status: %w", err)
	}

	var db database.Client

	unapplied := ms.Unapplied()
	if len(unapplied) > 0 {
		log.Println("Database migrations are pending. Would you like to run them now? (y/N)")

		var response string

		_, _ = fmt.Scanln(&response)

		if response == "y" || response == "Y" {
			tempDB.Close()

			db, err = database.NewConnection(ctx, cfg, dbLogger, true)
		} else {
			log.Fatalf("Closing program due to incomplete migrations")
		}
	} else {
		db = tempDB
	}

	return db, err
}
