package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/frahmantamala/employee-records/internal"
	"github.com/frahmantamala/employee-records/internal/employee"
	employeeRepo "github.com/frahmantamala/employee-records/internal/employee/gormrepo"
	"github.com/frahmantamala/employee-records/internal/transport"
	"github.com/frahmantamala/employee-records/internal/transport/rest"
	"github.com/frahmantamala/employee-records/internal/transport/swagger"
	"github.com/frahmantamala/employee-records/internal/transport/view"
	"github.com/frahmantamala/employee-records/pkg/logger"

	"github.com/go-chi/chi"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server serving the employee list page and API`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config *internal.Config
	DB     *gorm.DB
	Router *chi.Mux
	Logger *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	if err := setupRoutes(deps); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to set up routes: %v\n", err)
		_ = closeDB(deps.DB)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("Starting HTTP server", "address", addr, "driver", deps.Config.Database.Driver)

	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
	}

	// Signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), deps.Config.Server.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("Server shutdown error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("Server failed to start", "error", err)
			_ = closeDB(deps.DB)
			os.Exit(1)
		}
	}

	if err := closeDB(deps.DB); err != nil {
		deps.Logger.Error("Database close error", "error", err)
	}
	deps.Logger.Info("Server stopped")
}

func setupRoutes(deps *Dependencies) error {
	renderer, err := view.New()
	if err != nil {
		return fmt.Errorf("failed to load templates: %w", err)
	}

	sqlDB, err := deps.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}

	repo := employeeRepo.NewEmployeeRepository(deps.DB)
	service := employee.NewService(repo, deps.Logger).WithQueryTimeout(deps.Config.Database.QueryTimeout)
	employeeHandler := employee.NewHandler(transport.NewBaseHandler(deps.Logger), service, renderer, deps.Config.Server.Title)

	swaggerEnabled := deps.Config.Server.SwaggerEnabled
	if swaggerEnabled {
		if _, err := swagger.Load(context.Background()); err != nil {
			deps.Logger.Warn("OpenAPI document rejected, swagger UI disabled", "error", err)
			swaggerEnabled = false
		}
	}

	rest.RegisterAllRoutes(deps.Router, rest.RouterOptions{
		Health:          rest.NewHealthHandler(sqlDB, deps.Config.Database.Driver, service),
		EmployeeHandler: employeeHandler,
		SwaggerEnabled:  swaggerEnabled,
		Logger:          deps.Logger,
	})
	return nil
}

func initializeDependencies() (*Dependencies, error) {
	config, err := bootstrap()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	db, err := openDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if config.Database.AutoMigrate {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if err := runMigrations(ctx, db, config.Database.Driver, "", "up"); err != nil {
			_ = closeDB(db)
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	return &Dependencies{
		Config: config,
		Logger: logger.LoggerWrapper(),
		DB:     db,
		Router: chi.NewRouter(),
	}, nil
}
