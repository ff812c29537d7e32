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

	"github.com/frahmantamala/hr-management/internal"
	"github.com/frahmantamala/hr-management/internal/auth"
	authPostgres "github.com/frahmantamala/hr-management/internal/auth/postgres"
	"github.com/frahmantamala/hr-management/internal/department"
	departmentPostgres "github.com/frahmantamala/hr-management/internal/department/postgres"
	"github.com/frahmantamala/hr-management/internal/employee"
	employeePostgres "github.com/frahmantamala/hr-management/internal/employee/postgres"
	"github.com/frahmantamala/hr-management/internal/job"
	jobPostgres "github.com/frahmantamala/hr-management/internal/job/postgres"
	"github.com/frahmantamala/hr-management/internal/jobhistory"
	jobhistoryPostgres "github.com/frahmantamala/hr-management/internal/jobhistory/postgres"
	"github.com/frahmantamala/hr-management/internal/rbac"
	rbacPostgres "github.com/frahmantamala/hr-management/internal/rbac/postgres"
	"github.com/frahmantamala/hr-management/internal/records"
	recordsPostgres "github.com/frahmantamala/hr-management/internal/records/postgres"
	"github.com/frahmantamala/hr-management/internal/report"
	reportPostgres "github.com/frahmantamala/hr-management/internal/report/postgres"
	"github.com/frahmantamala/hr-management/internal/transport"
	"github.com/frahmantamala/hr-management/internal/transport/rest"
	"github.com/frahmantamala/hr-management/internal/user"
	"github.com/frahmantamala/hr-management/pkg/logger"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config *internal.Config
	DB     *sqlx.DB
	GormDB *gorm.DB
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
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("received signal, shutting down", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			deps.Logger.Error("database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("server stopped")
}

func setupRoutes(deps *Dependencies) error {
	lg := deps.Logger
	baseHandler := transport.NewBaseHandler(lg)

	// fail early if the served API document is broken
	if _, err := rest.LoadOpenAPISpec("./api/openapi.yml"); err != nil {
		return err
	}

	rbacRepo := rbacPostgres.NewRBACRepository(deps.GormDB)
	rbacService := rbac.NewService(rbacRepo, lg)

	tokenGen := auth.NewJWTTokenGenerator(
		deps.Config.Security.AccessTokenSecret,
		deps.Config.Security.RefreshTokenSecret,
		deps.Config.Security.AccessTokenDuration,
		deps.Config.Security.RefreshTokenDuration,
	)
	authRepo := authPostgres.NewRepository(deps.GormDB)
	authService := auth.NewService(authRepo, tokenGen, rbacService, deps.Config.Security.BCryptCost)

	employeeRepo := employeePostgres.NewEmployeeRepository(deps.GormDB)
	employeeService := employee.NewService(employeeRepo, lg)

	historyRepo := jobhistoryPostgres.NewJobHistoryRepository(deps.GormDB)
	refRepo := jobhistoryPostgres.NewReferenceRepository(deps.GormDB)
	historyService := jobhistory.NewService(historyRepo, refRepo, lg)

	jobRepo := jobPostgres.NewJobRepository(deps.GormDB)
	jobService := job.NewService(jobRepo, historyService, lg)

	departmentRepo := departmentPostgres.NewDepartmentRepository(deps.GormDB)
	departmentService := department.NewService(departmentRepo, historyService, lg)

	recordsRepo := recordsPostgres.NewRecordsRepository(deps.GormDB)
	recordsService := records.NewService(recordsRepo, lg)

	reportRepo := reportPostgres.NewReportRepository(deps.GormDB)
	reportService := report.NewService(reportRepo, lg)

	userService := user.NewService(employeeRepo, historyService, lg)

	handlers := rest.Handlers{
		Auth:       auth.NewHandler(baseHandler, authService),
		User:       user.NewHandler(baseHandler, userService),
		Employee:   employee.NewHandler(baseHandler, employeeService),
		Job:        job.NewHandler(baseHandler, jobService),
		Department: department.NewHandler(baseHandler, departmentService),
		JobHistory: jobhistory.NewHandler(baseHandler, historyService),
		RBAC:       rbac.NewHandler(baseHandler, rbacService),
		Records:    records.NewHandler(baseHandler, recordsService),
		Report:     report.NewHandler(baseHandler, reportService),
	}

	rest.RegisterAllRoutes(deps.Router, deps.DB.DB, handlers, lg)
	return nil
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(os.Getenv("APP_ENV"))

	db, gormDB, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return &Dependencies{
		Config: config,
		Logger: logger.L(),
		DB:     db,
		GormDB: gormDB,
		Router: chi.NewRouter(),
	}, nil
}

// initDB opens the configured database and layers GORM over the same
// connection so health checks and repositories share one pool.
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, *gorm.DB, error) {
	var driver string
	switch cfg.Driver {
	case "sqlite":
		// the gorm sqlite driver links mattn/go-sqlite3, registered as "sqlite3"
		driver = "sqlite3"
	default:
		driver = "pgx"
	}

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, nil, fmt.Errorf("failed to ping database: %w", err)
	}

	var dialector gorm.Dialector
	if driver == "sqlite3" {
		dialector = sqlite.New(sqlite.Config{Conn: dbConn.DB})
	} else {
		dialector = gormPostgres.New(gormPostgres.Config{Conn: dbConn.DB})
	}

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		_ = dbConn.Close()
		return nil, nil, fmt.Errorf("failed to initialize gorm: %w", err)
	}

	return dbConn, gormDB, nil
}
