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

	"github.com/empmanager/personnel-management/internal"
	"github.com/empmanager/personnel-management/internal/attendance"
	attendancepg "github.com/empmanager/personnel-management/internal/attendance/postgres"
	"github.com/empmanager/personnel-management/internal/auth"
	authpg "github.com/empmanager/personnel-management/internal/auth/postgres"
	"github.com/empmanager/personnel-management/internal/core/events"
	"github.com/empmanager/personnel-management/internal/department"
	departmentpg "github.com/empmanager/personnel-management/internal/department/postgres"
	"github.com/empmanager/personnel-management/internal/direction"
	directionpg "github.com/empmanager/personnel-management/internal/direction/postgres"
	"github.com/empmanager/personnel-management/internal/employee"
	employeepg "github.com/empmanager/personnel-management/internal/employee/postgres"
	"github.com/empmanager/personnel-management/internal/leave"
	leavepg "github.com/empmanager/personnel-management/internal/leave/postgres"
	"github.com/empmanager/personnel-management/internal/notification"
	notificationpg "github.com/empmanager/personnel-management/internal/notification/postgres"
	"github.com/empmanager/personnel-management/internal/report"
	reportpg "github.com/empmanager/personnel-management/internal/report/postgres"
	"github.com/empmanager/personnel-management/internal/transport/middleware"
	"github.com/empmanager/personnel-management/internal/transport/rest"
	"github.com/empmanager/personnel-management/pkg/logger"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormpostgres "gorm.io/driver/postgres"
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
	Gorm   *gorm.DB
	Router *chi.Mux
	Logger *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	if err := registerRoutes(deps); err != nil {
		fmt.Fprintf(os.Stderr, "failed to register routes: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("received signal, shutting down", "signal", sig.String())
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

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(config.Observability.Logging.Format, config.Observability.Logging.Level)
	log := logger.LoggerWrapper()

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// GORM rides on the same pgx connection pool the health check pings.
	gormDB, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: db.DB}), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize gorm: %w", err)
	}

	return &Dependencies{
		Config: config,
		Logger: log,
		DB:     db,
		Gorm:   gormDB,
		Router: chi.NewRouter(),
	}, nil
}

func registerRoutes(deps *Dependencies) error {
	cfg := deps.Config
	log := deps.Logger
	db := deps.Gorm

	bus := events.NewEventBus(log)

	tokens := auth.NewJWTTokenGenerator(
		cfg.Security.AccessTokenSecret,
		cfg.Security.RefreshTokenSecret,
		cfg.Security.AccessTokenDuration,
		cfg.Security.RefreshTokenDuration,
	)
	authService := auth.NewService(authpg.NewAuthRepository(db), tokens, cfg.Security.BCryptCost, log)

	employeeService := employee.NewService(employeepg.NewEmployeeRepository(db), log)
	departmentService := department.NewService(departmentpg.NewDepartmentRepository(db), log)
	directionService := direction.NewService(directionpg.NewDirectionRepository(db), log)
	leaveService := leave.NewService(
		leavepg.NewLeaveRepository(db),
		leavepg.NewEmployeeDirectory(db),
		leave.Policy{AnnualAllowance: cfg.Leave.AnnualAllowance},
		bus,
		log,
	)
	attendanceService := attendance.NewService(attendancepg.NewAttendanceRepository(db), log)
	notificationService := notification.NewService(
		notificationpg.NewNotificationRepository(db),
		notificationpg.NewEmployeeDirectory(db),
		log)
	reportService := report.NewService(
		reportpg.NewStatsRepository(db),
		employeeService,
		leaveService,
		attendanceService,
		log,
	)

	notification.NewEventHandler(notificationService, log).Register(bus)

	handlers := rest.Handlers{
		Auth:         auth.NewHandler(authService),
		Employee:     employee.NewHandler(employeeService),
		Department:   department.NewHandler(departmentService),
		Direction:    direction.NewHandler(directionService),
		Leave:        leave.NewHandler(leaveService),
		Attendance:   attendance.NewHandler(attendanceService),
		Notification: notification.NewHandler(notificationService),
		Report:       report.NewHandler(reportService),
	}

	var validator *middleware.OpenAPIValidator
	if cfg.Server.OpenAPISpec != "" {
		v, err := middleware.NewOpenAPIValidator(cfg.Server.OpenAPISpec, log)
		if err != nil {
			// the contract check is best-effort at startup; the API still works
			log.Warn("openapi validation disabled", "spec", cfg.Server.OpenAPISpec, "error", err)
		} else {
			validator = v
		}
	}

	rest.RegisterAllRoutes(deps.Router, deps.DB.DB, handlers, validator, log)
	return nil
}

func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}
