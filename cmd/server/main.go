package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	auditapp "github.com/fleetcore/backend/internal/application/audit"
	fleetapp "github.com/fleetcore/backend/internal/application/fleet"
	identityapp "github.com/fleetcore/backend/internal/application/identity"
	inventoryapp "github.com/fleetcore/backend/internal/application/inventory"
	workorderapp "github.com/fleetcore/backend/internal/application/workorder"
	"github.com/fleetcore/backend/internal/infrastructure/auth"
	"github.com/fleetcore/backend/internal/infrastructure/config"
	"github.com/fleetcore/backend/internal/infrastructure/logger"
	"github.com/fleetcore/backend/internal/infrastructure/persistence"
	"github.com/fleetcore/backend/internal/infrastructure/telemetry"
	"github.com/fleetcore/backend/internal/interfaces/http/handler"
	"github.com/fleetcore/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting FleetCore backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	ctx := context.Background()

	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.TracerConfig{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	defer tracerProvider.Shutdown(ctx)

	meterProvider, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize metrics", zap.Error(err))
	}
	defer meterProvider.Shutdown(ctx)

	gormLog := logger.NewGormLogger(log, gormlogger.Warn)
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	if cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled {
		if err := db.EnableTracing(); err != nil {
			log.Warn("Failed to enable database tracing", zap.Error(err))
		}
	}
	log.Info("Database connected")

	var blacklist auth.TokenBlacklist
	redisBlacklist, err := auth.NewRedisTokenBlacklist(auth.RedisTokenBlacklistConfig{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Warn("Redis unavailable, using in-memory token blacklist", zap.Error(err))
		blacklist = auth.NewInMemoryTokenBlacklist()
	} else {
		blacklist = redisBlacklist
	}

	jwtService := auth.NewJWTService(cfg.JWT)

	// Repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	companyRepo := persistence.NewGormCompanyRepository(db.DB)
	membershipRepo := persistence.NewGormMembershipRepository(db.DB)
	permissionRepo := persistence.NewGormRolePermissionRepository(db.DB)
	vehicleRepo := persistence.NewGormVehicleRepository(db.DB)
	equipmentRepo := persistence.NewGormEquipmentRepository(db.DB)
	taxonomyRepo := persistence.NewGormTaxonomyRepository(db.DB)
	workOrderRepo := persistence.NewGormWorkOrderRepository(db.DB)
	partLineRepo := persistence.NewGormPartLineRepository(db.DB)
	laborLineRepo := persistence.NewGormLaborLineRepository(db.DB)
	inventoryRepo := persistence.NewGormPartsInventoryRepository(db.DB)
	auditRepo := persistence.NewGormAuditLogRepository(db.DB)
	adminAuditRepo := persistence.NewGormAdminAuditLogRepository(db.DB)

	// Application services
	auditService := auditapp.NewAuditService(auditRepo, adminAuditRepo, membershipRepo, log)
	permissionService := identityapp.NewPermissionService(companyRepo, membershipRepo, permissionRepo, userRepo, log)
	companyService := identityapp.NewCompanyService(db, companyRepo, log)
	userService := identityapp.NewUserService(db, userRepo, auditService, log)
	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, log)
	bootstrapService := identityapp.NewAdminBootstrapService(db, userRepo, companyRepo, membershipRepo, auditService, log)
	provisioningService := identityapp.NewProvisioningService(db, userRepo, companyRepo, cfg.Provisioning, log)
	vehicleService := fleetapp.NewVehicleService(vehicleRepo, companyRepo, log)
	equipmentService := fleetapp.NewEquipmentService(equipmentRepo, log)
	taxonomyService := fleetapp.NewTaxonomyService(taxonomyRepo, log)
	workOrderService := workorderapp.NewWorkOrderService(db, workOrderRepo, log)
	partService := workorderapp.NewPartService(db, workOrderRepo, partLineRepo, inventoryRepo, log)
	laborService := workorderapp.NewLaborService(db, workOrderRepo, laborLineRepo, log)
	inventoryService := inventoryapp.NewInventoryService(inventoryRepo, permissionService, log)

	engine := router.New(router.Dependencies{
		Config:      cfg,
		JWTService:  jwtService,
		Blacklist:   blacklist,
		Permissions: permissionService,
		Logger:      log,
	}, router.Handlers{
		System:    handler.NewSystemHandler(db),
		Auth:      handler.NewAuthHandler(authService, userService),
		Company:   handler.NewCompanyHandler(companyService),
		User:      handler.NewUserHandler(userService),
		Admin:     handler.NewAdminHandler(bootstrapService, provisioningService),
		Audit:     handler.NewAuditHandler(auditService),
		Vehicle:   handler.NewVehicleHandler(vehicleService),
		Equipment: handler.NewEquipmentHandler(equipmentService, taxonomyService),
		WorkOrder: handler.NewWorkOrderHandler(workOrderService, partService, laborService),
		Inventory: handler.NewInventoryHandler(inventoryService),
	})

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}
	log.Info("Server stopped")
}
