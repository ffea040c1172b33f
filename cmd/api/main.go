package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mecanix/garage-api/internal/catalog"
	"github.com/mecanix/garage-api/internal/intervention"
	"github.com/mecanix/garage-api/internal/maintenance"
	"github.com/mecanix/garage-api/internal/pricing"
	"github.com/mecanix/garage-api/internal/vehicle"
	"github.com/mecanix/garage-api/pkg/cache"
	"github.com/mecanix/garage-api/pkg/common"
	"github.com/mecanix/garage-api/pkg/config"
	"github.com/mecanix/garage-api/pkg/database"
	"github.com/mecanix/garage-api/pkg/logger"
	"github.com/mecanix/garage-api/pkg/middleware"
	redisclient "github.com/mecanix/garage-api/pkg/redis"
	"go.uber.org/zap"
)

const (
	serviceName = "garage-api"
	version     = "1.0.0"
)

func main() {
	cfg, err := config.Load(serviceName)
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	if err := logger.Init(cfg.Server.Environment); err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer logger.Sync()

	logger.Info("Starting garage service",
		zap.String("service", serviceName),
		zap.String("version", version),
		zap.String("environment", cfg.Server.Environment),
	)

	if err := database.RunMigrations(&cfg.Database); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	db, err := database.NewPostgresPool(&cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close(db)
	logger.Info("Connected to database")

	var (
		redisClient  *redisclient.Client
		cacheManager *cache.Manager
	)
	if cfg.Redis.Enabled {
		redisClient, err = redisclient.NewRedisClient(&cfg.Redis)
		if err != nil {
			logger.Fatal("Failed to connect to redis", zap.Error(err))
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Warn("Failed to close redis client", zap.Error(err))
			}
		}()
		cacheManager = cache.NewManager(redisClient)
		logger.Info("Dashboard caching enabled",
			zap.Duration("ttl", cfg.Dashboard.CacheTTL()),
		)
	}

	fleetRepo := vehicle.NewRepository(db)
	fleetService := vehicle.NewService(fleetRepo)
	fleetHandler := vehicle.NewHandler(fleetService)

	catalogRepo := catalog.NewRepository(db)
	catalogService := catalog.NewService(catalogRepo)
	catalogHandler := catalog.NewHandler(catalogService)

	calculator := pricing.NewCalculator(logger.Get())
	pricingService := pricing.NewService(calculator, catalogRepo, fleetRepo)
	pricingHandler := pricing.NewHandler(pricingService)

	interventionRepo := intervention.NewRepository(db)
	interventionService := intervention.NewService(interventionRepo, pricingService, catalogRepo, fleetRepo)
	interventionHandler := intervention.NewHandler(interventionService)

	maintenanceService := maintenance.NewService(
		fleetRepo, interventionRepo, catalogRepo,
		cacheManager, cfg.Dashboard.CacheTTL(),
	)
	maintenanceHandler := maintenance.NewHandler(maintenanceService, cfg.Dashboard.DefaultLimit)

	rootCtx, cancelWorker := context.WithCancel(context.Background())
	defer cancelWorker()

	var worker *maintenance.Worker
	if cacheManager != nil {
		worker = maintenance.NewWorker(
			maintenanceService, logger.Get(),
			cfg.Dashboard.RefreshInterval(), cfg.Dashboard.DefaultLimit,
		)
		go worker.Start(rootCtx)
	}

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CorrelationID())
	router.Use(middleware.RequestLogger(serviceName))
	router.Use(middleware.CORS())
	router.Use(middleware.Metrics(serviceName))

	router.GET("/healthz", common.HealthCheck(serviceName, version))
	router.GET("/health/live", common.LivenessProbe(serviceName, version))

	healthChecks := make(map[string]func() error)
	healthChecks["database"] = func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return db.Ping(ctx)
	}
	if redisClient != nil {
		healthChecks["redis"] = func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return redisClient.Client.Ping(ctx).Err()
		}
	}
	router.GET("/health/ready", common.ReadinessProbe(serviceName, version, healthChecks))

	router.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": serviceName,
			"version": version,
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api/v1")
	fleetHandler.RegisterRoutes(api)
	catalogHandler.RegisterRoutes(api)
	pricingHandler.RegisterRoutes(api)
	interventionHandler.RegisterRoutes(api)
	maintenanceHandler.RegisterRoutes(api)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Info("Server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	if worker != nil {
		worker.Stop()
	}
	cancelWorker()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server stopped")
}
