package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	circleapp "github.com/lockin/backend/internal/application/circle"
	focusapp "github.com/lockin/backend/internal/application/focus"
	notifapp "github.com/lockin/backend/internal/application/notification"
	"github.com/lockin/backend/internal/infrastructure/auth"
	"github.com/lockin/backend/internal/infrastructure/cache"
	"github.com/lockin/backend/internal/infrastructure/config"
	"github.com/lockin/backend/internal/infrastructure/event"
	"github.com/lockin/backend/internal/infrastructure/logger"
	"github.com/lockin/backend/internal/infrastructure/persistence"
	"github.com/lockin/backend/internal/interfaces/http/handler"
	"github.com/lockin/backend/internal/interfaces/http/middleware"
	"github.com/lockin/backend/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
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

	log.Info("Starting Lockin Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Initialize repositories
	groupRepo := persistence.NewGormGroupRepository(db.DB)
	memberRepo := persistence.NewGormMemberRepository(db.DB)
	sessionRepo := persistence.NewGormSessionRepository(db.DB)
	participantRepo := persistence.NewGormParticipantRepository(db.DB)
	timeLogRepo := persistence.NewGormTimeLogRepository(db.DB)
	notificationRepo := persistence.NewGormNotificationRepository(db.DB)

	// Dedup store: Redis when configured, in-memory otherwise. The
	// unique dedup key column stays authoritative either way.
	dedupFactory := cache.NewDedupStoreFactory(cfg.Redis, cache.WithLogger(log))
	dedupStore, err := dedupFactory.CreateStore()
	if err != nil {
		log.Fatal("Failed to create dedup store", zap.Error(err))
	}

	// Initialize application services
	groupService := circleapp.NewGroupService(groupRepo, memberRepo, sessionRepo, notificationRepo)
	progressService := circleapp.NewProgressService(groupRepo, memberRepo, timeLogRepo)
	lifecycleService := circleapp.NewLifecycleService(groupRepo, log)
	sessionService := focusapp.NewSessionService(sessionRepo, participantRepo, timeLogRepo, groupRepo, memberRepo)
	notificationService := notifapp.NewNotificationService(notificationRepo, groupRepo, memberRepo)

	// JWT verification
	jwtVerifier := auth.NewJWTVerifier(cfg.JWT)

	// Initialize event bus and handlers
	eventBus := event.NewInMemoryEventBus(log)

	// Recorded focus time -> milestone notifications
	milestoneNotifier := notifapp.NewMilestoneNotifier(
		groupRepo, memberRepo, timeLogRepo, notificationRepo, dedupStore, log,
	)
	eventBus.Subscribe(milestoneNotifier)
	log.Info("Event handlers registered",
		zap.Strings("milestone_events", milestoneNotifier.EventTypes()),
	)

	// Start event bus
	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	// Inject event bus into services that publish events
	groupService.SetEventPublisher(eventBus)
	sessionService.SetEventPublisher(eventBus)

	// Periodic group archival sweep (if enabled)
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	if cfg.Maintenance.SweepEnabled {
		go lifecycleService.RunSweeper(sweepCtx, cfg.Maintenance.SweepInterval)
		log.Info("Group archival sweeper started",
			zap.Duration("interval", cfg.Maintenance.SweepInterval),
		)
	}

	// Initialize HTTP handlers
	groupHandler := handler.NewGroupHandler(groupService, progressService)
	sessionHandler := handler.NewSessionHandler(sessionService)
	notificationHandler := handler.NewNotificationHandler(notificationService)
	maintenanceHandler := handler.NewMaintenanceHandler(lifecycleService)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	// Initialize router with custom middleware
	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware stack: request ID first so recovery and request logs
	// carry it, then panic recovery, logging, CORS.
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))

	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Health check endpoint (outside API versioning)
	engine.GET("/healthz", healthHandler(db, log))

	// Setup API routes
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// All API routes require a valid bearer token
	jwtConfig := middleware.JWTMiddlewareConfig{
		Verifier: jwtVerifier,
		Logger:   log,
	}
	r.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))

	r.Register(groupHandler).
		Register(sessionHandler).
		Register(notificationHandler).
		Register(maintenanceHandler)

	r.Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	stopSweep()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler returns a handler for health check endpoints
func healthHandler(db *persistence.Database, _ *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
