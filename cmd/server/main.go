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

	appassistant "github.com/adminhub/backend/internal/application/assistant"
	"github.com/adminhub/backend/internal/application/dashboard"
	appdirectory "github.com/adminhub/backend/internal/application/directory"
	appidentity "github.com/adminhub/backend/internal/application/identity"
	"github.com/adminhub/backend/internal/infrastructure/ai"
	"github.com/adminhub/backend/internal/infrastructure/auth"
	"github.com/adminhub/backend/internal/infrastructure/cache"
	"github.com/adminhub/backend/internal/infrastructure/config"
	"github.com/adminhub/backend/internal/infrastructure/logger"
	"github.com/adminhub/backend/internal/infrastructure/persistence"
	"github.com/adminhub/backend/internal/infrastructure/telemetry"
	"github.com/adminhub/backend/internal/interfaces/http/handler"
	"github.com/adminhub/backend/internal/interfaces/http/middleware"
	"github.com/adminhub/backend/internal/interfaces/http/router"
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
		_ = logger.Sync(log)
	}()

	log.Info("Starting AdminHub backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	ctx := context.Background()

	tracerProvider, err := telemetry.NewTracerProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	loggerProvider, err := telemetry.NewLoggerProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize logger provider", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := loggerProvider.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down logger provider", zap.Error(err))
		}
	}()
	// From here on every log entry also reaches the collector.
	log = loggerProvider.BridgeZap(log, cfg.Telemetry.ServiceName, cfg.Log.Level)

	meterProvider, err := telemetry.NewMeterProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := meterProvider.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down meter provider", zap.Error(err))
		}
	}()

	db, err := persistence.NewDatabaseWithZapLogger(&cfg.Database, log, logger.MapGormLogLevel(cfg.Log.Level))
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	if cfg.Telemetry.Enabled {
		dbTracing := telemetry.DefaultDBTracingConfig()
		dbTracing.Enabled = true
		if err := telemetry.EnableDBTracing(db.DB, dbTracing, log); err != nil {
			log.Fatal("Failed to enable database tracing", zap.Error(err))
		}
	}

	dbMetrics, err := telemetry.RegisterDBMetrics(db.DB, meterProvider, telemetry.DefaultDBMetricsConfig(), log)
	if err != nil {
		log.Fatal("Failed to register database metrics", zap.Error(err))
	}
	if dbMetrics != nil {
		sqlDB, err := db.DB.DB()
		if err != nil {
			log.Fatal("Failed to unwrap sql.DB for pool stats", zap.Error(err))
		}
		dbMetrics.StartPoolStats(ctx, sqlDB)
		defer dbMetrics.Stop()
	}

	// Repositories
	tenantRepo := persistence.NewGormTenantRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	roleRepo := persistence.NewGormRoleRepository(db.DB)
	companyRepo := persistence.NewGormCompanyRepository(db.DB)
	clientRepo := persistence.NewGormClientRepository(db.DB)
	projectRepo := persistence.NewGormProjectRepository(db.DB)
	conversationRepo := persistence.NewGormConversationRepository(db.DB)
	txScope := persistence.NewGormDirectoryTransactionScope(db.DB)

	// Token infrastructure. Redis keeps revocations across restarts; the
	// in-memory fallback is for development without Redis.
	jwtService := auth.NewJWTService(cfg.JWT)
	var blacklist auth.TokenBlacklist
	var summaryCache dashboard.SummaryCache
	redisBlacklist, err := auth.NewRedisTokenBlacklist(auth.RedisTokenBlacklistConfig{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Warn("Redis unavailable, using in-memory token blacklist and cache", zap.Error(err))
		blacklist = auth.NewInMemoryTokenBlacklist()
		summaryCache = cache.NewInMemorySummaryCache()
	} else {
		blacklist = redisBlacklist
		redisCache, err := cache.NewRedisSummaryCache(cache.RedisSummaryCacheConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Warn("Redis summary cache unavailable, using in-memory cache", zap.Error(err))
			summaryCache = cache.NewInMemorySummaryCache()
		} else {
			summaryCache = redisCache
		}
	}

	assistantProvider := ai.NewAnthropicProvider(ai.Config{
		APIKey:       cfg.Assistant.APIKey,
		Model:        cfg.Assistant.Model,
		MaxTokens:    cfg.Assistant.MaxTokens,
		SystemPrompt: cfg.Assistant.SystemPrompt,
	})

	// Application services
	authService := appidentity.NewAuthService(userRepo, roleRepo, tenantRepo, jwtService, blacklist, log)
	tenantService := appidentity.NewTenantService(tenantRepo, userRepo, roleRepo, log)
	userService := appidentity.NewUserService(userRepo, roleRepo)
	roleService := appidentity.NewRoleService(roleRepo)
	companyService := appdirectory.NewCompanyService(companyRepo)
	clientService := appdirectory.NewClientService(clientRepo, companyRepo, txScope)
	projectService := appdirectory.NewProjectService(projectRepo, clientRepo)
	dashboardService := dashboard.NewService(companyRepo, clientRepo, projectRepo, userRepo,
		dashboard.WithCache(summaryCache, 30*time.Second))
	conversationService := appassistant.NewConversationService(conversationRepo, assistantProvider, log)

	engine := buildEngine(cfg, log, jwtService, blacklist)

	r := router.New(engine)
	r.Register(
		handler.NewAuthHandler(authService),
		handler.NewTenantHandler(tenantService),
		handler.NewUserHandler(userService),
		handler.NewRoleHandler(roleService),
		handler.NewCompanyHandler(companyService),
		handler.NewClientHandler(clientService),
		handler.NewProjectHandler(projectService),
		handler.NewDashboardHandler(dashboardService),
		handler.NewAssistantHandler(conversationService),
	)
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// buildEngine configures the gin engine with the shared middleware chain.
// Order matters: tracing wraps everything, authentication runs last so the
// access log and spans cover rejected requests too.
func buildEngine(cfg *config.Config, log *zap.Logger, jwtService *auth.JWTService, blacklist auth.TokenBlacklist) *gin.Engine {
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Fatal("Invalid trusted proxies", zap.Error(err))
	}

	engine.Use(middleware.Tracing(cfg.Telemetry.ServiceName, cfg.Telemetry.Enabled))
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	engine.Use(middleware.JWTAuth(middleware.JWTConfig{
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
		Logger:         log,
		SkipPaths: []string{
			"/api/v1/health",
			"/api/v1/auth/login",
			"/api/v1/auth/refresh",
			"/api/v1/tenants",
		},
	}))

	return engine
}
