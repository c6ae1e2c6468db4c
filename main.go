// Package main provides the main entry point for the social admin account service
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/amirphl/social-admin/app/handlers"
	"github.com/amirphl/social-admin/app/middleware"
	"github.com/amirphl/social-admin/app/router"
	"github.com/amirphl/social-admin/app/services"
	businessflow "github.com/amirphl/social-admin/business_flow"
	"github.com/amirphl/social-admin/config"
	"github.com/amirphl/social-admin/migrations"
	"github.com/amirphl/social-admin/repository"
	"github.com/amirphl/social-admin/utils"
	"github.com/gofiber/fiber/v3"
	"github.com/redis/go-redis/v9"
	"gopkg.in/natefinch/lumberjack.v2"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Application represents the main application structure
type Application struct {
	router    router.Router
	config    *config.ProductionConfig
	server    *fiber.App
	stopFuncs []func()
}

func main() {
	log.Println("Starting social admin application...")

	// Load production configuration
	cfg, err := config.LoadProductionConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	closeLog := initializeLogging(cfg.Logging)
	defer closeLog()

	// Initialize application
	app, err := initializeApplication(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	// Setup routes
	app.router.SetupRoutes()

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Start server in goroutine
	go func() {
		address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		log.Printf("Server starting on %s", address)

		if err := app.router.Start(address); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for shutdown signal
	<-sigChan
	log.Println("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := app.server.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}

	// Release background workers and connections after in-flight requests finish
	for i := len(app.stopFuncs) - 1; i >= 0; i-- {
		app.stopFuncs[i]()
	}

	log.Println("Server stopped")
}

// initializeLogging points the standard logger at stdout, a rotating file, or both.
// The returned func closes the log file.
func initializeLogging(cfg config.LoggingConfig) func() {
	log.SetFlags(log.LstdFlags | log.LUTC | log.Lmicroseconds)

	if cfg.Output != "file" && cfg.Output != "both" {
		log.SetOutput(os.Stdout)
		return func() {}
	}

	rotating := &lumberjack.Logger{
		Filename:   cfg.FilePath,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
		Compress:   cfg.Compress,
	}

	var out io.Writer = rotating
	if cfg.Output == "both" {
		out = io.MultiWriter(os.Stdout, rotating)
	}
	log.SetOutput(out)
	log.Printf("Logging to %s (max %dMB, %d backups)", cfg.FilePath, cfg.MaxSize, cfg.MaxBackups)

	return func() {
		_ = rotating.Close()
	}
}

// initializeDatabase initializes the database connection with connection pooling
func initializeDatabase(cfg config.DatabaseConfig, logLevel string) (*gorm.DB, error) {
	gormLevel := logger.Warn
	switch logLevel {
	case "debug":
		gormLevel = logger.Info
	case "error":
		gormLevel = logger.Error
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: logger.New(log.Default(), logger.Config{
			SlowThreshold:             cfg.SlowQueryTime,
			LogLevel:                  gormLevel,
			IgnoreRecordNotFoundError: true,
		}),
		NowFunc: utils.UTCNow,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying sql.DB for connection pooling configuration
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Configure connection pooling
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	// Test the connection
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Printf("Database connection established with %d max open connections, %d max idle connections",
		cfg.MaxOpenConns, cfg.MaxIdleConns)

	return db, nil
}

// initializeCache initializes the Redis client and verifies connectivity.
// A nil client means the in-memory fallbacks are used.
func initializeCache(cfg config.CacheConfig) (*redis.Client, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	rc := redis.NewClient(opt)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rc.Ping(ctx).Err(); err != nil {
		_ = rc.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	log.Printf("Redis connection established (db=%d)", opt.DB)
	return rc, nil
}

// startCacheHealthMonitor starts a background goroutine that periodically pings Redis
// to detect connectivity issues. The returned cancel function stops the monitor.
func startCacheHealthMonitor(parent context.Context, client *redis.Client, interval time.Duration) func() {
	monitorCtx, cancel := context.WithCancel(parent)
	if interval <= 0 {
		interval = 30 * time.Second
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-monitorCtx.Done():
				return
			case <-ticker.C:
				ctx, c := context.WithTimeout(monitorCtx, 3*time.Second)
				if err := client.Ping(ctx).Err(); err != nil {
					log.Printf("Redis healthcheck failed: %v", err)
				}
				c()
			}
		}
	}()
	return cancel
}

// initializeNotificationService initializes the notification service
func initializeNotificationService(cfg config.EmailConfig) services.NotificationService {
	var emailProvider services.EmailProvider

	switch cfg.Provider {
	case "mock":
		emailProvider = services.NewMockEmailProvider()
	default:
		emailProvider = services.NewSMTPEmailProvider(
			cfg.Host,
			cfg.Port,
			cfg.Username,
			cfg.Password,
			cfg.FromEmail,
			cfg.FromName,
			cfg.Timeout,
			cfg.InsecureSkipVerify,
		)
	}

	return services.NewNotificationService(emailProvider)
}

// initializeApplication initializes the main application components
func initializeApplication(cfg *config.ProductionConfig) (*Application, error) {
	var stopFuncs []func()

	if cfg.Database.AutoMigrate {
		if err := migrations.Run(cfg.Database.URL(), "up"); err != nil {
			return nil, fmt.Errorf("failed to apply migrations: %w", err)
		}
		log.Println("Database migrations applied")
	}

	// Initialize database
	db, err := initializeDatabase(cfg.Database, cfg.Logging.Level)
	if err != nil {
		return nil, err
	}
	if sqlDB, err := db.DB(); err == nil {
		stopFuncs = append(stopFuncs, func() { _ = sqlDB.Close() })
	}

	rc, err := initializeCache(cfg.Cache)
	if err != nil {
		return nil, err
	}

	var (
		blacklist      services.TokenBlacklist
		challengeStore services.ChallengeStore
	)
	if rc != nil {
		stopFuncs = append(stopFuncs, startCacheHealthMonitor(context.Background(), rc, cfg.Cache.HealthInterval))
		stopFuncs = append(stopFuncs, func() { _ = rc.Close() })
		blacklist = services.NewRedisTokenBlacklist(rc, cfg.Cache.RedisPrefix+"blacklist:token:")
		challengeStore = services.NewRedisChallengeStore(rc)
	} else {
		log.Println("Redis disabled, using in-memory token blacklist and captcha store")
		blacklist = services.NewMemoryTokenBlacklist()
		challengeStore = services.NewMemoryChallengeStore()
	}

	// Initialize repositories
	accountRepo := repository.NewAccountRepository(db)
	adminRepo := repository.NewAdminRepository(db)
	adminLogRepo := repository.NewAdminLogRepository(db)
	transactor := repository.NewGormTransactor(db)

	// Initialize services
	notificationService := initializeNotificationService(cfg.Email)

	hasher, err := services.NewBcryptPasswordHasher(cfg.Security.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize password hasher: %w", err)
	}

	captchaSvc, err := services.NewCaptchaServiceRotate(challengeStore, cfg.Admin.CaptchaTTL, cfg.Admin.CaptchaPadding, cfg.Admin.CaptchaImageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize captcha service: %w", err)
	}

	tokenService, err := services.NewTokenService(
		cfg.Lifecycle.SessionTokenTTL,
		cfg.Lifecycle.AdminTokenTTL,
		cfg.JWT.Issuer,
		cfg.JWT.Audience,
		cfg.JWT.UseRSAKeys,
		cfg.JWT.PrivateKey,
		cfg.JWT.PublicKey,
		cfg.JWT.SecretKey,
		blacklist,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token service: %w", err)
	}

	log.Printf("Token service initialized with issuer: %s, audience: %s", cfg.JWT.Issuer, cfg.JWT.Audience)

	clock := utils.SystemClock{}
	ttls := businessflow.CodeTTLs{
		Activation: cfg.Lifecycle.ActivationCodeTTL,
		Reset:      cfg.Lifecycle.ResetCodeTTL,
	}

	// Initialize flows
	signupFlow := businessflow.NewSignupFlow(accountRepo, transactor, hasher, notificationService, clock)
	loginFlow := businessflow.NewLoginFlow(accountRepo, hasher, tokenService, clock)
	recoveryFlow := businessflow.NewAccountRecoveryFlow(accountRepo, hasher, notificationService, ttls, clock)
	adminAccountFlow := businessflow.NewAdminAccountFlow(accountRepo, adminLogRepo, transactor, notificationService, ttls, clock)
	adminAuthFlow := businessflow.NewAdminAuthFlow(adminRepo, hasher, tokenService, captchaSvc, clock)
	businessProfileFlow := businessflow.NewBusinessProfileFlow(accountRepo, transactor)

	if cfg.Admin.Username != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		err := adminAuthFlow.EnsureBootstrapAdmin(ctx, cfg.Admin.Username, cfg.Admin.Password)
		cancel()
		if err != nil {
			return nil, fmt.Errorf("failed to ensure bootstrap admin: %w", err)
		}
	}

	// Initialize auth middleware
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	healthChecks := []router.HealthCheck{
		{
			Name: "database",
			Check: func(ctx context.Context) error {
				sqlDB, err := db.DB()
				if err != nil {
					return err
				}
				return sqlDB.PingContext(ctx)
			},
		},
	}
	if rc != nil {
		healthChecks = append(healthChecks, router.HealthCheck{
			Name: "redis",
			Check: func(ctx context.Context) error {
				return rc.Ping(ctx).Err()
			},
		})
	}

	// Initialize router
	appRouter := router.NewFiberRouter(
		router.Config{
			BodyLimit:       cfg.Server.BodyLimit,
			ReadTimeout:     cfg.Server.ReadTimeout,
			WriteTimeout:    cfg.Server.WriteTimeout,
			IdleTimeout:     cfg.Server.IdleTimeout,
			AllowedOrigins:  cfg.Security.AllowedOrigins,
			GlobalRateLimit: cfg.Security.GlobalRateLimit,
			AuthRateLimit:   cfg.Security.AuthRateLimit,
			RateLimitWindow: cfg.Security.RateLimitWindow,
			EnableDocs:      cfg.Server.EnableDocs || cfg.Deployment.IsDevelopment(),
			EnableMetrics:   cfg.Metrics.Enabled,
			Version:         cfg.Deployment.Version,
		},
		router.Handlers{
			Auth:            handlers.NewAuthHandler(signupFlow, loginFlow, recoveryFlow),
			AdminAuth:       handlers.NewAdminAuthHandler(adminAuthFlow),
			AdminAccount:    handlers.NewAdminAccountHandler(adminAccountFlow),
			BusinessProfile: handlers.NewBusinessProfileHandler(businessProfileFlow),
		},
		authMiddleware,
		healthChecks...,
	)

	return &Application{
		router:    appRouter,
		config:    cfg,
		server:    appRouter.GetApp(),
		stopFuncs: stopFuncs,
	}, nil
}
