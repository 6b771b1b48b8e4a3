// Package main provides the main entry point for the Alza transportation cost control service
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

	"github.com/JakubKrejcir/alza-cost-control/app/handlers"
	"github.com/JakubKrejcir/alza-cost-control/app/middleware"
	"github.com/JakubKrejcir/alza-cost-control/app/router"
	"github.com/JakubKrejcir/alza-cost-control/app/services"
	businessflow "github.com/JakubKrejcir/alza-cost-control/business_flow"
	"github.com/JakubKrejcir/alza-cost-control/config"
	_ "github.com/JakubKrejcir/alza-cost-control/docs"
	"github.com/JakubKrejcir/alza-cost-control/models"
	"github.com/JakubKrejcir/alza-cost-control/repository"
	"github.com/gofiber/fiber/v3"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/natefinch/lumberjack.v2"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Application represents the main application structure
type Application struct {
	router    *router.FiberRouter
	config    *config.ProductionConfig
	server    *fiber.App
	stopFuncs []func()
}

func main() {
	log.Println("Starting cost control application...")

	// Load production configuration
	cfg, err := config.LoadProductionConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	setupLogging(cfg.Logging)

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

		if err := app.server.Listen(address); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for shutdown signal
	<-sigChan
	log.Println("Shutting down gracefully...")

	// Stop background workers
	for _, fn := range app.stopFuncs {
		fn()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := app.server.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}

	log.Println("Server stopped")
}

// setupLogging routes the standard logger to a rotating file when configured
func setupLogging(cfg config.LoggingConfig) {
	if cfg.Output == "stdout" || cfg.Output == "" {
		return
	}

	rotating := &lumberjack.Logger{
		Filename:   cfg.FilePath,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
		Compress:   cfg.Compress,
	}

	if cfg.Output == "both" {
		log.SetOutput(io.MultiWriter(os.Stdout, rotating))
	} else {
		log.SetOutput(rotating)
	}
}

// initializeDatabase initializes the database connection with connection pooling
func initializeDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
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

	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	log.Printf("Database connection established with %d max open connections, %d max idle connections",
		cfg.MaxOpenConns, cfg.MaxIdleConns)

	return db, nil
}

// initializeCache initializes the Redis client and verifies connectivity
func initializeCache(cfg config.CacheConfig) (*redis.Client, error) {
	if !cfg.Enabled || cfg.Provider != "redis" {
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

	log.Printf("Redis connection established to %s", cfg.RedisURL)
	return rc, nil
}

// initializeApplication initializes the main application components
func initializeApplication(cfg *config.ProductionConfig) (*Application, error) {
	var stopFuncs []func()

	// Initialize database
	db, err := initializeDatabase(cfg.Database)
	if err != nil {
		return nil, err
	}

	rc, err := initializeCache(cfg.Cache)
	if err != nil {
		return nil, err
	}

	// Bootstrap the admin user when configured
	if err := ensureAdminUser(db, cfg.Admin, cfg.Security.BcryptCost); err != nil {
		return nil, err
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewUserSessionRepository(db)
	carrierRepo := repository.NewCarrierRepository(db)
	contractRepo := repository.NewContractRepository(db)
	depotRepo := repository.NewDepotRepository(db)
	mappingRepo := repository.NewDepotNameMappingRepository(db)
	routeRepo := repository.NewRouteRepository(db)
	depotHistoryRepo := repository.NewRouteDepotHistoryRepository(db)
	carrierHistoryRepo := repository.NewRouteCarrierHistoryRepository(db)
	priceConfigRepo := repository.NewPriceConfigRepository(db)
	planRepo := repository.NewTransportPlanRepository(db)
	proofRepo := repository.NewProofRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)

	// Initialize token service
	tokenService, err := services.NewTokenService(
		cfg.JWT.AccessTokenTTL,
		cfg.JWT.Issuer,
		cfg.JWT.Audience,
		cfg.JWT.UseRSAKeys,
		cfg.JWT.PrivateKey,
		cfg.JWT.PublicKey,
		cfg.JWT.SecretKey,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token service: %w", err)
	}

	log.Printf("Token service initialized with issuer: %s, audience: %s", cfg.JWT.Issuer, cfg.JWT.Audience)

	// Session store; redis when available, in-process otherwise
	var sessionStore services.SessionStore
	if rc != nil {
		sessionStore = services.NewRedisSessionStore(rc, cfg.Cache.RedisPrefix+"session:")
	} else {
		sessionStore = services.NewMemorySessionStore(cfg.Cache.CleanupInterval)
	}
	stopFuncs = append(stopFuncs, func() {
		if err := sessionStore.Close(); err != nil {
			log.Printf("Error closing session store: %v", err)
		}
	})

	textReader := services.NewPDFTextReader()

	// Initialize flows
	authFlow := businessflow.NewAuthFlow(userRepo, sessionRepo, tokenService, sessionStore)
	carrierFlow := businessflow.NewCarrierFlow(carrierRepo)
	depotFlow := businessflow.NewDepotFlow(depotRepo, mappingRepo)
	routeFlow := businessflow.NewRouteFlow(routeRepo)
	depotHistory := businessflow.NewAssignmentHistoryManager(depotHistoryRepo, "depot")
	carrierHistory := businessflow.NewAssignmentHistoryManager(carrierHistoryRepo, "carrier")
	planFlow := businessflow.NewPlanFlow(planRepo, carrierRepo, depotFlow, routeFlow, depotHistory, carrierHistory, db)
	contractFlow := businessflow.NewContractFlow(contractRepo, carrierRepo, priceConfigRepo, textReader, db)
	proofFlow := businessflow.NewProofFlow(proofRepo, carrierRepo, db)
	invoiceFlow := businessflow.NewInvoiceFlow(invoiceRepo, carrierRepo)
	billingFlow := businessflow.NewBillingFlow(carrierRepo, planRepo, priceConfigRepo, proofRepo, invoiceRepo)

	// Initialize handlers
	routerHandlers := router.Handlers{
		Auth:           handlers.NewAuthHandler(authFlow),
		Carrier:        handlers.NewCarrierHandler(carrierFlow),
		Plan:           handlers.NewPlanHandler(planFlow),
		Contract:       handlers.NewContractHandler(contractFlow),
		Proof:          handlers.NewProofHandler(proofFlow),
		Invoice:        handlers.NewInvoiceHandler(invoiceFlow),
		Reconciliation: handlers.NewReconciliationHandler(billingFlow),
	}

	// Initialize auth middleware
	authMiddleware := middleware.NewAuthMiddleware(authFlow)

	// Initialize router
	appRouter := router.NewFiberRouter(routerHandlers, authMiddleware, cfg.Security.AllowedOrigins)

	fiberRouter := appRouter.(*router.FiberRouter)
	application := &Application{
		router:    fiberRouter,
		config:    cfg,
		server:    fiberRouter.GetApp(),
		stopFuncs: stopFuncs,
	}

	return application, nil
}

// ensureAdminUser creates the configured admin account on first start
func ensureAdminUser(db *gorm.DB, cfg config.AdminConfig, bcryptCost int) error {
	if cfg.Username == "" || cfg.Password == "" {
		return nil
	}

	userRepo := repository.NewUserRepository(db)
	existing, err := userRepo.ByUsername(context.Background(), cfg.Username)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), bcryptCost)
	if err != nil {
		return err
	}

	admin := &models.User{
		Username:     cfg.Username,
		PasswordHash: string(hash),
		Role:         models.UserRoleAdmin,
		IsActive:     true,
	}
	if err := userRepo.Save(context.Background(), admin); err != nil {
		return err
	}

	log.Printf("Bootstrap admin user %q created", cfg.Username)
	return nil
}
