package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	catalogapp "github.com/returnhub/backend/internal/application/catalog"
	identityapp "github.com/returnhub/backend/internal/application/identity"
	returnsapp "github.com/returnhub/backend/internal/application/returns"
	"github.com/returnhub/backend/internal/application/uploads"
	"github.com/returnhub/backend/internal/domain/returns"
	"github.com/returnhub/backend/internal/infrastructure/auth"
	"github.com/returnhub/backend/internal/infrastructure/config"
	"github.com/returnhub/backend/internal/infrastructure/logger"
	"github.com/returnhub/backend/internal/infrastructure/notification"
	"github.com/returnhub/backend/internal/infrastructure/persistence"
	"github.com/returnhub/backend/internal/infrastructure/storage"
	"github.com/returnhub/backend/internal/interfaces/http/handler"
	"github.com/returnhub/backend/internal/interfaces/http/router"
)

// version is overridden at build time via -ldflags
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting ReturnHub backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	// Database
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	db, err := persistence.NewDatabase(&cfg.Database, log, gormLogLevel)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	attributeRepo := persistence.NewGormVariationAttributeRepository(db.DB)
	variationRepo := persistence.NewGormProductVariationRepository(db.DB)
	returnRepo := persistence.NewGormReturnRepository(db.DB)
	adminUserRepo := persistence.NewGormAdminUserRepository(db.DB)
	auditLog := persistence.NewGormAuditLogRepository(db.DB)

	// Token infrastructure
	jwtService := auth.NewJWTService(cfg.JWT)
	var blacklist auth.TokenBlacklist
	if redisBlacklist, err := auth.NewRedisTokenBlacklist(cfg.Redis); err != nil {
		if cfg.IsProduction() {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		log.Warn("Redis unavailable, using in-memory token blacklist", zap.Error(err))
		blacklist = auth.NewInMemoryTokenBlacklist()
	} else {
		blacklist = redisBlacklist
		log.Info("Redis token blacklist connected")
	}

	// Notifications
	var notifier returns.Notifier
	if cfg.Notification.Enabled {
		notifier = notification.NewSMTPMailer(cfg.SMTP, log)
		log.Info("SMTP notifications enabled",
			zap.String("host", cfg.SMTP.Host),
			zap.Int("port", cfg.SMTP.Port),
		)
	} else {
		notifier = notification.NewNoopNotifier(log)
		log.Info("Notifications disabled")
	}

	// Image storage
	imageStorage, err := storage.NewS3ImageStorage(&cfg.Storage, log)
	if err != nil {
		log.Fatal("Failed to initialize image storage", zap.Error(err))
	}
	bucketCtx, cancelBucket := context.WithTimeout(context.Background(), 10*time.Second)
	if err := imageStorage.EnsureBucket(bucketCtx); err != nil {
		cancelBucket()
		log.Fatal("Failed to ensure storage bucket", zap.Error(err))
	}
	cancelBucket()

	// Application services
	sendTimeout := cfg.Notification.SendTimeout
	productService := catalogapp.NewProductService(productRepo, attributeRepo, variationRepo, returnRepo, auditLog, log)
	attributeService := catalogapp.NewAttributeService(attributeRepo, variationRepo, auditLog, log)
	variationService := catalogapp.NewVariationService(productRepo, attributeRepo, variationRepo, auditLog, log)
	submissionService := returnsapp.NewSubmissionService(returnRepo, productRepo, variationRepo, notifier, sendTimeout, log)
	trackingService := returnsapp.NewTrackingService(returnRepo, log)
	adminReturnService := returnsapp.NewAdminService(returnRepo, notifier, auditLog, sendTimeout, log)
	authService := identityapp.NewAuthService(adminUserRepo, jwtService, blacklist, log)
	uploadService := uploads.NewService(imageStorage, cfg.Upload, log)

	// HTTP layer
	engine := router.New(
		router.Deps{
			Config:     cfg,
			Logger:     log,
			JWTService: jwtService,
			Blacklist:  blacklist,
		},
		router.Handlers{
			System:       handler.NewSystemHandler(db, version),
			Auth:         handler.NewAuthHandler(authService),
			Public:       handler.NewPublicHandler(submissionService, trackingService, variationService, uploadService),
			Product:      handler.NewProductHandler(productService),
			Attribute:    handler.NewAttributeHandler(attributeService),
			Variation:    handler.NewVariationHandler(variationService),
			AdminReturns: handler.NewAdminReturnHandler(adminReturnService),
			Audit:        handler.NewAuditHandler(auditLog),
		},
	)

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

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
