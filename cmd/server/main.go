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
	"github.com/staylodge/service-reservation/internal/application"
	"github.com/staylodge/service-reservation/internal/common/auth"
	"github.com/staylodge/service-reservation/internal/common/database"
	"github.com/staylodge/service-reservation/internal/common/health"
	"github.com/staylodge/service-reservation/internal/common/kafka"
	"github.com/staylodge/service-reservation/internal/common/lock"
	"github.com/staylodge/service-reservation/internal/common/logger"
	"github.com/staylodge/service-reservation/internal/common/middleware"
	"github.com/staylodge/service-reservation/internal/config"
	reservationDomain "github.com/staylodge/service-reservation/internal/domain/reservation"
	reservationEvents "github.com/staylodge/service-reservation/internal/events"
	"github.com/staylodge/service-reservation/internal/handler"
	"github.com/staylodge/service-reservation/internal/repository"
	"go.uber.org/zap"
)

const serviceName = "service-reservation"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.NewNamed(cfg.AppEnv, serviceName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting "+serviceName,
		zap.String("port", cfg.Port),
		zap.String("lock_backend", cfg.Booking.LockBackend),
	)

	// Connect to database
	dbConfig := database.PostgresConfig{
		Host:     cfg.DBConfig.Host,
		Port:     cfg.DBConfig.Port,
		User:     cfg.DBConfig.User,
		Password: cfg.DBConfig.Password,
		DBName:   cfg.DBConfig.DBName,
		SSLMode:  cfg.DBConfig.SSLMode,
	}
	db, err := database.Connect(dbConfig, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	// Run database migrations
	if cfg.AppEnv == "development" {
		if err := db.AutoMigrate(repository.Models()...); err != nil {
			log.Fatal("failed to run auto-migration", zap.Error(err))
		}
		log.Info("database migration completed (dev auto-migrate)")
	} else {
		if err := database.RunMigrations(dbConfig.DatabaseURL(), cfg.MigrationsDir, log); err != nil {
			log.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Per-listing booking lock
	var locker lock.Locker = lock.NewMemoryLocker()
	if cfg.Booking.LockBackend == config.LockBackendRedis {
		redisClient, err := lock.NewRedisClient(ctx, cfg.RedisConfig.Addr, cfg.RedisConfig.Password, cfg.RedisConfig.DB)
		if err != nil {
			log.Fatal("failed to connect to redis", zap.Error(err))
		}
		defer func() { _ = redisClient.Close() }()
		locker = lock.NewRedisLocker(redisClient, "reservation:lock:", cfg.Booking.LockTTL, log)
	}

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(cfg.JWTConfig.Secret, cfg.JWTConfig.Issuer, 15*time.Minute)

	// Initialize Kafka producer
	kafkaProducer := kafka.NewProducer(cfg.KafkaConfig.Brokers, log)
	defer func() { _ = kafkaProducer.Close() }()

	// Initialize repositories
	transactor := repository.NewGormTransactor(db)
	listingRepo := repository.NewGormListingRepository(db)
	providerRepo := repository.NewGormProviderRepository(db)
	reservationRepo := repository.NewGormReservationRepository(db)
	notificationRepo := repository.NewGormNotificationRepository(db)

	// Initialize application services
	notificationService := application.NewNotificationService(notificationRepo, kafkaProducer, log)
	listingService := application.NewListingService(transactor, listingRepo, providerRepo, cfg.Booking.Blocking, log)
	reservationService := application.NewReservationService(
		transactor,
		reservationRepo,
		listingRepo,
		reservationDomain.NewNightlyPricingStrategy(),
		locker,
		notificationService,
		kafkaProducer,
		log,
		application.ReservationOptions{
			Blocking:         cfg.Booking.Blocking,
			FolioMaxAttempts: cfg.Booking.FolioMaxAttempts,
		},
	)

	// Initialize and start payment event consumer in a goroutine
	groupID := cfg.KafkaConfig.GroupPrefix + "reservation-service"
	paymentConsumer := reservationEvents.NewPaymentEventConsumer(
		cfg.KafkaConfig.Brokers,
		groupID,
		reservationService,
		log,
	)
	defer func() { _ = paymentConsumer.Close() }()

	go func() {
		log.Info("starting payment event consumer")
		if err := paymentConsumer.Start(ctx); err != nil && err != context.Canceled {
			log.Error("payment event consumer error", zap.Error(err))
		}
	}()

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	// Apply global middleware
	router.Use(middleware.RecoveryMiddleware(log))
	router.Use(middleware.LoggerMiddleware(log))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.CORSConfig.AllowedOrigins))
	router.Use(middleware.SecurityHeadersMiddleware())

	// Register health check routes
	healthHandler := health.NewHandler(db, serviceName)
	healthHandler.RegisterRoutes(router)

	// Register routes
	handler.NewReservationHandler(reservationService).RegisterRoutes(&router.RouterGroup, jwtManager)
	handler.NewListingHandler(listingService, reservationService).RegisterRoutes(&router.RouterGroup, jwtManager)
	handler.NewNotificationHandler(notificationService).RegisterRoutes(&router.RouterGroup, jwtManager)
	handler.NewAdminHandler(reservationService, listingService).RegisterRoutes(&router.RouterGroup, jwtManager)

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down " + serviceName + "...")

	// Cancel the consumer context
	cancel()

	// Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server forced shutdown", zap.Error(err))
	}

	log.Info(serviceName + " stopped")
}
