// File: bloodlink/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bloodlink/config"
	"bloodlink/cron"
	"bloodlink/database"
	apptRepo "bloodlink/database/repository/appointment"
	credRepo "bloodlink/database/repository/credential"
	invRepo "bloodlink/database/repository/inventory"
	otpRepo "bloodlink/database/repository/otp"
	tokenRepo "bloodlink/database/repository/token"
	"bloodlink/handlers"
	"bloodlink/middleware"
	"bloodlink/routes"
	"bloodlink/services/auth"
	"bloodlink/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func main() {
	cfg := config.Load()
	utils.InitializeLogger(cfg.Env)
	logger := utils.GetLogger()

	mongoClient := database.Connect(cfg)
	authCache := utils.NewAuthCache(cfg)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware(cfg.MaxRequestsPerMin))

	// repositories.
	adminRepo := credRepo.NewMongoAdminRepo(mongoClient, cfg.DatabaseName)
	donorRepo := credRepo.NewMongoDonorRepo(mongoClient, cfg.DatabaseName)
	hospitalRepo := credRepo.NewMongoHospitalRepo(mongoClient, cfg.DatabaseName)
	bloodBankRepo := credRepo.NewMongoBloodBankRepo(mongoClient, cfg.DatabaseName)
	tokens := tokenRepo.NewMongoTokenRepo(mongoClient, cfg.DatabaseName)
	challenges := otpRepo.NewMongoOTPRepo(mongoClient, cfg.DatabaseName)
	appointments := apptRepo.NewMongoAppointmentRepo(mongoClient, cfg.DatabaseName)
	inventory := invRepo.NewMongoInventoryRepo(mongoClient, cfg.DatabaseName)

	// services.
	codec := auth.NewCodec(cfg.JWTSecret, cfg.AccessTokenTTL(), cfg.RefreshTokenTTL())
	tokenService := &auth.DefaultTokenService{Repo: tokens, Logger: logger}
	resolver := &auth.DefaultPrincipalResolver{
		Admins:     adminRepo,
		Donors:     donorRepo,
		Hospitals:  hospitalRepo,
		BloodBanks: bloodBankRepo,
	}

	notifier := &auth.LogNotifier{Logger: logger}
	dispatcher := &auth.QueueDispatcher{
		Client:   cron.NewOTPQueueClient(cfg),
		Fallback: notifier,
		Logger:   logger,
	}
	challengeEngine := &auth.DefaultChallengeEngine{
		Repo:        challenges,
		Dispatcher:  dispatcher,
		Expiry:      cfg.OTPExpiry(),
		MaxAttempts: cfg.OTPMaxAttempts,
		Logger:      logger,
	}

	authService := &auth.DefaultAuthService{
		Resolver:   resolver,
		Codec:      codec,
		Tokens:     tokenService,
		OTP:        challengeEngine,
		Admins:     adminRepo,
		Donors:     donorRepo,
		Hospitals:  hospitalRepo,
		BloodBanks: bloodBankRepo,
		Logger:     logger,
	}

	// Startup housekeeping: best-effort, never blocks boot.
	tokenService.CleanupLegacyRows()

	// Background workers and health monitor.
	cron.InitOTPWorker(cfg, notifier)
	utils.StartHealthMonitor([]*redis.Client{authCache}, mongoClient)

	// Assemble the handler bundle.
	handlerBundle := &routes.HandlerBundle{
		Auth:         handlers.NewAuthHandler(authService, resolver, authCache),
		OTP:          handlers.NewOTPHandler(challengeEngine),
		Appointments: handlers.NewAppointmentHandler(appointments),
		Inventory:    handlers.NewInventoryHandler(inventory),
		Admin:        handlers.NewAdminHandler(donorRepo),
		Authenticate: middleware.BearerAuthMiddleware(codec, tokenService, resolver, authCache),
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := cfg.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
