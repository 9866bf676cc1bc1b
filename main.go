package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"radiant/config"
	"radiant/cron"
	"radiant/database"
	catalogRepoPkg "radiant/database/repository/catalog"
	sessionRepoPkg "radiant/database/repository/session"
	staffRepoPkg "radiant/database/repository/staff"
	"radiant/handlers"
	"radiant/routes"
	"radiant/services/routing"
	"radiant/services/scheduling"
	"radiant/services/session"
	"radiant/services/verification"
	"radiant/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitVerifyCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())

	// repositories.
	catalogRepo := catalogRepoPkg.NewMongoCatalogRepo()
	staffRepo := staffRepoPkg.NewMongoStaffRepo()
	sessionRepo := sessionRepoPkg.NewMongoSessionRepo()

	if repo, ok := sessionRepo.(*sessionRepoPkg.MongoSessionRepo); ok {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := repo.EnsureIndexes(ctx); err != nil {
			logger.Sugar().Fatalf("main: failed to create session indexes: %v", err)
		}
		cancel()
	}

	// services.
	gateway := scheduling.NewGateway(scheduling.GatewayConfig{
		BaseURL:   config.AppConfig.BookingAPIBaseURL,
		APIKey:    config.AppConfig.BookingAPIKey,
		Locations: config.AppConfig.BookingLocations,
	}, scheduling.NewAvailabilityCache(), catalogRepo, staffRepo)

	routingService := &routing.DefaultRoutingService{
		StaffRepo: staffRepo,
	}

	flowService := &verification.DefaultFlowService{
		Gateway: gateway,
		Store:   verification.NewRedisStore(utils.GetVerifyCacheClient()),
	}

	trackerService := &session.DefaultTrackerService{
		Repo: sessionRepo,
	}

	// Background worker: stale-session finalizer and nightly catalog sync.
	cron.InitWorker(trackerService, gateway)
	queueClient := cron.NewQueueClient()
	defer queueClient.Close()

	// Assemble the handler bundle and register routes.
	handlerBundle := handlers.NewHandlerBundle(
		gateway,
		routingService,
		flowService,
		trackerService,
		catalogRepo,
		queueClient,
	)
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
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
