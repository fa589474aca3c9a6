// File: tablewala/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tablewala/config"
	"tablewala/cron"
	"tablewala/database"
	bucketRepoPkg "tablewala/database/repository/bucket"
	reservationRepoPkg "tablewala/database/repository/reservation"
	"tablewala/handlers"
	"tablewala/middleware"
	"tablewala/routes"
	"tablewala/services/allocation"
	"tablewala/services/dialogue"
	"tablewala/services/extract"
	"tablewala/services/notify"
	"tablewala/services/session"
	"tablewala/services/tasks"
	"tablewala/services/weather"
	"tablewala/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitSessionCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	bucketRepo := bucketRepoPkg.NewMongoBucketRepo()
	reservationRepo := reservationRepoPkg.NewMongoReservationRepo()

	// services.
	lexicon := extract.DefaultLexicon()
	if path := config.AppConfig.LexiconPath; path != "" {
		loaded, err := extract.LoadLexicon(path)
		if err != nil {
			logger.Sugar().Fatalf("main: failed to load lexicon from %s: %v", path, err)
		}
		lexicon = loaded
	}
	extractor := extract.NewEngine(lexicon)

	allocator := allocation.NewDefaultEngine(bucketRepo, allocation.ConfigFromApp(), logger)

	sessionTTL := time.Duration(config.AppConfig.SessionTTLMinutes) * time.Minute
	sessionStore := session.NewRedisStore(utils.GetSessionCacheClient(), sessionTTL)

	advisor := weather.NewHTTPAdvisor(logger)
	reminderScheduler := tasks.NewAsynqScheduler(logger)

	dialogueService := &dialogue.DefaultDialogueService{
		Sessions:       sessionStore,
		Extractor:      extractor,
		Allocator:      allocator,
		Advisor:        advisor,
		Reservations:   reservationRepo,
		Reminders:      reminderScheduler,
		RestaurantName: config.AppConfig.RestaurantName,
		Logger:         logger,
	}

	dialogueHandler := handlers.NewDialogueHandler(dialogueService)
	reservationHandler := handlers.NewReservationHandler(reservationRepo, allocator)
	adminHandler := handlers.NewAdminHandler(allocator)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		// Dialogue endpoints.
		HandleTurnHandler:     dialogueHandler.HandleTurn,
		AbandonSessionHandler: dialogueHandler.AbandonSession,

		// Reservation endpoints.
		GetReservationHandler:        reservationHandler.GetReservation,
		CancelReservationHandler:     reservationHandler.CancelReservation,
		GetBucketReservationsHandler: reservationHandler.GetBucketReservations,

		// Admin endpoints.
		BlockSlotHandler:           adminHandler.BlockSlot,
		UnblockSlotHandler:         adminHandler.UnblockSlot,
		AvailabilitySummaryHandler: adminHandler.GetAvailabilitySummary,
		AdminHealthHandler:         adminHandler.GetHealth,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Background workers.
	notifier := notify.NewWebhookNotifier(logger)
	go cron.InitReminderWorker(notifier, reservationRepo)
	utils.StartHealthMonitor(utils.GetSessionCacheClient(), database.MongoClient)

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
