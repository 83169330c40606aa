// File: main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"slotwise/config"
	"slotwise/database"
	bookingRepo "slotwise/database/repository/booking"
	eventRepo "slotwise/database/repository/event"
	"slotwise/handlers"
	"slotwise/middleware"
	"slotwise/routes"
	"slotwise/services/booking"
	"slotwise/services/intelligence"
	"slotwise/services/routing"
	"slotwise/services/scheduling"
	"slotwise/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitOracleCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	router.Use(cors.Default())

	// repositories.
	bookings := bookingRepo.NewMongoBookingRepo()
	events := eventRepo.NewMongoEventRepo()

	// Availability oracles: the repo-backed oracle is authoritative; slot
	// discovery goes through the short-TTL cached wrapper.
	oracle := &scheduling.BookingOracle{Repo: bookings}
	advisoryOracle := &scheduling.CachedOracle{
		Inner: oracle,
		Cache: utils.GetOracleCacheClient(),
		TTL:   time.Duration(config.AppConfig.OracleCacheTTLSecs) * time.Second,
	}

	slotEngine := &scheduling.DefaultSlotEngine{
		Repo:           bookings,
		Oracle:         oracle,
		AdvisoryOracle: advisoryOracle,
		Logger:         logger,
	}

	var aiClient routing.AIClient
	if key := config.AppConfig.GeminiAPIKey; key != "" {
		gemini, err := intelligence.NewGeminiClient(key)
		if err != nil {
			logger.Sugar().Fatalf("main: failed to initialize Gemini client: %v", err)
		}
		aiClient = gemini
	} else {
		logger.Warn("GEMINI_API_KEY not set; AI routing disabled, fallbacks only")
	}

	routingEngine := &routing.Engine{
		Repo:   bookings,
		Oracle: oracle,
		AI:     aiClient,
		Logger: logger,
	}

	bookingService := &booking.DefaultBookingService{
		Events:   events,
		Bookings: bookings,
		Slots:    slotEngine,
		Router:   routingEngine,
		Logger:   logger,
	}

	slotHandler := handlers.NewSlotHandler(bookingService, logger)
	bookingHandler := handlers.NewBookingHandler(bookingService, logger)
	scheduleHandler := handlers.NewScheduleHandler(bookingService, logger)

	routes.RegisterRoutes(router, slotHandler, bookingHandler, scheduleHandler)

	srv := &http.Server{
		Addr:    ":" + config.AppConfig.AppPort,
		Handler: router,
	}

	go func() {
		logger.Sugar().Infof("listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Errorf("forced shutdown: %v", err)
	}
}
