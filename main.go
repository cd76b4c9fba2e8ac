// File: main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rangelkoli/Wanderly/config"
	"github.com/rangelkoli/Wanderly/handlers"
	"github.com/rangelkoli/Wanderly/routes"
	"github.com/rangelkoli/Wanderly/services/planner"
	"github.com/rangelkoli/Wanderly/services/research"
	"github.com/rangelkoli/Wanderly/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	utils.InitSessionCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())

	// services.
	gateway := research.NewDefaultResearchGateway(research.Config{
		TavilyAPIKey:     config.AppConfig.TavilyAPIKey,
		GoogleMapsAPIKey: config.AppConfig.GoogleMapsAPIKey,
		SerpAPIKey:       config.AppConfig.SerpAPIKey,
	}, logger)

	sessionTTL := time.Duration(config.AppConfig.SessionTTLMinutes) * time.Minute
	sessionStore := planner.NewRedisSessionStore(utils.GetSessionCacheClient(), sessionTTL)

	var model planner.LanguageModel
	if config.AppConfig.GeminiAPIKey != "" {
		gemini, err := planner.NewGeminiClient(context.Background(), config.AppConfig.GeminiAPIKey)
		if err != nil {
			logger.Sugar().Fatalf("main: failed to initialize Gemini client: %v", err)
		}
		model = gemini
	} else {
		logger.Warn("GEMINI_API_KEY not set, planner will use deterministic fallbacks")
	}

	plannerService := &planner.DefaultPlannerService{
		Gateway: gateway,
		Store:   sessionStore,
		Model:   model,
		Logger:  logger,
	}
	plannerHandler := handlers.NewPlannerHandler(plannerService, logger)
	researchHandler := handlers.NewResearchHandler(gateway, logger)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		// Planner endpoints.
		StartPlannerHandler:         plannerHandler.StartSession,
		ResumePlannerHandler:        plannerHandler.ResumeSession,
		GetPlannerSessionHandler:    plannerHandler.GetSession,
		CancelPlannerSessionHandler: plannerHandler.CancelSession,

		// Research endpoints.
		SearchHandler:  researchHandler.Search,
		GeocodeHandler: researchHandler.Geocode,
		FlightsHandler: researchHandler.Flights,
	}

	// Register routes with the assembled handler bundle.
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
