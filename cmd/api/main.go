package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/platewise/backend/config"
	"github.com/platewise/backend/internal/api"
	"github.com/platewise/backend/internal/database"
	"github.com/platewise/backend/internal/middleware"
	"github.com/platewise/backend/internal/router"
	"github.com/platewise/backend/internal/server"
	"github.com/platewise/backend/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	model, err := service.NewGeminiModel(context.Background())
	if err != nil {
		log.Fatalf("Failed to initialize Gemini client: %v", err)
	}

	var images *service.ImageService
	if cfg.UnsplashAccessKey != "" {
		images = service.NewImageService(cfg.UnsplashAccessKey)
	}

	authService := service.NewAuthService(db, cfg.JWTSecret)
	profileService := service.NewProfileService(db)
	mealService := service.NewMealService(db)
	planService := service.NewMealPlanService(db, images)
	generationService := service.NewGenerationService(model)

	limiter := middleware.NewRateLimiter(
		middleware.NewRedisCounter(redisClient),
		middleware.RateLimitConfig{
			Window:    cfg.GenerateRateWindow,
			Limit:     cfg.GenerateRateLimit,
			KeyPrefix: "rate_limit:generate",
		},
	)

	engine := router.SetupRouter(
		api.NewAuthHandler(authService),
		api.NewProfileHandler(profileService),
		api.NewMealHandler(mealService),
		api.NewPlanHandler(planService),
		api.NewGenerateHandler(generationService),
		authService,
		limiter,
		cfg.AllowedOrigins,
	)

	srv := server.New(engine, cfg.ServerHost, cfg.ServerPort)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-quit:
		log.Printf("Received signal: %v", sig)
	}

	log.Println("Shutting down server...")
	if err := srv.Shutdown(context.Background()); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")
}
