package main

import (
	"os"

	"slotswap/cmd/internal/domain/sqlite"
	"slotswap/cmd/internal/domain/sqlite/repository"
	"slotswap/cmd/internal/routes"
	"slotswap/cmd/internal/service"
	"slotswap/cmd/internal/utils/validators"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Warnf("no .env file loaded: %v", err)
	}

	validate := validator.New()
	registerValidators(validate)

	jwtSecret := envOr("JWT_SECRET", "dev-secret")

	// Init SQLite
	db, err := sqlite.Init(envOr("DB_PATH", "./database.db"))
	if err != nil {
		log.Fatal("failed to initialize database", err)
	}

	// Getting repositories
	userRepo := repository.NewUserRepository(db)
	eventRepo := repository.NewEventRepository(db)
	swapRepo := repository.NewSwapRepository(db)

	// Getting services
	userService := service.NewUserService(userRepo, validate, jwtSecret)
	eventService := service.NewEventService(eventRepo, validate)
	swapService := service.NewSwapService(swapRepo, eventRepo)

	// Getting routes
	userRoutes := routes.NewUserDefault(userService)
	eventRoutes := routes.NewEventDefault(eventService)
	swapRoutes := routes.NewSwapDefault(swapService)

	e := echo.New()
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{envOr("FRONTEND_URL", "http://localhost:5174")},
		AllowCredentials: true,
	}))

	e.POST("/api/signup", userRoutes.Signup)
	e.POST("/api/login", userRoutes.Login)

	api := e.Group("/api", routes.RequireAuth(jwtSecret, userRepo))

	// Events
	api.GET("/events", eventRoutes.GetEvents)
	api.POST("/events", eventRoutes.CreateEvent)
	api.PATCH("/events/:id", eventRoutes.UpdateEvent)
	api.DELETE("/events/:id", eventRoutes.DeleteEvent)

	// Swaps
	api.GET("/swaps/swappable-slots", swapRoutes.GetSwappableSlots)
	api.POST("/swaps/request", swapRoutes.CreateSwapRequest)
	api.POST("/swaps/response/:requestId", swapRoutes.RespondSwapRequest)
	api.GET("/swaps/requests", swapRoutes.GetRequests)

	err = e.Start(":" + envOr("PORT", "4000"))
	if err != nil {
		e.Logger.Fatal(err)
	}
}

func registerValidators(validate *validator.Validate) {
	_ = validate.RegisterValidation("iso8601", validators.IsIso8601)
	_ = validate.RegisterValidation("nospaces", validators.NoWhiteSpaces)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
