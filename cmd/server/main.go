package main

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/WavesCapital/Hybrid-House-sub001/internal/config"
	"github.com/WavesCapital/Hybrid-House-sub001/internal/database"
	"github.com/WavesCapital/Hybrid-House-sub001/internal/logging"
	"github.com/WavesCapital/Hybrid-House-sub001/internal/routes"
)

func main() {
	// 1. Load Config
	cfg := config.LoadConfig()

	logger := logging.New(cfg.LogLevel, cfg.AppEnv)

	if cfg.JWTSecret == "" {
		logger.Fatal("JWT_SECRET is required")
	}

	// 2. Connect to Database
	if cfg.DBUrl == "" {
		logger.Fatal("DB_URL is required")
	}
	if err := database.ConnectDB(cfg.DBUrl, logger); err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB()

	// 3. Setup Fiber
	app := fiber.New()

	app.Use(cors.New())
	app.Use(fiberlogger.New())
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
		})
	})
	routes.RegisterRoutes(app, cfg, database.DB, logger)

	// 4. Start Server
	logger.Infof("Server starting on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		logger.Fatalf("Server failed to start: %v", err)
	}
}
