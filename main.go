package main

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"github.com/Aquilabot/KreaPC-Configurator/internal/api"
	"github.com/Aquilabot/KreaPC-Configurator/internal/config"
	"github.com/Aquilabot/KreaPC-Configurator/pkg/catalog"
	"github.com/Aquilabot/KreaPC-Configurator/pkg/configurator"
	"github.com/Aquilabot/KreaPC-Configurator/pkg/pcpartpicker_automation"
	"github.com/Aquilabot/KreaPC-Configurator/pkg/scraper"
)

var logLevels = map[string]log.Level{
	"trace": log.LevelTrace,
	"debug": log.LevelDebug,
	"info":  log.LevelInfo,
	"warn":  log.LevelWarn,
	"error": log.LevelError,
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if level, ok := logLevels[cfg.LogLevel]; ok {
		log.SetLevel(level)
	}

	client := catalog.NewClient(cfg.Catalog.BaseURL, cfg.Catalog.Timeout)
	sessions := configurator.NewSessions(client, configurator.Options{
		PageSize: cfg.Configurator.PageSize,
		Naming:   configurator.NamingByName(cfg.Configurator.DefaultNaming),
	})

	// Initialize the scraper
	scrap := scraper.NewScraper()
	scrap.RandomizeUserAgent()

	// Create a Fiber app
	app := fiber.New()
	app.Use(helmet.New())
	app.Use(logger.New(logger.Config{
		Format: "${pid} | ${time} | ${latency} | [${ip}]:${port} | ${status} - ${method} ${path}\n",
	}))

	handler := api.NewHandler(sessions, client, &scrap, pcpartpicker_automation.ExportBuild, cfg.PCPartPicker.Region)
	handler.Register(app)

	log.Infof("Starting %s server on port %s (catalog %s)", cfg.Environment, cfg.Server.Port, cfg.Catalog.BaseURL)
	log.Fatal(app.Listen(":" + cfg.Server.Port))
}
