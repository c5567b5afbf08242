package main

import (
	"log"

	"collections/cmd"
	"collections/internal/config"
	"collections/internal/logger"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	// Commands report configuration errors themselves; here it only picks
	// the logger settings.
	logConfig := logger.DefaultConfig()
	if cfg, err := config.Load(); err == nil {
		logConfig = cfg.GetLoggerConfig()
	}
	if err := logger.Setup(logConfig); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	l := logger.WithComponent("main")
	l.Debug().Msg("Starting collections CLI")

	cmd.Execute()
}
