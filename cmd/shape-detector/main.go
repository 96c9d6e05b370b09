package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"shape-detector/internal/app"
	"shape-detector/internal/config"
	"shape-detector/internal/logger"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration: %v\n", err)
		os.Exit(2)
	}

	log := logger.NewConsoleLogger(logger.ParseLevel(cfg.LogLevel))

	application, err := app.NewApplication(cfg, log)
	if err != nil {
		log.Error("Main", err, map[string]interface{}{
			"stage": "startup",
		})
		os.Exit(1)
	}

	runErr := application.Run()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := application.Shutdown(ctx); err != nil {
		log.Warning("Main", "shutdown did not complete", map[string]interface{}{
			"error": err.Error(),
		})
	}

	if runErr != nil {
		log.Error("Main", runErr, map[string]interface{}{
			"stage": "run",
		})
		os.Exit(1)
	}
}
