package main

import (
	"context"
	"flag"
	"log"
	"os"

	"FXBrief/internal/di"
	"FXBrief/pkg/config"
)

func main() {
	// Parse flags
	configPath := flag.String("config", "config/config.yaml", "config file path")
	once := flag.String("once", "", "generate one report (morning|eod) to stdout and exit")
	flag.Parse()

	// Load config
	cfg, err := config.LoadWithEnv(*configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	// Wire DI: Initialize all dependencies
	app, err := di.InitializeApp(cfg)
	if err != nil {
		log.Fatalf("app initialization failed: %v", err)
	}

	// One-shot mode: print the report JSON and exit
	if *once != "" {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Report.Timeout)
		defer cancel()
		if err := app.RunOnce(ctx, *once); err != nil {
			log.Fatalf("report failed: %v", err)
		}
		return
	}

	log.Printf("env=%s port=%d", cfg.Environment, cfg.Server.Port)

	// Run application (blocks until signal)
	if err := app.Run(); err != nil {
		log.Printf("app error: %v", err)
		os.Exit(1)
	}
}
