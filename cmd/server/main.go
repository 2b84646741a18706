package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/iudanet/marketdash/internal/config"
	"github.com/iudanet/marketdash/internal/server"
	"github.com/iudanet/marketdash/internal/server/storage/sqlite"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	showVersion := flag.Bool("version", false, "Show version information")
	envFile := flag.String("env", "", "Path to .env file")
	addr := flag.String("addr", "", "Listen address (default: $MARKETDASH_ADDR or :3001)")
	dbPath := flag.String("db", "", "Path to SQLite database (default: $MARKETDASH_SERVER_DB)")
	logLevel := flag.String("log-level", "", "Log level: debug, info, warn, error")
	flag.Parse()

	if *showVersion {
		printVersion()
		return 0
	}

	cfg, err := config.LoadServer(*envFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if *addr != "" {
		cfg.Addr = *addr
	}
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}

	logger, err := config.NewLogger(os.Stderr, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := sqlite.New(ctx, cfg.DBPath)
	if err != nil {
		logger.Error("failed to open database", "path", cfg.DBPath, "error", err)
		return 1
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	logger.Info("starting MarketDash dev server",
		"version", Version,
		"env", cfg.Env,
		"addr", cfg.Addr,
		"db", cfg.DBPath)

	if err := server.New(cfg, logger, store, Version).Run(ctx); err != nil {
		logger.Error("server error", "error", err)
		return 1
	}
	return 0
}

func printVersion() {
	fmt.Printf("MarketDash Server\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
