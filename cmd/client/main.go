package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/iudanet/marketdash/internal/client/api"
	"github.com/iudanet/marketdash/internal/client/auth"
	"github.com/iudanet/marketdash/internal/client/cli"
	"github.com/iudanet/marketdash/internal/client/iocli"
	"github.com/iudanet/marketdash/internal/client/storage/boltdb"
	"github.com/iudanet/marketdash/internal/config"
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
	// Глобальные флаги
	showVersion := flag.Bool("version", false, "Show version information")
	serverURL := flag.String("server", "", "API server URL")
	dbPath := flag.String("db", "", "Path to local session database")
	envFile := flag.String("env", "", "Path to .env file")
	logLevel := flag.String("log-level", "", "Log level: debug, info, warn, error")
	password := flag.String("password", "", "Password (not recommended, use env var or file)")
	passwordFile := flag.String("password-file", "", "Path to file containing password")

	flag.Parse()

	if *showVersion {
		printVersion()
		return 0
	}

	stdio := iocli.NewStdio()

	args := flag.Args()
	if len(args) == 0 {
		cli.PrintUsage(stdio)
		return 1
	}

	cfg, err := config.LoadClient(*envFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	// Флаги имеют приоритет над окружением
	if *serverURL != "" {
		cfg.APIURL = *serverURL
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

	// Открываем BoltDB storage для резервного хранения сессии
	boltStorage, err := boltdb.New(ctx, cfg.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open database: %v\n", err)
		return 1
	}
	defer func() {
		if err := boltStorage.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	tokens, err := auth.NewTokenStore(cfg.APIURL, cfg.Production(), boltStorage, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	apiClient := api.NewClient(cfg.APIURL, tokens, logger)
	session := auth.NewManager(apiClient, tokens, cli.Navigator(stdio), auth.WithLogger(logger))
	defer session.Close()

	app := cli.New(stdio, apiClient, session, tokens, cli.Passwords{
		FromFile: *passwordFile,
		FromArgs: *password,
	})

	if err := app.Run(ctx, args[0], args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, cli.ErrUnknownCommand) {
			cli.PrintUsage(stdio)
		}
		return 1
	}
	return 0
}

func printVersion() {
	fmt.Printf("MarketDash Client\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
