package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/cardroom/internal/accounts"
	"github.com/lox/cardroom/internal/server"
)

var CLI struct {
	Config   string `short:"c" long:"config" default:"cardroom.hcl" help:"Path to HCL configuration file"`
	Addr     string `short:"a" long:"addr" help:"Server address to bind to (overrides config)"`
	LogLevel string `short:"l" long:"log-level" help:"Log level (overrides config)"`
	DBPath   string `long:"db" help:"Path to the account database (overrides config)"`
}

func main() {
	ctx := kong.Parse(&CLI)

	cfg, err := server.LoadConfig(CLI.Config)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		ctx.Exit(1)
	}

	if CLI.Addr != "" {
		cfg.Server.Address = CLI.Addr
	}
	if CLI.LogLevel != "" {
		cfg.Server.LogLevel = CLI.LogLevel
	}
	if CLI.DBPath != "" {
		cfg.Database.Path = CLI.DBPath
	}

	if err := cfg.Validate(); err != nil {
		fmt.Printf("Invalid configuration: %v\n", err)
		ctx.Exit(1)
	}

	logger := log.New(os.Stderr)
	switch cfg.Server.LogLevel {
	case "debug":
		logger.SetLevel(log.DebugLevel)
	case "info":
		logger.SetLevel(log.InfoLevel)
	case "warn":
		logger.SetLevel(log.WarnLevel)
	case "error":
		logger.SetLevel(log.ErrorLevel)
	default:
		logger.SetLevel(log.InfoLevel)
	}

	logger.Info("Starting card room",
		"addr", cfg.ListenAddress(),
		"db", cfg.Database.Path,
		"bots", len(cfg.Bots))

	store, err := accounts.Open(cfg.Database.Path)
	if err != nil {
		logger.Error("Failed to open account database", "error", err)
		ctx.Exit(1)
	}
	defer store.Close()

	service := server.NewService(cfg, store, logger)
	wsServer := server.NewServer(cfg.ListenAddress(), service, logger)

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, groupCtx := errgroup.WithContext(runCtx)
	g.Go(func() error {
		return wsServer.Start(groupCtx)
	})
	g.Go(func() error {
		<-groupCtx.Done()
		logger.Info("Shutting down server...")
		service.Stop()
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server failed", "error", err)
		ctx.Exit(1)
	}
}
