package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/apiembed/apiembed/internal/api"
	"github.com/apiembed/apiembed/internal/config"
	"github.com/apiembed/apiembed/internal/service"
	"github.com/apiembed/apiembed/internal/source"
	"github.com/apiembed/apiembed/internal/targets"
	"github.com/apiembed/apiembed/internal/telemetry"
	"github.com/apiembed/apiembed/internal/view"
	"github.com/apiembed/apiembed/pkg/snippet"
)

const shutdownTimeout = 10 * time.Second

func main() {
	showVersion := flag.Bool("version", false, "Display version information")
	flag.Parse()

	if *showVersion {
		log.Printf("API Embed v%s (commit %s, built %s)", Version, GitCommit, BuildTime)
		return
	}

	if err := run(); err != nil {
		log.Fatalf("apiembed: %v", err)
	}
}

func run() error {
	log.Printf("Starting API Embed v%s (commit: %s)", Version, GitCommit)

	// .env never overrides variables already set in the environment
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}

	cfg := config.NewConfig()
	if cfg.Version == "dev" && Version != "dev" {
		cfg.Version = Version
	}

	registry, err := targets.NewRegistry(snippet.AvailableTargets())
	if err != nil {
		return fmt.Errorf("build target registry: %w", err)
	}
	log.Printf("Loaded %d snippet targets", registry.Len())

	renderer, err := view.New(view.Options{Dir: cfg.TemplateDir, NoCache: cfg.NoCache})
	if err != nil {
		return fmt.Errorf("load views: %w", err)
	}

	embedService := service.NewEmbedService(
		registry,
		source.NewFetcher(cfg.ToFetchConfig()),
		service.WithDebug(cfg.Debug),
	)

	shutdownTelemetry, metrics, err := telemetry.InitMetrics(cfg.Version)
	if err != nil {
		return fmt.Errorf("initialize metrics: %w", err)
	}
	defer func() {
		if err := shutdownTelemetry(context.Background()); err != nil {
			log.Printf("Failed to shutdown telemetry: %v", err)
		}
	}()

	server := api.NewServer(cfg, embedService, renderer, metrics)

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.Start()
	}()
	metrics.Up.Record(context.Background(), 1)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Println("Shutting down server...")
	metrics.Up.Record(context.Background(), 0)

	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(sctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
	return nil
}
