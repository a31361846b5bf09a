// cmd/logoline-feed/main.go
//
// Development history service. Serves the viewer's HTTP contract from a
// directory of PNG frames so logoline can be run without the production
// backend.

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"logoline/internal/config"
	"logoline/internal/feed"
)

func main() {
	configPath := flag.String("config", config.DefaultFile, "path to the YAML config file")
	framesDir := flag.String("frames", "", "directory of PNG frames (overrides config)")
	listen := flag.String("listen", "", "bind address (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *framesDir != "" {
		cfg.Feed.FramesDir = *framesDir
	}
	if *listen != "" {
		cfg.Feed.Listen = *listen
	}

	store, err := feed.LoadDir(cfg.Feed.FramesDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading frames: %v\n", err)
		os.Exit(1)
	}
	logger := log.New(os.Stderr, "", log.LstdFlags)
	logger.Printf("loaded %d frame(s) from %s", store.Len(), cfg.Feed.FramesDir)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := feed.NewServer(feed.SettingsFromConfig(cfg), store, feed.WithLogger(logger))
	if err := server.Start(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error starting server: %v\n", err)
		os.Exit(1)
	}

	<-ctx.Done()
	if err := server.Shutdown(context.Background()); err != nil {
		logger.Printf("shutdown: %v", err)
	}
}
