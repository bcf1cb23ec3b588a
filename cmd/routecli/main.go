package main

import (
	"context"
	"fmt"
	"map-routing-service/internal/app"
	"map-routing-service/internal/cli"
	"map-routing-service/internal/config"
	"map-routing-service/internal/platform/obs"
	"os"
	"os/signal"
)

// routecli asks for two place names and prints the straight-line distance
// and the travel time at car speed.
func main() {
	config.LoadDotEnv()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Logs go to stderr, keeping stdout for the session.
	logger, err := obs.NewLogger(cfg.AppEnv)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	geocoder, closeGeocoder, err := app.NewGeocoder(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to wire geocoder: %v\n", err)
		os.Exit(1)
	}
	defer closeGeocoder()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cli.NewPrompter(geocoder, os.Stdin, os.Stdout, logger).Run(ctx); err != nil {
		if cli.IsEOF(err) {
			fmt.Fprintln(os.Stdout)
			return
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
