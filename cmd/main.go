package main

import (
	"context"
	"errors"
	"os"

	"github.com/urfave/cli/v3"

	"gigcal/internal/services"
	"gigcal/internal/shared"
)

func main() {
	logger := shared.NewLogger(nil)

	if err := shared.LoadDotEnv(""); err != nil {
		logger.Warn("ignoring env file", "error", err)
	}

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	} else {
		config.ApplyEnv()
	}

	events := services.NewTicketmasterService(config.Credentials.Ticketmaster.APIKey, "", nil)
	calendar := services.NewGoogleCalendarService(config.Credentials.Google.APIKey, "", nil)

	runner := NewRunner(RunnerOpts{
		Config:   config,
		Events:   events,
		Calendar: calendar,
		Logger:   logger,
	})

	app := &cli.Command{
		Name:     "gigcal",
		Usage:    "Search live events & add them to Google Calendar",
		Version:  "0.2.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		err_ := errors.Unwrap(err)
		if errors.Is(err_, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		} else {
			logger.Fatalf("application error: %v", err)
		}
	}
}
