package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"
	"golang.org/x/oauth2"

	"gigcal/internal/models"
	"gigcal/internal/repositories"
	"gigcal/internal/server"
	"gigcal/internal/shared"
	"gigcal/internal/tasks"
	"gigcal/internal/ui"
)

const (
	googleAuthURL  = "https://accounts.google.com/o/oauth2/v2/auth"
	googleTokenURL = "https://oauth2.googleapis.com/token"
	calendarScope  = "https://www.googleapis.com/auth/calendar"
)

// Serve starts the web server hosting the search form and the OAuth2 callback.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd.String("config"))
	if port := cmd.Int("port"); port != 0 {
		config.Server.Port = int(port)
	}

	if err := config.Validate(); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidConfig, err)
	}

	oauthConfig := &oauth2.Config{
		ClientID:     config.Credentials.Google.ClientID,
		ClientSecret: config.Credentials.Google.ClientSecret,
		RedirectURL:  config.Credentials.Google.RedirectURI,
		Scopes:       []string{calendarScope},
		Endpoint: oauth2.Endpoint{
			AuthURL:  googleAuthURL,
			TokenURL: googleTokenURL,
		},
	}

	var history models.Repository[*models.Insertion]
	db, err := shared.NewDatabase(config.Database.Path)
	if err != nil {
		r.logger.Warn("insertion history disabled", "error", err)
	} else {
		defer db.Close()
		shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)
		if err := shared.RunMigrations(db); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		history = repositories.NewInsertionRepository(db)
	}

	pipeline := tasks.NewPipeline(tasks.PipelineOpts{
		OAuth:    oauthConfig,
		Calendar: r.calendar,
		History:  history,
		Flows:    tasks.NewFlowStore(0),
		Logger:   r.logger,
	})

	router := server.NewBasicRouter()
	router.Use(server.Logging(r.logger), server.RateLimit(5, 10))
	router.Handler(server.NewSearchHandler(r.events, pipeline, r.logger))
	router.Handler(server.NewCallbackHandler(pipeline, r.logger))
	router.HandleRoot(
		server.StaticPage(server.PageForm, http.StatusOK),
		server.StaticPage(server.PageNotFound, http.StatusOK),
	)

	srv := &http.Server{
		Addr:         config.Server.Addr(),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	serveCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errChan := make(chan error, 1)
	go func() {
		r.logger.Info("listening", "addr", srv.Addr)
		errChan <- srv.ListenAndServe()
	}()

	baseURL := fmt.Sprintf("http://%s/", config.Server.Addr())
	r.writePlain("%s\n", ui.Title("gigcal"))
	r.writePlain("Search form at %s\n", baseURL)

	if cmd.Bool("open") {
		if err := shared.OpenBrowser(baseURL); err != nil {
			r.logger.Warn("failed to open browser", "error", err)
		}
	}

	select {
	case err := <-errChan:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
	case <-serveCtx.Done():
		r.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown failed: %w", err)
		}
	}

	r.writePlain("%s\n", ui.OK("✓ Server stopped"))
	return nil
}

// serveCommand hosts the search-to-calendar web flow
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the web server on port 3000",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
			&cli.IntFlag{
				Name:  "port",
				Usage: "Override the configured listen port",
			},
			&cli.BoolFlag{
				Name:  "open",
				Usage: "Open the search form in the default browser",
			},
		},
		Action: r.Serve,
	}
}
