package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-ideaform/internal/logger"
	"github.com/goliatone/go-ideaform/internal/site"
	"github.com/goliatone/go-ideaform/pkg/submission"
)

const shutdownGrace = 10 * time.Second

func (a *app) serveCommand() *cobra.Command {
	var addr, endpoint string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the idea wizard over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("addr") {
				a.cfg.Server.Addr = addr
			}
			if cmd.Flags().Changed("endpoint") {
				a.cfg.Submission.Endpoint = endpoint
			}
			return a.serve(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	cmd.Flags().StringVar(&endpoint, "endpoint", "", "submission endpoint (default from config)")
	return cmd
}

func (a *app) serve(ctx context.Context) error {
	cat, err := a.catalog()
	if err != nil {
		return err
	}
	log := a.logger.With(logger.Scope("serve"))
	client := submission.New(
		submission.WithEndpoint(a.cfg.Submission.Endpoint),
		submission.WithTimeout(a.cfg.Submission.Timeout),
		submission.WithUserAgent("ideaform/"+Version),
		submission.WithLogger(a.logger),
	)
	srv, err := site.New(
		site.WithBasePath(a.cfg.Server.BasePath),
		site.WithSubmitter(client),
		site.WithCatalog(cat),
		site.WithLogger(a.logger),
		site.WithSessionTTL(a.cfg.Server.SessionTTL),
		site.WithSecureCookies(a.cfg.Server.SecureCookies),
		site.WithTheme(a.cfg.Theme.Name, a.cfg.Theme.Variant),
		site.WithSubmitTimeout(a.cfg.Submission.Timeout),
	)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	go srv.Sessions().Run(ctx, time.Minute)

	log.Info("wizard listening",
		slog.String("addr", a.cfg.Server.Addr),
		slog.String("path", srv.BasePath()),
		slog.String("endpoint", client.Endpoint()),
	)
	return listen(ctx, &http.Server{
		Addr:              a.cfg.Server.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}, log)
}

// listen serves until ctx is cancelled, then shuts down gracefully.
func listen(ctx context.Context, server *http.Server, log *slog.Logger) error {
	errs := make(chan error, 1)
	go func() {
		errs <- server.ListenAndServe()
	}()

	select {
	case err := <-errs:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
