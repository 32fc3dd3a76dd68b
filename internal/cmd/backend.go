package cmd

import (
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-ideaform/internal/devbackend"
	"github.com/goliatone/go-ideaform/internal/logger"
	"github.com/goliatone/go-ideaform/pkg/contract"
)

func (a *app) backendCommand() *cobra.Command {
	var (
		addr       string
		seed       int
		failStatus int
	)
	cmd := &cobra.Command{
		Use:   "dev-backend",
		Short: "Run a local submission backend that follows the API contract",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			flags := cmd.Flags()
			if flags.Changed("addr") {
				a.cfg.Backend.Addr = addr
			}
			if flags.Changed("seed") {
				a.cfg.Backend.Seed = seed
			}
			if flags.Changed("fail-status") {
				a.cfg.Backend.FailStatus = failStatus
			}
			if err := a.cfg.Validate(); err != nil {
				return err
			}

			log := a.logger.With(logger.Scope("dev-backend"))
			backend, err := devbackend.New(
				devbackend.WithSeed(a.cfg.Backend.Seed),
				devbackend.WithFailure(a.cfg.Backend.FailStatus),
				devbackend.WithLogger(a.logger),
			)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			log.Info("backend listening",
				slog.String("addr", a.cfg.Backend.Addr),
				slog.String("submit", contract.SubmitPath),
				slog.Int("seed", a.cfg.Backend.Seed),
				slog.Int("failStatus", a.cfg.Backend.FailStatus),
			)
			return listen(ctx, &http.Server{
				Addr:              a.cfg.Backend.Addr,
				Handler:           backend.Handler(),
				ReadHeaderTimeout: 10 * time.Second,
			}, log)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	cmd.Flags().IntVar(&seed, "seed", 0, "first idea number handed out")
	cmd.Flags().IntVar(&failStatus, "fail-status", 0, "answer every submission with this error status")
	return cmd
}
