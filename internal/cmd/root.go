// Package cmd holds the cobra commands of the ideaform binary.
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-ideaform/internal/config"
	"github.com/goliatone/go-ideaform/internal/logger"
	"github.com/goliatone/go-ideaform/pkg/catalog"
)

// app carries the state shared by every command of one invocation.
type app struct {
	cfgFile   string
	envFile   string
	logLevel  string
	logFormat string

	cfg    *config.Config
	logger *slog.Logger
}

// NewRootCommand builds a fresh command tree.
func NewRootCommand() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "ideaform",
		Short: "Collect product ideas through a three step wizard",
		Long: `ideaform serves the idea submission wizard as a web page, runs the same
wizard in the terminal and ships a local backend for development.

Settings come from ideaform.yaml, a .env file and IDEAFORM_* environment
variables, in increasing order of precedence. Flags win over all of them.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.load,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "ideaform.yaml", "config file, skipped when missing")
	flags.StringVar(&a.envFile, "env-file", ".env", "dotenv file, skipped when missing")
	flags.StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	flags.StringVar(&a.logFormat, "log-format", "", "log format (text, json)")

	root.AddCommand(
		a.serveCommand(),
		a.promptCommand(),
		a.backendCommand(),
		a.catalogCommand(),
		a.contractCommand(),
		a.configCommand(),
		versionCommand(),
	)
	return root
}

// Execute runs the root command against os.Args.
func Execute() error {
	return NewRootCommand().Execute()
}

func (a *app) load(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.cfgFile, a.envFile)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level = a.logLevel
	}
	if cmd.Flags().Changed("log-format") {
		cfg.Log.Format = a.logFormat
	}
	a.cfg = cfg
	a.logger = logger.New(logger.ParseLevel(cfg.Log.Level), cfg.Log.Format, cmd.ErrOrStderr())
	return nil
}

// catalog returns the configured copy catalog, or the embedded one.
func (a *app) catalog() (*catalog.Catalog, error) {
	if a.cfg == nil || a.cfg.Catalog == "" {
		return catalog.Default(), nil
	}
	return loadCatalogFile(a.cfg.Catalog)
}

func loadCatalogFile(path string) (*catalog.Catalog, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	cat, err := catalog.Load(os.DirFS(filepath.Dir(abs)), filepath.Base(abs))
	if err != nil {
		return nil, err
	}
	if err := cat.Validate(); err != nil {
		return nil, err
	}
	return cat, nil
}
