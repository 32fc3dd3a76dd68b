package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-ideaform/pkg/renderers/tui"
	"github.com/goliatone/go-ideaform/pkg/submission"
	"github.com/goliatone/go-ideaform/pkg/wizard"
)

func (a *app) promptCommand() *cobra.Command {
	var (
		format   string
		dryRun   bool
		endpoint string
		output   string
	)
	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Fill in the idea wizard in the terminal",
		Long: `prompt walks through the three wizard steps interactively and submits the
idea. With --dry-run nothing is sent and the validated idea is printed in the
chosen format instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			outputFormat, err := tui.ParseOutputFormat(format)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("endpoint") {
				a.cfg.Submission.Endpoint = endpoint
			}
			cat, err := a.catalog()
			if err != nil {
				return err
			}

			runner := tui.NewRunner(
				tui.WithOutput(cmd.ErrOrStderr()),
				tui.WithOutputFormat(outputFormat),
				tui.WithCatalog(cat),
				tui.WithCollectOnly(dryRun),
				tui.WithTheme(tui.Theme{InfoPrefix: "  ", ErrorPrefix: "! "}),
			)
			options := []wizard.Option{wizard.WithLogger(a.logger)}
			if !dryRun {
				options = append(options, wizard.WithSubmitter(submission.New(
					submission.WithEndpoint(a.cfg.Submission.Endpoint),
					submission.WithTimeout(a.cfg.Submission.Timeout),
					submission.WithUserAgent("ideaform/"+Version),
					submission.WithLogger(a.logger),
				)))
			}

			result, err := runner.Run(cmd.Context(), runner.Wizard(options...))
			if errors.Is(err, tui.ErrAborted) {
				return nil
			}
			if err != nil {
				return err
			}
			if !dryRun && output == "" {
				return nil
			}

			payload, err := runner.Encode(result.Data)
			if err != nil {
				return err
			}
			if output != "" {
				if err := os.WriteFile(output, payload, 0o644); err != nil {
					return fmt.Errorf("write %s: %w", output, err)
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "Idea written to %s\n", output)
				return nil
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(payload))
			return err
		},
	}
	cmd.Flags().StringVar(&format, "format", string(tui.OutputFormatJSON), "output format (json, form, pretty)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "validate and print the idea without submitting it")
	cmd.Flags().StringVar(&endpoint, "endpoint", "", "submission endpoint (default from config)")
	cmd.Flags().StringVar(&output, "output", "", "also write the idea to this file")
	return cmd
}
