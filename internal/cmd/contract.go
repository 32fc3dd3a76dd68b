package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-ideaform/pkg/contract"
)

func (a *app) contractCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "contract",
		Short: "Print the OpenAPI description of the submission endpoint",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := contract.Load(cmd.Context())
			if err != nil {
				return err
			}
			a.logger.Debug("contract loaded", "title", c.Title(), "version", c.Version())
			_, err = fmt.Fprint(cmd.OutOrStdout(), string(contract.Document()))
			return err
		},
	}
}
