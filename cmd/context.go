package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newContextCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "context",
		Short: "Print the assistant context blob for the active brand",
		RunE: func(cmd *cobra.Command, _ []string) error {
			blob, err := app.sessions.Context(cmd.Context())
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), blob)
			return err
		},
	}
}
