package cli

import (
	"github.com/spf13/cobra"
)

func newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "health",
		Short:       "Check identity service health",
		Annotations: map[string]string{skipBootstrap: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Identity.Health(cmd.Context()); err != nil {
				return err
			}

			out.Print(HealthResult{Status: "ok", Server: app.Identity.BaseURL()})
			return nil
		},
	}
}
