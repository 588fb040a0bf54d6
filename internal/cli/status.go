package cli

import (
	"github.com/spf13/cobra"

	"github.com/mcoot/sessionflow/internal/navigation"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the header for the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			result := StatusResult{
				Phase:  app.Controller.Phase(),
				Header: app.Gate.Header(),
			}
			if user, ok := app.Store.Current().User(); ok {
				result.Authenticated = true
				result.User = &user
			}

			out.Print(result)
			return nil
		},
	}
}

func newNavigateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "navigate [route]",
		Short: "Resolve where a route lands for the current session",
		Long: `Resolve where a route lands for the current session.

With no route, follows the Get Started action: the dashboard when signed in,
the sign-in page otherwise.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				route := app.Gate.GetStarted()
				out.Print(NavigateResult{Requested: route, Route: route})
				return nil
			}

			requested := navigation.Route(args[0])
			out.Print(NavigateResult{Requested: requested, Route: app.Gate.Resolve(requested)})
			return nil
		},
	}
}
