package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mcoot/sessionflow/internal/model"
	"github.com/mcoot/sessionflow/internal/navigation"
)

func newLoginCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with an existing account",
		RunE: func(cmd *cobra.Command, args []string) error {
			pass, err := passwordOrStdin(password, cmd.InOrStdin())
			if err != nil {
				return err
			}

			creds := model.Credentials{Email: email, Password: pass}
			return submit(cmd, "Signing in...", app.Gate.AfterLogin(), func(ctx context.Context) error {
				return app.Controller.Login(ctx, creds)
			})
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address (required)")
	cmd.Flags().StringVar(&password, "password", "", "Password (read from stdin if omitted)")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func newRegisterCmd() *cobra.Command {
	var name, email, password string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and sign in",
		RunE: func(cmd *cobra.Command, args []string) error {
			pass, err := passwordOrStdin(password, cmd.InOrStdin())
			if err != nil {
				return err
			}

			profile := model.RegistrationProfile{FullName: name, Email: email, Password: pass}
			return submit(cmd, "Creating account...", app.Gate.AfterLogin(), func(ctx context.Context) error {
				return app.Controller.Register(ctx, profile)
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Full name (required)")
	cmd.Flags().StringVar(&email, "email", "", "Email address (required)")
	cmd.Flags().StringVar(&password, "password", "", "Password (read from stdin if omitted)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out",
		RunE: func(cmd *cobra.Command, args []string) error {
			return submit(cmd, "Signing out...", app.Gate.AfterLogout(), func(ctx context.Context) error {
				return app.Controller.Logout(ctx)
			})
		},
	}
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			out.Print(newSessionResult(app.Store.Current(), ""))
			return nil
		},
	}
}

// submit runs one form submission with a FormView attached and prints the
// resulting session. The redirect is the one the gate reports for the
// transition, or fallback when the session did not flip.
func submit(cmd *cobra.Command, pending string, fallback navigation.Route, op func(context.Context) error) error {
	view := NewFormView(out, pending)
	detach := view.Attach(app.Controller)
	defer detach()

	var redirect navigation.Route
	unwatch := app.Gate.Watch(func(r navigation.Redirect) { redirect = r.To })
	defer unwatch()

	if err := op(cmd.Context()); err != nil {
		return err
	}

	if redirect == "" {
		redirect = fallback
	}
	out.Print(newSessionResult(app.Store.Current(), redirect))
	return nil
}

// passwordOrStdin returns the flag value, or the first line of stdin
func passwordOrStdin(flag string, in io.Reader) (string, error) {
	if flag != "" {
		return flag, nil
	}

	scanner := bufio.NewScanner(in)
	if scanner.Scan() {
		if pass := strings.TrimRight(scanner.Text(), "\r"); pass != "" {
			return pass, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", errors.New("--password is required (or pipe it on stdin)")
}
