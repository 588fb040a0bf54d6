package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mcoot/sessionflow/internal/factory"
	"github.com/mcoot/sessionflow/internal/session"
)

// skipBootstrap marks commands that do not need the current session
const skipBootstrap = "skip-bootstrap"

var (
	cfg *Config
	app *factory.ClientApp
	out *Output
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()
	app = nil
	out = nil

	rootCmd := &cobra.Command{
		Use:   "sessionctl",
		Short: "CLI client for the session identity service",
		Long: `sessionctl signs in to, registers with, and signs out of the identity service.

Each invocation resumes the session saved by the previous one, performs at most
one submission, and saves the resulting session cookie for the next run.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cfg.Output != "text" && cfg.Output != "json" {
				return fmt.Errorf("invalid output format %q: must be text or json", cfg.Output)
			}
			out = NewOutput(cfg.Output, cmd.OutOrStdout(), cmd.ErrOrStderr())

			var err error
			app, err = factory.NewClient(factory.ClientConfig{
				BaseURL: cfg.ServerURL,
				Timeout: cfg.Timeout,
				Logger:  newLogger(cfg.Verbose, cmd.ErrOrStderr()),
			})
			if err != nil {
				return err
			}

			cookies, err := cfg.LoadCookies()
			if err != nil {
				return fmt.Errorf("failed to load session: %w", err)
			}
			app.Identity.SetCookies(cookies)

			if cmd.Annotations[skipBootstrap] != "" {
				return nil
			}
			return app.Controller.Bootstrap(cmd.Context())
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.SaveCookies(app.Identity.Cookies()); err != nil {
				return fmt.Errorf("failed to save session: %w", err)
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Identity service URL (env: SESSIONFLOW_SERVER)")
	rootCmd.PersistentFlags().StringVar(&cfg.CookieFile, "cookie-file", cfg.CookieFile, "Session cookie file (env: SESSIONFLOW_COOKIE_FILE)")
	rootCmd.PersistentFlags().DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "Request timeout")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose output")

	// Add subcommands
	rootCmd.AddCommand(newLoginCmd())
	rootCmd.AddCommand(newRegisterCmd())
	rootCmd.AddCommand(newLogoutCmd())
	rootCmd.AddCommand(newWhoamiCmd())
	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newNavigateCmd())
	rootCmd.AddCommand(newHealthCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		ReportError(err, rootCmd.ErrOrStderr())
		os.Exit(1)
	}
}

// ReportError prints a command error unless the form view already showed it
func ReportError(err error, w io.Writer) {
	o := out
	if o == nil {
		o = NewOutput(cfg.Output, w, w)
	}

	var serr *session.SubmissionError
	if errors.As(err, &serr) && !o.IsJSON() {
		return
	}
	o.PrintError(err)
}

func newLogger(verbose bool, w io.Writer) *slog.Logger {
	if !verbose {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
