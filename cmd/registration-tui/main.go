// Registration-tui fills in the event registration form from a terminal.
//
// Usage:
//
//	registration-tui [--log-file path]
//
// Logging is silent unless --log-file is given, so it never draws over the form.
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spec-kit/event-registration/internal/config"
	"github.com/spec-kit/event-registration/internal/observability"
	"github.com/spec-kit/event-registration/internal/tui"
)

var logFile string

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "registration-tui",
	Short: "Event registration form for the terminal",
	Long: `Fill in the event registration form interactively.

Fields are checked when you leave them and again on submit; once the
form is accepted a read-only summary is shown.`,
	SilenceUsage: true,
	RunE:         runForm,
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.Flags().StringVar(&logFile, "log-file", "", "write JSON logs to this file")
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "registration-tui %s\n", cfg.App.Version)
		return nil
	},
}

func runForm(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := zap.NewNop()
	if logFile != "" {
		logCfg := cfg.Logger
		logCfg.Output = logFile
		logger, err = observability.NewLogger(logCfg)
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
	}
	defer logger.Sync() //nolint:errcheck

	final, err := tea.NewProgram(tui.New(logger)).Run()
	if err != nil {
		return fmt.Errorf("run form: %w", err)
	}

	if m, ok := final.(tui.Model); ok && m.State().Submitted() {
		logger.Info("registration completed")
	}
	return nil
}
