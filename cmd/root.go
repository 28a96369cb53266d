package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/shifttap/internal/config"
	"github.com/Tiliavir/shifttap/internal/document"
	applog "github.com/Tiliavir/shifttap/internal/log"
	"github.com/Tiliavir/shifttap/internal/model"
	"github.com/Tiliavir/shifttap/internal/storage"
)

var (
	cfg    config.Config
	logger = applog.Discard()

	// now is replaced in tests.
	now = time.Now
)

var rootCmd = &cobra.Command{
	Use:   "shifttap",
	Short: "Shift-Tap – monthly PDF reports from your shift log",
	Long: `shifttap reads a Shift-Tap state export and turns it into a paginated
monthly PDF report: a day-by-day summary with totals and overtime, followed
by a detail list of every entry.

Settings live in ~/.shifttap/config.json (override with SHIFTTAP_HOME).`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// exitError carries the process exit code for an error.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

// ioFailure marks err as an I/O problem (exit code 2).
func ioFailure(err error) error {
	return &exitError{code: 2, err: err}
}

// exitCode maps an error onto the process exit status: 2 for I/O and
// backend failures, 1 for everything the user can fix with other input.
func exitCode(err error) int {
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	if errors.Is(err, document.ErrRenderingBackendUnavailable) {
		return 2
	}
	return 1
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(exitCode(err))
	}
}

func init() {
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(monthsCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(reportCmd)
}

// setup loads configuration and the logger before any subcommand runs.
func setup(cmd *cobra.Command, _ []string) error {
	loaded, err := config.Load()
	if err != nil {
		return ioFailure(err)
	}
	if err := loaded.Validate(); err != nil {
		return err
	}
	cfg = loaded

	level, _ := applog.ParseLevel(cfg.LogLevel)
	logger = applog.New(applog.Config{Level: level, Component: applog.ComponentApp, Output: cmd.ErrOrStderr()})
	applog.SetDefault(logger)
	logger.Debug("configuration loaded", "state_file", cfg.StateFile, "output_dir", cfg.OutputDir, "page_size", cfg.PageSize)
	return nil
}

// loadState reads the configured state snapshot.
func loadState() (model.AppState, error) {
	state, err := storage.LoadState(cfg.StateFile)
	if err != nil {
		return model.AppState{}, ioFailure(err)
	}
	logger.WithComponent(applog.ComponentStorage).Debug("state loaded", "path", cfg.StateFile, "entries", len(state.Entries))
	return state, nil
}
