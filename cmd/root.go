package cmd

import (
	"errors"
	"fmt"
	"os"

	"mango-sync/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "mango-sync",
	Short: "Mango Office incoming lines sync",
	Long: `mango-sync copies the Mango Office list of incoming lines into the local
phone numbers table. One run fetches the full list once, creates or updates a row
per number, and exits non-zero if anything failed.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and exits the process with the run's exit code.
func Execute() {
	os.Exit(run())
}

func run() int {
	err := RootCmd.Execute()
	if err == nil {
		return ExitOK
	}

	var ee *exitError
	if errors.As(err, &ee) {
		if ee.err == nil {
			// The command already reported its outcome.
			return ee.code
		}
		err = ee.err
	}

	// Console format with debug level gives ISO8601 timestamps for a CLI failure.
	l, logErr := logger.New(&logger.Config{Level: "debug", Format: "console"})
	if logErr == nil {
		l.Error("command failed", zap.Error(err))
		_ = l.Sync()
	} else {
		fmt.Fprintln(os.Stderr, err)
	}

	if ee != nil {
		return ee.code
	}
	return ExitFatal
}
