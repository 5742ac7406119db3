package cmd

import (
	"context"
	"errors"
	"strconv"

	"mango-sync/core/reconcile"
)

// Process exit codes.
const (
	// ExitOK is a run with no errors of any kind.
	ExitOK = 0
	// ExitSyncErrors is a run that completed with per-line or structural errors.
	ExitSyncErrors = 1
	// ExitFatal is a run that could not start (config, logger, database, lock).
	ExitFatal = 2
	// ExitInterrupted is a run stopped by SIGINT or SIGTERM.
	ExitInterrupted = 130
)

// exitError carries an exit code out of a cobra RunE.
// A nil err means the outcome was already logged.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return "exit status " + strconv.Itoa(e.code)
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error {
	return e.err
}

func fatal(err error) error {
	return &exitError{code: ExitFatal, err: err}
}

// ExitCode maps a sync result to the process exit code.
func ExitCode(ctx context.Context, result *reconcile.Result) int {
	if result.Interrupted || errors.Is(ctx.Err(), context.Canceled) {
		return ExitInterrupted
	}
	if result.HasErrors() {
		return ExitSyncErrors
	}
	return ExitOK
}
