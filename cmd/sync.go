package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mango-sync/core/lock"
	"mango-sync/core/reconcile"
	"mango-sync/core/storage"
	"mango-sync/feature/lines"
	"mango-sync/feature/mango"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var dryRunSync bool

// syncCmd runs one reconciliation pass.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Fetch Mango Office lines and create or update local rows",
	Long: `Fetch the full list of incoming lines once and reconcile it into the phone
numbers table: unknown numbers are created, known numbers are overwritten.
Numbers that disappeared remotely are kept.

Exit codes:
  0    every line was stored
  1    at least one line failed, or the fetch itself failed
  2    the run could not start (config, database, lock)
  130  interrupted

Examples:
  # Normal run
  mango-sync sync

  # Look up every number but write nothing
  mango-sync sync --dry-run`,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().BoolVar(&dryRunSync, "dry-run", false, "Look up numbers without creating or updating rows")
	RootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(".", true)
	if err != nil {
		return fatal(err)
	}
	defer a.Close()

	l := a.logger
	l.Info("Starting Mango Office numbers sync", zap.Time("started_at", time.Now()))
	defer l.Info("Done")

	release, err := a.locker.Obtain(ctx)
	if errors.Is(err, lock.ErrLocked) {
		return fatal(err)
	}
	if err != nil {
		return fatal(fmt.Errorf("failed to obtain run lock: %w", err))
	}
	defer func() {
		err := release(context.Background())
		switch {
		case errors.Is(err, lock.ErrLockLost):
			l.Warn("Run lock expired before the sync finished", zap.Error(err))
		case err != nil:
			l.Warn("Failed to release run lock", zap.Error(err))
		}
	}()

	store := lines.NewStore(a.db)
	if a.cfg.Database.AutoMigrate {
		if err := store.Migrate(ctx); err != nil {
			return fatal(err)
		}
	}

	client := mango.NewClient(a.cfg.Mango, l)
	engine := reconcile.NewEngine[lines.PhoneNumber](client, store, l, reconcile.Options{DryRun: dryRunSync})

	result := engine.Reconcile(ctx)

	printSyncReport(l, result)
	archiveReport(ctx, a, result)

	code := ExitCode(ctx, result)
	switch code {
	case ExitOK:
		l.Info("Sync completed successfully")
		return nil
	case ExitInterrupted:
		l.Warn("Interrupted, shutting down")
	default:
		l.Warn("Sync finished with errors", zap.Int("errors", result.Errors), zap.Int("details", len(result.ErrorDetails)))
	}
	return &exitError{code: code}
}

// printSyncReport logs the aggregated result.
func printSyncReport(l *zap.Logger, result *reconcile.Result) {
	l.Info("Sync results",
		zap.Int("processed", result.TotalProcessed),
		zap.Int("created", result.Created),
		zap.Int("updated", result.Updated),
		zap.Int("errors", result.Errors),
		zap.Bool("dry_run", result.DryRun),
		zap.Duration("elapsed", result.FinishedAt.Sub(result.StartedAt)),
	)

	if len(result.ErrorDetails) > 0 {
		l.Warn("Error details", zap.Strings("details", result.ErrorDetails))
	}
}

// syncReport is the archived form of one run.
type syncReport struct {
	RunID  string            `json:"run_id"`
	Result *reconcile.Result `json:"result"`
}

// archiveReport uploads the result when storage is enabled. Failures are logged
// and never change the exit code.
func archiveReport(ctx context.Context, a *app, result *reconcile.Result) {
	if !a.cfg.Storage.Enabled {
		return
	}

	client, err := storage.NewClient(a.cfg.Storage)
	if err != nil {
		a.logger.Warn("Report archive unavailable", zap.Error(err))
		return
	}

	// Archive even when the run was interrupted.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 30*time.Second)
	defer cancel()

	key, err := storage.NewArchiver(client, a.cfg.Storage).Archive(ctx, a.runID, syncReport{RunID: a.runID, Result: result})
	if err != nil {
		a.logger.Warn("Failed to archive sync report", zap.Error(err))
		return
	}
	a.logger.Info("Sync report archived", zap.String("bucket", a.cfg.Storage.Bucket), zap.String("key", key))
}
