package cmd

import (
	"fmt"

	"mango-sync/core/reconcile"
	"mango-sync/feature/lines"
	"mango-sync/feature/mango"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var apiOnlyCheck bool

// checkCmd verifies credentials and the table without writing anything.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check API credentials and the phone numbers table",
	Long: `Fetch the line list once and log the result code, the number of lines and
the first line. Unless --api-only is given, also confirm that the phone numbers
table exists with every column the sync writes. Nothing is written.`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().BoolVar(&apiOnlyCheck, "api-only", false, "Skip the database schema check")
	RootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := newApp(".", !apiOnlyCheck)
	if err != nil {
		return fatal(err)
	}
	defer a.Close()

	l := a.logger
	failed := false

	snap, err := mango.NewClient(a.cfg.Mango, l).Fetch(ctx)
	switch {
	case err != nil:
		l.Error("API check failed", zap.Error(err))
		failed = true
	case snap.ResultCode != reconcile.ResultSuccess:
		err = fmt.Errorf("API error: %d", snap.ResultCode)
		l.Error("API check failed", zap.Error(err))
		failed = true
	default:
		l.Info("API response OK", zap.Int("result", snap.ResultCode), zap.Int("lines", len(snap.Lines)))
		if len(snap.Lines) > 0 {
			l.Info("Sample line", zap.Any("line", snap.Lines[0]))
		}
	}

	if !apiOnlyCheck {
		if err := lines.NewStore(a.db).VerifySchema(ctx); err != nil {
			l.Error("Schema check failed", zap.Error(err))
			failed = true
		} else {
			l.Info("Schema OK", zap.String("table", lines.TableName))
		}
	}

	if failed {
		return &exitError{code: ExitSyncErrors}
	}
	return nil
}
