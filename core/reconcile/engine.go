package reconcile

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Engine runs one reconciliation pass of a Source into a Store.
// It is not safe for concurrent use.
type Engine[R any] struct {
	source Source
	store  Store[R]
	logger *zap.Logger
	opts   Options
	now    func() time.Time
}

// NewEngine creates an engine. A nil logger discards output.
func NewEngine[R any](source Source, store Store[R], logger *zap.Logger, opts Options) *Engine[R] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine[R]{
		source: source,
		store:  store,
		logger: logger,
		opts:   opts,
		now:    time.Now,
	}
}

// Reconcile fetches the remote snapshot once and creates or updates one row per line.
//
// Fetch failures and a non-success result code end the pass with a single error detail.
// Failures of a single line are counted and the pass continues with the next line.
// Cancellation of ctx is honored between lines only.
func (e *Engine[R]) Reconcile(ctx context.Context) *Result {
	result := &Result{
		ErrorDetails: []string{},
		DryRun:       e.opts.DryRun,
		StartedAt:    e.now(),
	}
	defer func() { result.FinishedAt = e.now() }()

	e.logger.Info("Starting phone numbers sync", zap.Bool("dry_run", e.opts.DryRun))

	snapshot, err := e.source.Fetch(ctx)
	if err != nil {
		e.logger.Error("Failed to fetch lines", zap.Error(err))
		result.fail(err.Error())
		return result
	}

	if snapshot == nil {
		e.logger.Error("Source returned no snapshot")
		result.fail("parse error: empty response")
		return result
	}

	if snapshot.ResultCode != ResultSuccess {
		e.logger.Error("Remote reported an error", zap.Int("result", snapshot.ResultCode))
		result.fail(fmt.Sprintf("API error: %d", snapshot.ResultCode))
		return result
	}

	e.logger.Info("Fetched lines", zap.Int("count", len(snapshot.Lines)))

	for _, line := range snapshot.Lines {
		if err := ctx.Err(); err != nil {
			e.logger.Warn("Sync interrupted", zap.Int("remaining", len(snapshot.Lines)-result.TotalProcessed), zap.Error(err))
			result.Interrupted = true
			result.fail(fmt.Sprintf("Sync interrupted: %v", err))
			break
		}

		result.TotalProcessed++
		result.record(e.processLine(ctx, line))
	}

	e.logger.Info("Sync finished",
		zap.Int("processed", result.TotalProcessed),
		zap.Int("created", result.Created),
		zap.Int("updated", result.Updated),
		zap.Int("errors", result.Errors),
	)

	return result
}

// processLine never panics and never returns without an outcome.
func (e *Engine[R]) processLine(ctx context.Context, line Line) (out Outcome) {
	l := e.logger.With(zap.String("number", line.Number))

	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("panic: %v", r)
			l.Error("Error processing number", zap.Error(err))
			out = Outcome{
				Kind:   OutcomeFailed,
				Detail: fmt.Sprintf("Process error %s: %v", line.Number, err),
				Err:    err,
			}
		}
	}()

	// A write that has started runs to completion even if ctx is cancelled.
	opCtx := context.WithoutCancel(ctx)

	existing, err := e.store.FindByNumber(opCtx, line.Number)
	if err != nil {
		l.Error("Error processing number", zap.Error(err))
		return Outcome{
			Kind:   OutcomeFailed,
			Detail: fmt.Sprintf("Process error %s: %v", line.Number, err),
			Err:    err,
		}
	}

	if existing == nil {
		if e.opts.DryRun {
			l.Info("Would create number")
			return Outcome{Kind: OutcomeCreated}
		}
		if err := e.store.Create(opCtx, line); err != nil {
			l.Error("Error creating number", zap.Error(err))
			return Outcome{Kind: OutcomeFailed, Detail: "Create error " + line.Number, Err: err}
		}
		l.Info("Created number")
		return Outcome{Kind: OutcomeCreated}
	}

	if e.opts.DryRun {
		l.Info("Would update number")
		return Outcome{Kind: OutcomeUpdated}
	}
	if err := e.store.Update(opCtx, existing, line); err != nil {
		l.Error("Error updating number", zap.Error(err))
		return Outcome{Kind: OutcomeFailed, Detail: "Update error " + line.Number, Err: err}
	}
	l.Info("Updated number")
	return Outcome{Kind: OutcomeUpdated}
}
