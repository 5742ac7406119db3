package reconcile

import (
	"fmt"
	"time"
)

// ResultSuccess is the vendor result code of a usable snapshot.
const ResultSuccess = 1000

// Line is one incoming line as reported by the remote source.
// Number is the natural key; RemoteID is informational only.
type Line struct {
	RemoteID   int64   `json:"id"`
	Number     string  `json:"number"`
	Name       *string `json:"name,omitempty"`
	Comment    *string `json:"comment,omitempty"`
	Region     string  `json:"region"`
	SchemaID   int64   `json:"scheme_id"`
	SchemaName string  `json:"scheme_name"`
}

// Snapshot is the full remote line set of one fetch, in remote order.
type Snapshot struct {
	ResultCode int
	Lines      []Line
}

// OutcomeKind classifies what happened to a single line.
type OutcomeKind string

const (
	// OutcomeCreated means a new row was inserted.
	OutcomeCreated OutcomeKind = "created"
	// OutcomeUpdated means an existing row was overwritten.
	OutcomeUpdated OutcomeKind = "updated"
	// OutcomeFailed means the line could not be stored.
	OutcomeFailed OutcomeKind = "failed"
)

// Outcome is the per-line reconciliation result.
type Outcome struct {
	Kind OutcomeKind
	// Detail is the human readable error line, set only for OutcomeFailed.
	Detail string
	// Err is the underlying cause, if any.
	Err error
}

// Result aggregates the outcomes of one reconciliation pass.
//
// When the fetch succeeds, TotalProcessed == Created + Updated + Errors.
// A structural failure leaves every count at zero and sets one ErrorDetails entry.
type Result struct {
	// TotalProcessed counts lines the engine started on.
	TotalProcessed int `json:"total_processed"`

	// Created counts lines inserted as new rows.
	Created int `json:"created"`

	// Updated counts lines that overwrote an existing row.
	Updated int `json:"updated"`

	// Errors counts lines that failed. Structural failures are not counted here.
	Errors int `json:"errors"`

	// ErrorDetails holds one entry per failed line or per structural failure, in order.
	ErrorDetails []string `json:"error_details"`

	// DryRun is true when no writes were issued.
	DryRun bool `json:"dry_run"`

	// Interrupted is true when the context was cancelled before all lines were processed.
	Interrupted bool `json:"interrupted"`

	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

// HasErrors reports whether any line failed or the pass failed as a whole.
func (r *Result) HasErrors() bool {
	return r.Errors > 0 || len(r.ErrorDetails) > 0
}

// Summary returns a one line human readable summary.
func (r *Result) Summary() string {
	s := fmt.Sprintf("processed %d: %d created, %d updated, %d errors",
		r.TotalProcessed, r.Created, r.Updated, r.Errors)
	if r.DryRun {
		s += " (dry run)"
	}
	if r.Interrupted {
		s += " (interrupted)"
	}
	return s
}

func (r *Result) record(o Outcome) {
	switch o.Kind {
	case OutcomeCreated:
		r.Created++
	case OutcomeUpdated:
		r.Updated++
	default:
		r.Errors++
		r.ErrorDetails = append(r.ErrorDetails, o.Detail)
	}
}

func (r *Result) fail(detail string) {
	r.ErrorDetails = append(r.ErrorDetails, detail)
}

// Options controls engine behavior.
type Options struct {
	// DryRun looks up every line but issues no create or update.
	DryRun bool
}
