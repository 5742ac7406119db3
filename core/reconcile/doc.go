// Package reconcile brings the local phone numbers table in line with the
// vendor's current list of incoming lines.
//
// One pass fetches the full snapshot once, then walks it in order and, per
// line, creates a row when the number is unknown or overwrites the existing
// row otherwise. Rows whose numbers disappeared remotely are left alone.
//
// # Failure Isolation
//
// A failed fetch or a vendor result code other than 1000 is structural: the
// pass stops before touching the store and reports a single error detail.
// Anything that goes wrong with one line (store error, lookup error, panic) is
// caught at that line, counted in Result.Errors and recorded in
// Result.ErrorDetails; the next line is processed as usual.
//
// # Usage
//
//	engine := reconcile.NewEngine(client, store, log, reconcile.Options{})
//	result := engine.Reconcile(ctx)
//	if result.HasErrors() {
//	    os.Exit(1)
//	}
package reconcile
