package reconcile

import "context"

// Source fetches the authoritative line set.
// A returned error is a structural failure and aborts the pass.
type Source interface {
	Fetch(ctx context.Context) (*Snapshot, error)
}

// Store is the persistence side of the pass, keyed by phone number.
// R is the stored row type.
type Store[R any] interface {
	// FindByNumber returns (nil, nil) when no row has this number.
	FindByNumber(ctx context.Context, number string) (*R, error)

	// Create inserts a new row for line. It fails if the number already exists.
	Create(ctx context.Context, line Line) error

	// Update overwrites the mutable fields of existing with line.
	Update(ctx context.Context, existing *R, line Line) error
}
