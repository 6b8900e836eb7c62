package ports

import "context"

// Scheduler is the cooperative yield point between scan batches. The
// production scheduler hands control back to the host's event loop; tests
// substitute a deterministic one to observe batching.
type Scheduler interface {
	// Yield suspends until the scheduler readmits the caller, or until
	// ctx is done, in which case it returns ctx.Err().
	Yield(ctx context.Context) error
}
