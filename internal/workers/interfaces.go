// Package workers hosts the auth server's background jobs.
package workers

import (
	"context"
	"time"
)

// Worker defines the contract for a periodic background job.
type Worker interface {
	// Start launches the background goroutine. Any previously running job is
	// stopped before the new one begins.
	Start(ctx context.Context, interval time.Duration)

	// Stop signals the background goroutine to exit and blocks until it has
	// fully terminated.
	Stop()
}
