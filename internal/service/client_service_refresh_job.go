package service

import (
	"context"
	"sync"
	"time"
)

type clientRefreshJob struct {
	authService ClientAuthService

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewClientRefreshJob creates a clientRefreshJob that calls
// authService.RefreshToken on a ticker. The job is idle until Start is
// called.
func NewClientRefreshJob(authService ClientAuthService) ClientRefreshJob {
	return &clientRefreshJob{authService: authService}
}

// Start implements ClientRefreshJob. It stops any previously running job,
// then launches a background goroutine that refreshes the token every
// interval. If interval is zero or negative it defaults to 5 minutes. The
// goroutine exits when ctx is cancelled, Stop is called, or a refresh fails
// (the auth service has already forced a logout by then).
func (j *clientRefreshJob) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				if err := j.authService.RefreshToken(jobCtx); err != nil {
					return
				}
			}
		}
	}()
}

// Stop implements ClientRefreshJob. It cancels the background goroutine's
// context and blocks until the goroutine has fully exited. Safe to call when
// the job is not running (no-op in that case).
func (j *clientRefreshJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}
