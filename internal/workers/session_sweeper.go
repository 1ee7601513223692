package workers

import (
	"context"
	"sync"
	"time"

	"github.com/tradedesk/tradedesk/internal/logger"
	"github.com/tradedesk/tradedesk/internal/store"
)

const defaultSweepInterval = 10 * time.Minute

// sessionSweeper deletes expired session rows on a ticker. Expiry is also
// enforced lazily on every /me and /refresh call; the sweeper only keeps the
// session collection from accumulating rows for clients that never came back.
type sessionSweeper struct {
	sessions store.SessionRepository
	logger   *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewSessionSweeper creates a sweeper over the given session repository. The
// job is idle until Start is called.
func NewSessionSweeper(sessions store.SessionRepository, logger *logger.Logger) Worker {
	return &sessionSweeper{
		sessions: sessions,
		logger:   logger,
	}
}

// Start implements Worker. If interval is zero or negative it defaults to 10
// minutes. The goroutine exits when ctx is cancelled or Stop is called.
func (s *sessionSweeper) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = defaultSweepInterval
	}

	s.Stop()

	s.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.wg.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				s.sweep(jobCtx)
			}
		}
	}()
}

// Stop implements Worker. Safe to call when the job is not running (no-op in
// that case).
func (s *sessionSweeper) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	s.cancel = nil
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	s.wg.Wait()
}

func (s *sessionSweeper) sweep(ctx context.Context) {
	deleted, err := s.sessions.DeleteExpiredSessions(ctx, time.Now())
	if err != nil {
		s.logger.Err(err).Msg("expired session sweep failed")
		return
	}
	if deleted > 0 {
		s.logger.Info().Int("deleted", deleted).Msg("expired sessions swept")
	}
}
