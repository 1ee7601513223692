package workers

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/tradedesk/tradedesk/internal/logger"
	"github.com/tradedesk/tradedesk/models"
)

// countingSessionRepo is a SessionRepository stub that counts sweep calls.
type countingSessionRepo struct {
	sweeps atomic.Int64
}

func (r *countingSessionRepo) CreateSession(ctx context.Context, session models.Session) (models.Session, error) {
	return session, nil
}

func (r *countingSessionRepo) FindSessionByToken(ctx context.Context, token string) (models.Session, error) {
	return models.Session{}, nil
}

func (r *countingSessionRepo) RotateSession(ctx context.Context, oldID string, session models.Session) (models.Session, error) {
	return session, nil
}

func (r *countingSessionRepo) TouchSession(ctx context.Context, id string, at time.Time) error {
	return nil
}

func (r *countingSessionRepo) DeleteSessionByToken(ctx context.Context, token string) error {
	return nil
}

func (r *countingSessionRepo) DeleteExpiredSessions(ctx context.Context, now time.Time) (int, error) {
	r.sweeps.Add(1)
	return 0, nil
}

func waitForSweeps(t *testing.T, repo *countingSessionRepo, want int64) {
	t.Helper()

	deadline := time.After(2 * time.Second)
	for {
		if repo.sweeps.Load() >= want {
			return
		}
		select {
		case <-deadline:
			t.Fatalf("expected at least %d sweeps, got %d", want, repo.sweeps.Load())
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestSessionSweeper_SweepsOnInterval(t *testing.T) {
	repo := &countingSessionRepo{}
	sweeper := NewSessionSweeper(repo, logger.Nop())

	sweeper.Start(context.Background(), 10*time.Millisecond)
	defer sweeper.Stop()

	waitForSweeps(t, repo, 2)
}

func TestSessionSweeper_StopHaltsSweeping(t *testing.T) {
	repo := &countingSessionRepo{}
	sweeper := NewSessionSweeper(repo, logger.Nop())

	sweeper.Start(context.Background(), 10*time.Millisecond)
	waitForSweeps(t, repo, 1)
	sweeper.Stop()

	counted := repo.sweeps.Load()
	time.Sleep(50 * time.Millisecond)
	if got := repo.sweeps.Load(); got != counted {
		t.Errorf("expected no sweeps after Stop, counter moved from %d to %d", counted, got)
	}
}

func TestSessionSweeper_StopWithoutStart(t *testing.T) {
	sweeper := NewSessionSweeper(&countingSessionRepo{}, logger.Nop())

	// Must not panic or block.
	sweeper.Stop()
	sweeper.Stop()
}

func TestSessionSweeper_RestartReplacesJob(t *testing.T) {
	repo := &countingSessionRepo{}
	sweeper := NewSessionSweeper(repo, logger.Nop())

	sweeper.Start(context.Background(), time.Hour)
	// Starting again must stop the first goroutine and take over.
	sweeper.Start(context.Background(), 10*time.Millisecond)
	defer sweeper.Stop()

	waitForSweeps(t, repo, 1)
}

func TestSessionSweeper_ContextCancelStops(t *testing.T) {
	repo := &countingSessionRepo{}
	sweeper := NewSessionSweeper(repo, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	sweeper.Start(ctx, 10*time.Millisecond)
	waitForSweeps(t, repo, 1)
	cancel()

	time.Sleep(30 * time.Millisecond)
	counted := repo.sweeps.Load()
	time.Sleep(50 * time.Millisecond)
	if got := repo.sweeps.Load(); got != counted {
		t.Errorf("expected no sweeps after context cancel, counter moved from %d to %d", counted, got)
	}

	sweeper.Stop()
}
