package service

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/tradedesk/tradedesk/models"
)

// stubRefreshAuthService counts RefreshToken calls and fails after failAfter
// successes (0 disables failing).
type stubRefreshAuthService struct {
	refreshes atomic.Int64
	failAfter int64
}

func (s *stubRefreshAuthService) State() AuthState                { return AuthState{} }
func (s *stubRefreshAuthService) Bootstrap(ctx context.Context)   {}
func (s *stubRefreshAuthService) ClearError()                     {}
func (s *stubRefreshAuthService) Logout(ctx context.Context) error { return nil }

func (s *stubRefreshAuthService) Login(ctx context.Context, req models.LoginRequest) error {
	return nil
}

func (s *stubRefreshAuthService) Register(ctx context.Context, req models.RegisterRequest) error {
	return nil
}

func (s *stubRefreshAuthService) RefreshToken(ctx context.Context) error {
	n := s.refreshes.Add(1)
	if s.failAfter > 0 && n > s.failAfter {
		return errors.New("refresh rejected")
	}
	return nil
}

func waitForRefreshes(t *testing.T, stub *stubRefreshAuthService, want int64) {
	t.Helper()

	deadline := time.After(2 * time.Second)
	for {
		if stub.refreshes.Load() >= want {
			return
		}
		select {
		case <-deadline:
			t.Fatalf("expected at least %d refreshes, got %d", want, stub.refreshes.Load())
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestClientRefreshJob_RefreshesOnInterval(t *testing.T) {
	stub := &stubRefreshAuthService{}
	job := NewClientRefreshJob(stub)

	job.Start(context.Background(), 10*time.Millisecond)
	defer job.Stop()

	waitForRefreshes(t, stub, 2)
}

func TestClientRefreshJob_StopHaltsRefreshing(t *testing.T) {
	stub := &stubRefreshAuthService{}
	job := NewClientRefreshJob(stub)

	job.Start(context.Background(), 10*time.Millisecond)
	waitForRefreshes(t, stub, 1)
	job.Stop()

	counted := stub.refreshes.Load()
	time.Sleep(50 * time.Millisecond)
	if got := stub.refreshes.Load(); got != counted {
		t.Errorf("expected no refreshes after Stop, counter moved from %d to %d", counted, got)
	}
}

func TestClientRefreshJob_ExitsAfterFailure(t *testing.T) {
	stub := &stubRefreshAuthService{failAfter: 1}
	job := NewClientRefreshJob(stub)

	job.Start(context.Background(), 10*time.Millisecond)
	defer job.Stop()

	// One success, one failure, then the goroutine must have exited.
	waitForRefreshes(t, stub, 2)
	counted := stub.refreshes.Load()
	time.Sleep(50 * time.Millisecond)
	if got := stub.refreshes.Load(); got != counted {
		t.Errorf("expected job to exit after a failed refresh, counter moved from %d to %d", counted, got)
	}
}

func TestClientRefreshJob_StopWithoutStart(t *testing.T) {
	job := NewClientRefreshJob(&stubRefreshAuthService{})

	// Must not panic or block.
	job.Stop()
	job.Stop()
}
