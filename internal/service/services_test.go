package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradedesk/tradedesk/internal/config"
	"github.com/tradedesk/tradedesk/internal/logger"
	"github.com/tradedesk/tradedesk/internal/store"
)

// TestNewServices wires the container the same way cmd/server does: a loaded
// *StructuredConfig is dereferenced into NewServices.
func TestNewServices(t *testing.T) {
	snapshot := store.NewFileSnapshotStore(filepath.Join(t.TempDir(), "snapshot.json"))
	memory, err := store.NewMemoryStore(snapshot, logger.Nop())
	require.NoError(t, err)

	storages := &store.Storages{
		Users:         memory,
		Sessions:      memory,
		LoginAttempts: memory,
	}

	cfg := &config.StructuredConfig{Auth: testAuthConfig()}

	services := NewServices(storages, *cfg, logger.Nop())
	require.NotNil(t, services)
	require.NotNil(t, services.AuthService)
	require.NotNil(t, services.AdminService)

	// The wired auth service must be usable end to end.
	result, err := services.AuthService.Register(context.Background(), registerRequest(), testMeta)
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)

	user, err := services.AuthService.CurrentUser(context.Background(), result.Token)
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", user.Email)
}
