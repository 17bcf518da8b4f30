package memory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PabloGalante/frickbooks/internal/adapters/storage/memory"
	"github.com/PabloGalante/frickbooks/internal/domain"
)

func TestSessionStoreLifecycle(t *testing.T) {
	store := memory.NewSessionStore()
	sess := &domain.Session{ID: "s-1", StartupName: "Acme"}

	require.NoError(t, store.CreateSession(sess))
	assert.ErrorIs(t, store.CreateSession(sess), memory.ErrSessionExists)

	got, err := store.GetSession("s-1")
	require.NoError(t, err)
	assert.Equal(t, "Acme", got.StartupName)

	got.Terminated = true
	got.Turns = 3
	got.StartupName = "Renamed"
	require.NoError(t, store.UpdateSession(got))

	again, err := store.GetSession("s-1")
	require.NoError(t, err)
	assert.True(t, again.Terminated)
	assert.Equal(t, 3, again.Turns)
	assert.Equal(t, "Acme", again.StartupName)
}

func TestSessionStoreNotFound(t *testing.T) {
	store := memory.NewSessionStore()

	_, err := store.GetSession("missing")
	assert.ErrorIs(t, err, memory.ErrSessionNotFound)
	assert.ErrorIs(t, store.UpdateSession(&domain.Session{ID: "missing"}), memory.ErrSessionNotFound)
}

func TestGetSessionReturnsCopy(t *testing.T) {
	store := memory.NewSessionStore()
	require.NoError(t, store.CreateSession(&domain.Session{ID: "s-1", StartupName: "Acme"}))

	got, err := store.GetSession("s-1")
	require.NoError(t, err)
	got.Turns = 99

	again, err := store.GetSession("s-1")
	require.NoError(t, err)
	assert.Equal(t, 0, again.Turns)
}
