package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karangnongko/goatherd/internal/apperror"
	"github.com/karangnongko/goatherd/internal/demo"
)

func newStore(t *testing.T) (*Store, *MemoryRepository) {
	t.Helper()
	repo := NewMemoryRepository()
	return NewStore(demo.NewClient(), repo, nil), repo
}

func TestLoginSuccess(t *testing.T) {
	store, repo := newStore(t)
	ctx := context.Background()

	actor, err := store.Login(ctx, "wati", "barat123")
	require.NoError(t, err)
	assert.Equal(t, "wati", actor.Username)

	sess, ok := store.Current()
	require.True(t, ok)
	assert.NotEmpty(t, sess.Token)

	persisted, err := repo.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, persisted)
	assert.Equal(t, sess.Token, persisted.Token)
}

func TestLoginFailureStaysAnonymous(t *testing.T) {
	store, repo := newStore(t)
	ctx := context.Background()

	_, err := store.Login(ctx, "wati", "wrong")
	require.Error(t, err)
	assert.Equal(t, apperror.KindAuthentication, apperror.KindOf(err))

	_, ok := store.Current()
	assert.False(t, ok)

	persisted, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, persisted)
}

func TestLogoutClearsEverything(t *testing.T) {
	store, repo := newStore(t)
	ctx := context.Background()

	_, err := store.Login(ctx, "admin", "admin123")
	require.NoError(t, err)

	store.Logout(ctx)

	_, ok := store.Current()
	assert.False(t, ok)

	persisted, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, persisted)

	// Logging out while anonymous is a no-op, not an error.
	store.Logout(ctx)
}

func TestRestoreTrustsSnapshot(t *testing.T) {
	ctx := context.Background()
	client := demo.NewClient()
	repo := NewMemoryRepository()

	first := NewStore(client, repo, nil)
	_, err := first.Login(ctx, "tono", "timur123")
	require.NoError(t, err)
	firstSess, _ := first.Current()

	// A fresh store over the same repository simulates a process restart.
	second := NewStore(client, repo, nil)
	require.NoError(t, second.Restore(ctx))

	sess, ok := second.Current()
	require.True(t, ok)
	assert.Equal(t, firstSess.Token, sess.Token)
	assert.Equal(t, "tono", sess.Actor.Username)
}

func TestRestoreWithoutSnapshot(t *testing.T) {
	store, _ := newStore(t)
	require.NoError(t, store.Restore(context.Background()))

	_, ok := store.Current()
	assert.False(t, ok)
}
