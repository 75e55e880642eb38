// Package session owns the authenticated-actor lifecycle: anonymous →
// authenticated → anonymous, with a persisted snapshot that survives
// restarts.
package session

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/karangnongko/goatherd/internal/domain/models"
	"github.com/karangnongko/goatherd/pkg/clients/farmapi"
)

// Session pairs the opaque credential with the actor snapshot it was issued
// to.
type Session struct {
	Token string
	Actor models.Actor
}

// Repository persists at most one session snapshot across process restarts.
type Repository interface {
	Save(ctx context.Context, s Session) error
	// Load returns nil when no snapshot is persisted.
	Load(ctx context.Context) (*Session, error)
	Clear(ctx context.Context) error
}

// Store validates credentials against the livestock API and tracks the
// current session. All methods are safe for concurrent use.
type Store struct {
	client farmapi.Client
	repo   Repository
	logger *zap.Logger

	mu      sync.RWMutex
	current *Session
}

// NewStore wires a session store over the given API client and snapshot
// repository.
func NewStore(client farmapi.Client, repo Repository, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{client: client, repo: repo, logger: logger}
}

// Login exchanges credentials for a session. On failure the store stays
// anonymous; there is no automatic retry. A snapshot persistence failure is
// logged but does not fail the login — the session just will not survive a
// restart.
func (s *Store) Login(ctx context.Context, username, password string) (models.Actor, error) {
	res, err := s.client.Login(ctx, username, password)
	if err != nil {
		return models.Actor{}, err
	}

	sess := Session{Token: res.Token, Actor: res.User}

	s.mu.Lock()
	s.current = &sess
	s.mu.Unlock()

	if err := s.repo.Save(ctx, sess); err != nil {
		s.logger.Warn("failed to persist session snapshot", zap.Error(err))
	}

	s.logger.Info("actor logged in",
		zap.String("username", sess.Actor.Username),
		zap.String("role", sess.Actor.Role.String()))

	return sess.Actor, nil
}

// Logout clears both the in-memory session and the persisted snapshot,
// unconditionally and regardless of prior state.
func (s *Store) Logout(ctx context.Context) {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()

	if err := s.repo.Clear(ctx); err != nil {
		s.logger.Warn("failed to clear session snapshot", zap.Error(err))
	}
}

// Restore loads any persisted snapshot at process start. The stored token is
// trusted as-is; it is only proven stale when a later API call comes back
// with an authorization error, at which point the caller must Logout.
func (s *Store) Restore(ctx context.Context) error {
	sess, err := s.repo.Load(ctx)
	if err != nil {
		return err
	}
	if sess == nil {
		return nil
	}

	s.mu.Lock()
	s.current = sess
	s.mu.Unlock()

	s.logger.Info("session restored", zap.String("username", sess.Actor.Username))
	return nil
}

// Current returns the active session, if any.
func (s *Store) Current() (Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return Session{}, false
	}
	return *s.current, true
}
