package session

import (
	"context"
	"sync"
)

// MemoryRepository keeps the session snapshot in process memory. It backs
// demo mode and tests, where restart survival does not matter.
type MemoryRepository struct {
	mu   sync.Mutex
	sess *Session
}

// NewMemoryRepository returns an empty in-memory snapshot repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

// Save stores the snapshot, replacing any previous one.
func (r *MemoryRepository) Save(_ context.Context, s Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sess = &s
	return nil
}

// Load returns the stored snapshot or nil.
func (r *MemoryRepository) Load(_ context.Context) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sess == nil {
		return nil, nil
	}
	sess := *r.sess
	return &sess, nil
}

// Clear drops the snapshot.
func (r *MemoryRepository) Clear(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sess = nil
	return nil
}
