// Package goats is the CRUD façade over the remote goat collection.
package goats

import (
	"context"
	"sync"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/karangnongko/goatherd/internal/apperror"
	"github.com/karangnongko/goatherd/internal/domain/models"
	"github.com/karangnongko/goatherd/pkg/clients/farmapi"
)

// Service lists and mutates goats against the livestock API while keeping a
// local view of the collection. After a successful mutation the view is
// patched in place instead of re-fetched; a failed mutation leaves it
// untouched. The mutex also serializes mutating calls, so a duplicate submit
// can never interleave with the patch.
type Service struct {
	client   farmapi.Client
	validate *validator.Validate
	logger   *zap.Logger

	mu     sync.Mutex
	cache  []models.Goat
	filter farmapi.GoatFilter
	loaded bool
}

// NewService wires a new goat service instance.
func NewService(client farmapi.Client, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		client:   client,
		validate: validator.New(),
		logger:   logger,
	}
}

// List returns the goat collection for the given filter. The cached view is
// served when it matches the filter; otherwise the collection is fetched and
// the view replaced.
func (s *Service) List(ctx context.Context, token string, filter farmapi.GoatFilter) ([]models.Goat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loaded && s.filter == filter {
		return append([]models.Goat(nil), s.cache...), nil
	}

	goats, err := s.client.ListGoats(ctx, token, filter)
	if err != nil {
		return nil, err
	}

	s.cache = goats
	s.filter = filter
	s.loaded = true
	return append([]models.Goat(nil), goats...), nil
}

// Get fetches a single goat by id, bypassing the cached view.
func (s *Service) Get(ctx context.Context, token, id string) (*models.Goat, error) {
	return s.client.GetGoat(ctx, token, id)
}

// Create validates the input locally, registers the goat remotely and
// appends it to the view. Validation failures abort before any network call.
func (s *Service) Create(ctx context.Context, token string, in models.GoatCreate) (*models.Goat, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, apperror.Wrap(apperror.KindValidation, "invalid goat", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	goat, err := s.client.CreateGoat(ctx, token, in)
	if err != nil {
		return nil, err
	}

	if s.loaded && s.matchesFilter(goat.Barn) {
		s.cache = append(s.cache, *goat)
	}

	s.logger.Info("goat created", zap.String("id", goat.ID), zap.String("tag", goat.Tag))
	return goat, nil
}

// Update validates the input locally, replaces the goat remotely and patches
// the view entry in place.
func (s *Service) Update(ctx context.Context, token, id string, in models.GoatCreate) (*models.Goat, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, apperror.Wrap(apperror.KindValidation, "invalid goat", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	goat, err := s.client.UpdateGoat(ctx, token, id, in)
	if err != nil {
		return nil, err
	}

	for i := range s.cache {
		if s.cache[i].ID == id {
			s.cache[i] = *goat
			break
		}
	}

	s.logger.Info("goat updated", zap.String("id", id))
	return goat, nil
}

// Delete removes the goat remotely and drops it from the view. Dropping an id
// that is already absent locally is a no-op.
func (s *Service) Delete(ctx context.Context, token, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.client.DeleteGoat(ctx, token, id); err != nil {
		return err
	}

	for i := range s.cache {
		if s.cache[i].ID == id {
			s.cache = append(s.cache[:i], s.cache[i+1:]...)
			break
		}
	}

	s.logger.Info("goat deleted", zap.String("id", id))
	return nil
}

// Stats fetches the herd aggregate counts. Pure pass-through; the sum
// invariant is enforced server-side and merely displayed here.
func (s *Service) Stats(ctx context.Context, token string) (*models.GoatStats, error) {
	return s.client.GoatStats(ctx, token)
}

func (s *Service) matchesFilter(barn models.Barn) bool {
	return s.filter.Barn == "" || s.filter.Barn == barn
}
