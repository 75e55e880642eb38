// Package feedlogs is the CRUD façade over the remote feeding-log collection.
package feedlogs

import (
	"context"
	"sync"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/karangnongko/goatherd/internal/apperror"
	"github.com/karangnongko/goatherd/internal/domain/models"
	"github.com/karangnongko/goatherd/pkg/clients/farmapi"
)

// Service lists and mutates feeding logs against the livestock API. It keeps
// the same success-conditional local view as the goat service: mutations
// patch the cached month in place and failures leave it untouched, with the
// mutex serializing mutating calls.
type Service struct {
	client   farmapi.Client
	validate *validator.Validate
	logger   *zap.Logger

	mu     sync.Mutex
	cache  []models.FeedingLog
	filter farmapi.LogFilter
	loaded bool
}

// NewService wires a new feeding-log service instance.
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

// List returns the logs for the given month filter, serving the cached view
// when it matches and fetching otherwise. Ordering is arrival order from the
// API; nothing is re-sorted locally.
func (s *Service) List(ctx context.Context, token string, filter farmapi.LogFilter) ([]models.FeedingLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loaded && s.filter == filter {
		return append([]models.FeedingLog(nil), s.cache...), nil
	}

	logs, err := s.client.ListFeedingLogs(ctx, token, filter)
	if err != nil {
		return nil, err
	}

	s.cache = logs
	s.filter = filter
	s.loaded = true
	return append([]models.FeedingLog(nil), logs...), nil
}

// Cached looks a log up in the local view without a network call. The API
// has no single-log endpoint, so barn gating of edit and delete works off
// the listed view.
func (s *Service) Cached(id string) (models.FeedingLog, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, log := range s.cache {
		if log.ID == id {
			return log, true
		}
	}
	return models.FeedingLog{}, false
}

// Create validates the input locally, records the log remotely and appends
// it to the view. Validation failures abort before any network call.
func (s *Service) Create(ctx context.Context, token string, in models.FeedingLogCreate) (*models.FeedingLog, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, apperror.Wrap(apperror.KindValidation, "invalid feeding log", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	log, err := s.client.CreateFeedingLog(ctx, token, in)
	if err != nil {
		return nil, err
	}

	if s.loaded {
		s.cache = append(s.cache, *log)
	}

	s.logger.Info("feeding log created", zap.String("id", log.ID), zap.String("date", log.Date))
	return log, nil
}

// Update validates the input locally, replaces the log remotely and patches
// the view entry in place. The creator reference never changes.
func (s *Service) Update(ctx context.Context, token, id string, in models.FeedingLogCreate) (*models.FeedingLog, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, apperror.Wrap(apperror.KindValidation, "invalid feeding log", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	log, err := s.client.UpdateFeedingLog(ctx, token, id, in)
	if err != nil {
		return nil, err
	}

	for i := range s.cache {
		if s.cache[i].ID == id {
			s.cache[i] = *log
			break
		}
	}

	s.logger.Info("feeding log updated", zap.String("id", id))
	return log, nil
}

// Delete removes the log remotely and drops it from the view. Dropping an id
// that is already absent locally is a no-op.
func (s *Service) Delete(ctx context.Context, token, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.client.DeleteFeedingLog(ctx, token, id); err != nil {
		return err
	}

	for i := range s.cache {
		if s.cache[i].ID == id {
			s.cache = append(s.cache[:i], s.cache[i+1:]...)
			break
		}
	}

	s.logger.Info("feeding log deleted", zap.String("id", id))
	return nil
}
