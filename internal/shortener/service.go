package shortener

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// insertAttempts bounds short-code regeneration when an insert hits a
// code collision. The code space makes exhaustion all but impossible, but
// a failed insert must never propagate unhandled.
const insertAttempts = 4

// Service implements the two core operations: Shorten (dedup write) and
// Resolve (cache-aside read).
type Service struct {
	repo         Repository
	cache        Cache
	generateCode CodeGenerator
	logger       *zap.Logger
}

// NewService creates the shortening service.
func NewService(repo Repository, cache Cache, generateCode CodeGenerator, logger *zap.Logger) *Service {
	return &Service{
		repo:         repo,
		cache:        cache,
		generateCode: generateCode,
		logger:       logger,
	}
}

// Shorten returns the record for longURL, creating it if none exists.
// Submitting the same long URL twice returns the same record both times.
func (s *Service) Shorten(ctx context.Context, longURL string) (*URLRecord, error) {
	existing, err := s.repo.FindByLongURL(ctx, longURL)
	if err == nil {
		return existing, nil
	}

	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	for attempt := 1; attempt <= insertAttempts; attempt++ {
		record := &URLRecord{
			ID:        uuid.NewString(),
			LongURL:   longURL,
			ShortCode: s.generateCode(),
			CreatedAt: time.Now().UTC(),
		}

		err := s.repo.Insert(ctx, record)

		switch {
		case err == nil:
			return record, nil

		case errors.Is(err, ErrDuplicateCode):
			s.logger.Warn("short code collision",
				zap.String("short_code", record.ShortCode),
				zap.Int("attempt", attempt),
			)

		case errors.Is(err, ErrDuplicateURL):
			// Lost the dedup race to a concurrent writer for the same
			// URL; its record is the one to return.
			return s.repo.FindByLongURL(ctx, longURL)

		default:
			return nil, err
		}
	}

	return nil, ErrCodeSpaceExhausted
}

// Resolve returns the long URL bound to code. The cache is consulted
// first; a cache fault is logged and treated as a miss, so resolution
// succeeds whenever the repository holds the code.
func (s *Service) Resolve(ctx context.Context, code string) (string, error) {
	switch result := s.cache.Lookup(ctx, code); result.Status {
	case LookupHit:
		return result.Value, nil

	case LookupError:
		s.logger.Warn("lookup cache unavailable",
			zap.String("short_code", code),
			zap.Error(result.Err),
		)
	}

	record, err := s.repo.FindByShortCode(ctx, code)
	if err != nil {
		return "", err
	}

	s.cache.Store(ctx, record.ShortCode, record.LongURL)

	return record.LongURL, nil
}
