package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/joshdurbin/shortcode-service/internal/domain"
	"github.com/joshdurbin/shortcode-service/internal/metrics"
	"github.com/joshdurbin/shortcode-service/internal/repository"
	"github.com/joshdurbin/shortcode-service/internal/shortener"
)

// urlShortener implements URLShortener interface
type urlShortener struct {
	repo      repository.MappingRepository
	generator shortener.Generator
	logger    *zap.Logger
	metrics   *metrics.Metrics
	now       func() time.Time
}

// Option customizes a URLShortener
type Option func(*urlShortener)

// WithLogger sets the logger; the default discards everything
func WithLogger(logger *zap.Logger) Option {
	return func(s *urlShortener) {
		s.logger = logger
	}
}

// WithMetrics sets the metrics the service reports to
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *urlShortener) {
		s.metrics = m
	}
}

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(s *urlShortener) {
		s.now = now
	}
}

// NewURLShortener creates a new URL shortener service
func NewURLShortener(repo repository.MappingRepository, generator shortener.Generator, opts ...Option) URLShortener {
	s := &urlShortener{
		repo:      repo,
		generator: generator,
		logger:    zap.NewNop(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.metrics == nil {
		s.metrics = metrics.New()
	}
	return s
}

// timestamp returns the current time in UTC with second precision
func (s *urlShortener) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Second)
}

// CreateMapping creates a new mapping
func (s *urlShortener) CreateMapping(ctx context.Context, url string, shortcode *string) (string, error) {
	if strings.TrimSpace(url) == "" {
		return "", fmt.Errorf("url is required: %w", domain.ErrInvalidRequest)
	}

	if shortcode != nil {
		return s.createRequested(ctx, url, *shortcode)
	}

	return s.createGenerated(ctx, url)
}

// createRequested stores url under the caller's code. The existence check runs
// before the grammar check; the insert itself re-checks atomically, so a
// concurrent winner still turns this call into ErrShortcodeTaken.
func (s *urlShortener) createRequested(ctx context.Context, url, shortcode string) (string, error) {
	exists, err := s.repo.Exists(ctx, shortcode)
	if err != nil {
		return "", fmt.Errorf("failed to check shortcode existence: %w", err)
	}
	if exists {
		return "", fmt.Errorf("shortcode %q: %w", shortcode, domain.ErrShortcodeTaken)
	}

	if !shortener.IsValidShortcode(shortcode) {
		return "", fmt.Errorf("shortcode %q: %w", shortcode, domain.ErrInvalidShortcode)
	}

	if err := s.repo.Create(ctx, s.newMapping(shortcode, url)); err != nil {
		return "", fmt.Errorf("failed to create mapping: %w", err)
	}

	s.metrics.MappingsCreated.WithLabelValues(metrics.SourceRequested).Inc()
	s.logger.Debug("mapping created",
		zap.String("shortcode", shortcode),
		zap.String("source", metrics.SourceRequested))

	return shortcode, nil
}

// createGenerated draws fresh candidates until one inserts cleanly
func (s *urlShortener) createGenerated(ctx context.Context, url string) (string, error) {
	for {
		candidate, err := s.generator.GenerateShortCode(ctx)
		if err != nil {
			return "", fmt.Errorf("failed to generate short code: %w", err)
		}

		err = s.repo.Create(ctx, s.newMapping(candidate, url))
		if errors.Is(err, domain.ErrShortcodeTaken) {
			s.metrics.GenerationCollisions.Inc()
			s.logger.Debug("generated shortcode collided, retrying", zap.String("shortcode", candidate))
			continue
		}
		if err != nil {
			return "", fmt.Errorf("failed to create mapping: %w", err)
		}

		s.metrics.MappingsCreated.WithLabelValues(metrics.SourceGenerated).Inc()
		s.logger.Debug("mapping created",
			zap.String("shortcode", candidate),
			zap.String("source", metrics.SourceGenerated))

		return candidate, nil
	}
}

func (s *urlShortener) newMapping(shortcode, url string) *domain.Mapping {
	return &domain.Mapping{
		Shortcode: shortcode,
		URL:       url,
		Stats: domain.Stats{
			StartDate: s.timestamp(),
		},
	}
}

// Resolve retrieves the URL for a shortcode and records the hit
func (s *urlShortener) Resolve(ctx context.Context, shortcode string) (string, error) {
	if strings.TrimSpace(shortcode) == "" {
		return "", fmt.Errorf("shortcode is required: %w", domain.ErrInvalidRequest)
	}

	mapping, err := s.repo.RecordHit(ctx, shortcode, s.timestamp())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.metrics.LookupMisses.WithLabelValues("resolve").Inc()
		}
		return "", fmt.Errorf("failed to resolve %q: %w", shortcode, err)
	}

	s.metrics.Redirects.Inc()
	return mapping.URL, nil
}

// GetStats retrieves the usage statistics for a shortcode
func (s *urlShortener) GetStats(ctx context.Context, shortcode string) (*domain.Stats, error) {
	if strings.TrimSpace(shortcode) == "" {
		return nil, fmt.Errorf("shortcode is required: %w", domain.ErrInvalidRequest)
	}

	mapping, err := s.repo.Get(ctx, shortcode)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.metrics.LookupMisses.WithLabelValues("stats").Inc()
		}
		return nil, fmt.Errorf("failed to get stats for %q: %w", shortcode, err)
	}

	return &mapping.Stats, nil
}

// Close closes the service and its dependencies
func (s *urlShortener) Close() error {
	if err := s.generator.Close(); err != nil {
		return fmt.Errorf("failed to close generator: %w", err)
	}
	if err := s.repo.Close(); err != nil {
		return fmt.Errorf("failed to close repository: %w", err)
	}
	return nil
}

// Ensure urlShortener implements URLShortener interface
var _ URLShortener = (*urlShortener)(nil)
