package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/joshdurbin/shortcode-service/internal/domain"
)

// MappingRepository is a mock implementation of repository.MappingRepository
type MappingRepository struct {
	mock.Mock
}

// Create stores a new mapping
func (m *MappingRepository) Create(ctx context.Context, mapping *domain.Mapping) error {
	args := m.Called(ctx, mapping)
	return args.Error(0)
}

// Exists checks if a shortcode is mapped
func (m *MappingRepository) Exists(ctx context.Context, shortcode string) (bool, error) {
	args := m.Called(ctx, shortcode)
	return args.Bool(0), args.Error(1)
}

// Get retrieves a mapping by its shortcode
func (m *MappingRepository) Get(ctx context.Context, shortcode string) (*domain.Mapping, error) {
	args := m.Called(ctx, shortcode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Mapping), args.Error(1)
}

// RecordHit increments the redirect count for a shortcode
func (m *MappingRepository) RecordHit(ctx context.Context, shortcode string, seenAt time.Time) (*domain.Mapping, error) {
	args := m.Called(ctx, shortcode, seenAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Mapping), args.Error(1)
}

// Count returns the number of stored mappings
func (m *MappingRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

// Close releases the repository
func (m *MappingRepository) Close() error {
	args := m.Called()
	return args.Error(0)
}
