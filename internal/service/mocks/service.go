package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/joshdurbin/shortcode-service/internal/domain"
)

// URLShortener is a mock implementation of service.URLShortener
type URLShortener struct {
	mock.Mock
}

// CreateMapping creates a new mapping
func (m *URLShortener) CreateMapping(ctx context.Context, url string, shortcode *string) (string, error) {
	args := m.Called(ctx, url, shortcode)
	return args.String(0), args.Error(1)
}

// Resolve retrieves the URL for a shortcode and records the hit
func (m *URLShortener) Resolve(ctx context.Context, shortcode string) (string, error) {
	args := m.Called(ctx, shortcode)
	return args.String(0), args.Error(1)
}

// GetStats retrieves the usage statistics for a shortcode
func (m *URLShortener) GetStats(ctx context.Context, shortcode string) (*domain.Stats, error) {
	args := m.Called(ctx, shortcode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Stats), args.Error(1)
}

// Close closes the service and its dependencies
func (m *URLShortener) Close() error {
	args := m.Called()
	return args.Error(0)
}
