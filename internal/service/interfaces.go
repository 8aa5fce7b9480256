package service

import (
	"context"

	"github.com/joshdurbin/shortcode-service/internal/domain"
)

// URLShortener defines the operations of the shortener store
type URLShortener interface {
	// CreateMapping maps url to shortcode, or to a generated code when
	// shortcode is nil, and returns the final code
	CreateMapping(ctx context.Context, url string, shortcode *string) (string, error)

	// Resolve returns the URL for a shortcode and records the hit
	Resolve(ctx context.Context, shortcode string) (string, error)

	// GetStats returns a snapshot of the usage statistics for a shortcode
	GetStats(ctx context.Context, shortcode string) (*domain.Stats, error)

	// Close closes the service and its dependencies
	Close() error
}
