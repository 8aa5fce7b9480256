package repository

import (
	"context"
	"time"

	"github.com/joshdurbin/shortcode-service/internal/domain"
)

// MappingRepository defines the interface for mapping data operations.
// Implementations return copies; callers never hold a reference to stored state.
type MappingRepository interface {
	// Create stores a new mapping, failing with domain.ErrShortcodeTaken if the
	// shortcode exists. The existence check and the insert are one atomic step.
	Create(ctx context.Context, mapping *domain.Mapping) error

	// Exists checks if a shortcode is mapped
	Exists(ctx context.Context, shortcode string) (bool, error)

	// Get retrieves a mapping by its shortcode
	Get(ctx context.Context, shortcode string) (*domain.Mapping, error)

	// RecordHit atomically increments the redirect count and advances the
	// last-seen timestamp, returning the updated mapping
	RecordHit(ctx context.Context, shortcode string, seenAt time.Time) (*domain.Mapping, error)

	// Count returns the number of stored mappings
	Count(ctx context.Context) (int, error)

	// Close releases the repository
	Close() error
}
