package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/joshdurbin/shortcode-service/internal/domain"
	"github.com/joshdurbin/shortcode-service/internal/repository"
)

// Repository implements repository.MappingRepository using in-memory storage.
// State lives only for the lifetime of the process.
type Repository struct {
	data  map[string]*domain.Mapping
	mutex sync.RWMutex
}

// New creates a new in-memory repository
func New() *Repository {
	return &Repository{
		data: make(map[string]*domain.Mapping),
	}
}

// Create stores a new mapping if its shortcode is free
func (r *Repository) Create(ctx context.Context, mapping *domain.Mapping) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exists := r.data[mapping.Shortcode]; exists {
		return fmt.Errorf("failed to create mapping %q: %w", mapping.Shortcode, domain.ErrShortcodeTaken)
	}

	// Store a copy to prevent external modification
	r.data[mapping.Shortcode] = mapping.Clone()
	return nil
}

// Exists checks if a shortcode is mapped
func (r *Repository) Exists(ctx context.Context, shortcode string) (bool, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	_, exists := r.data[shortcode]
	return exists, nil
}

// Get retrieves a mapping by its shortcode
func (r *Repository) Get(ctx context.Context, shortcode string) (*domain.Mapping, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	mapping, exists := r.data[shortcode]
	if !exists {
		return nil, domain.ErrNotFound
	}

	// Return a copy to prevent external modification
	return mapping.Clone(), nil
}

// RecordHit increments the redirect count and moves the last-seen timestamp
// forward. A seenAt older than the stored value still counts but does not
// rewind the timestamp, so concurrent hits always leave the latest time.
func (r *Repository) RecordHit(ctx context.Context, shortcode string, seenAt time.Time) (*domain.Mapping, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	mapping, exists := r.data[shortcode]
	if !exists {
		return nil, domain.ErrNotFound
	}

	mapping.Stats.RedirectCount++
	if mapping.Stats.LastSeenDate == nil || seenAt.After(*mapping.Stats.LastSeenDate) {
		seen := seenAt
		mapping.Stats.LastSeenDate = &seen
	}

	return mapping.Clone(), nil
}

// Count returns the number of stored mappings
func (r *Repository) Count(ctx context.Context) (int, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	return len(r.data), nil
}

// Close is a no-op; mappings are dropped with the process
func (r *Repository) Close() error {
	return nil
}

// Ensure Repository implements the interface
var _ repository.MappingRepository = (*Repository)(nil)
