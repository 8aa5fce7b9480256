package shortener

import (
	"context"
)

// Generator defines the interface for generating short codes
type Generator interface {
	// GenerateShortCode returns a fresh candidate code. Uniqueness is the
	// caller's concern: a candidate may collide with an existing mapping.
	GenerateShortCode(ctx context.Context) (string, error)

	// Type returns the type identifier of the generator
	Type() string

	// Close performs cleanup when the generator is no longer needed
	Close() error
}

// Source is the random source a RandomGenerator samples from.
// *rand.Rand from math/rand/v2 satisfies it.
type Source interface {
	// IntN returns a non-negative pseudo-random number in [0, n)
	IntN(n int) int
}

// Config holds configuration for shortener generators
type Config struct {
	Length   int    `mapstructure:"length"`   // Number of characters per generated code
	Alphabet string `mapstructure:"alphabet"` // Characters sampled with replacement
}

// GeneratorType constants
const (
	TypeRandom = "random"
)

const (
	// DefaultLength is the length of generated codes
	DefaultLength = 10

	// DefaultAlphabet has no 'x'. Existing clients depend on it, keep it as is.
	DefaultAlphabet = "0123456789abcdefghijklmnopqrstuvwyz_"
)

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		Length:   DefaultLength,
		Alphabet: DefaultAlphabet,
	}
}
