package shortener

import (
	"context"
	"math/rand/v2"
)

// RandomGenerator samples each character independently, with replacement, from its alphabet
type RandomGenerator struct {
	alphabet []byte
	length   int
	source   Source
}

// globalSource delegates to the top-level math/rand/v2 functions, which are safe for concurrent use
type globalSource struct{}

func (globalSource) IntN(n int) int {
	return rand.IntN(n)
}

// NewRandomGenerator creates a generator for config. A nil source selects the shared global source.
func NewRandomGenerator(config Config, source Source) *RandomGenerator {
	if source == nil {
		source = globalSource{}
	}

	return &RandomGenerator{
		alphabet: []byte(config.Alphabet),
		length:   config.Length,
		source:   source,
	}
}

// GenerateShortCode builds a new code of the configured length
func (g *RandomGenerator) GenerateShortCode(ctx context.Context) (string, error) {
	code := make([]byte, g.length)
	for i := range code {
		code[i] = g.alphabet[g.source.IntN(len(g.alphabet))]
	}

	return string(code), nil
}

// Type returns the generator type
func (g *RandomGenerator) Type() string {
	return TypeRandom
}

// Close performs cleanup
func (g *RandomGenerator) Close() error {
	return nil
}

// Ensure RandomGenerator implements Generator interface
var _ Generator = (*RandomGenerator)(nil)
