package service

import (
	"context"
	"fmt"
	"sync"
)

// SequenceGenerator replays a fixed list of codes, which lets tests force
// collisions in the generation loop
type SequenceGenerator struct {
	mu    sync.Mutex
	codes []string
	next  int
}

// NewSequenceGenerator creates a generator returning codes in order
func NewSequenceGenerator(codes ...string) *SequenceGenerator {
	return &SequenceGenerator{codes: codes}
}

// GenerateShortCode returns the next scripted code
func (g *SequenceGenerator) GenerateShortCode(ctx context.Context) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.next >= len(g.codes) {
		return "", fmt.Errorf("sequence generator exhausted after %d codes", len(g.codes))
	}
	code := g.codes[g.next]
	g.next++
	return code, nil
}

// Calls returns how many codes have been handed out
func (g *SequenceGenerator) Calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.next
}

// Type returns the generator type
func (g *SequenceGenerator) Type() string {
	return "sequence"
}

// Close performs cleanup
func (g *SequenceGenerator) Close() error {
	return nil
}
