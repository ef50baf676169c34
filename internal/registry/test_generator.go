package registry

import (
	"fmt"
)

// TestGenerator is a deterministic identifier generator for testing purposes
type TestGenerator struct {
	counter int
}

// NewTestGenerator creates a new test generator
func NewTestGenerator() *TestGenerator {
	return &TestGenerator{counter: 0}
}

// NewShortID generates a predictable sequential short ID
func (g *TestGenerator) NewShortID() (string, error) {
	g.counter++
	return fmt.Sprintf("test%04d", g.counter), nil
}
