package facade

import (
	"errors"
	"fmt"
)

// ErrConfig marks invalid facade configuration. Invalid input to the
// generator is a programming error and fails fast, it is never clamped.
var ErrConfig = errors.New("invalid facade config")

const (
	DefaultColumns = 10
	DefaultRows    = 6
	DefaultSeed    = 1

	// seedBound keeps randomized seeds small and reproducible.
	seedBound = 10000
)

// Config describes the facade grid. Columns and rows are fixed constants for
// now but carried in config so they can become user input later.
type Config struct {
	Columns int
	Rows    int
	Seed    int
}

// DefaultConfig returns the configuration the application starts with.
func DefaultConfig() Config {
	return Config{Columns: DefaultColumns, Rows: DefaultRows, Seed: DefaultSeed}
}

// Validate checks the grid dimensions. The seed is unconstrained.
func (c Config) Validate() error {
	if c.Columns < 1 {
		return fmt.Errorf("%w: columns must be >= 1, got %d", ErrConfig, c.Columns)
	}
	if c.Rows < 1 {
		return fmt.Errorf("%w: rows must be >= 1, got %d", ErrConfig, c.Rows)
	}
	return nil
}

// NextSeed advances a seed one randomize step. Seeds cycle through
// [1, 10000]: starting from 1, exactly 10000 steps return to 1.
func NextSeed(seed int) int {
	return seed%seedBound + 1
}
