// Package literal reports which of a fixed set of byte patterns occur in a
// haystack.
//
// A Scanner compiles its patterns into an Aho-Corasick automaton once and
// then records the pattern IDs it finds in a reusable sparse set. IDs are
// the positions of the patterns passed to NewScanner. Every occurrence
// counts, including patterns nested in or overlapping another match, and a
// pattern given more than once is reported under each of its IDs.
package literal

import (
	"errors"
	"fmt"

	"github.com/coregx/ahocorasick"
	"github.com/coregx/sparseset"
)

var (
	// ErrNoPatterns is returned when a Scanner is built without patterns.
	ErrNoPatterns = errors.New("literal: no patterns")

	// ErrEmptyPattern is returned when a pattern has zero length.
	ErrEmptyPattern = errors.New("literal: empty pattern")

	// ErrTooManyPatterns is returned when the pattern count exceeds
	// Config.MaxPatterns.
	ErrTooManyPatterns = errors.New("literal: too many patterns")
)

// Config controls Scanner construction.
type Config struct {
	// MaxPatterns limits the number of patterns a Scanner accepts.
	// Default: 65535
	MaxPatterns int
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{MaxPatterns: 65535}
}

// Validate checks if the configuration is valid.
func (c Config) Validate() error {
	if c.MaxPatterns < 1 || c.MaxPatterns > 1<<24 {
		return &sparseset.ConfigError{
			Field:   "MaxPatterns",
			Message: "must be between 1 and 16777216",
		}
	}
	return nil
}

// Scanner finds which patterns occur in a haystack.
//
// A Scanner is not safe for concurrent use: Scan reuses its result set.
type Scanner struct {
	auto     *ahocorasick.Automaton
	patterns [][]byte
	seen     *sparseset.Set
	common   *sparseset.Set
}

// NewScanner builds a Scanner with the default configuration.
func NewScanner(patterns [][]byte) (*Scanner, error) {
	return NewScannerWithConfig(patterns, DefaultConfig())
}

// NewScannerWithConfig builds a Scanner over patterns.
//
// Example:
//
//	sc, err := literal.NewScannerWithConfig(patterns, literal.Config{MaxPatterns: 64})
func NewScannerWithConfig(patterns [][]byte, config Config) (*Scanner, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if len(patterns) == 0 {
		return nil, ErrNoPatterns
	}
	if len(patterns) > config.MaxPatterns {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManyPatterns, len(patterns), config.MaxPatterns)
	}

	builder := ahocorasick.NewBuilder()
	for i, p := range patterns {
		if len(p) == 0 {
			return nil, fmt.Errorf("%w at index %d", ErrEmptyPattern, i)
		}
		builder.AddPattern(p)
	}
	auto, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("literal: build automaton: %w", err)
	}

	seen, err := newResult(len(patterns))
	if err != nil {
		return nil, err
	}
	common, err := newResult(len(patterns))
	if err != nil {
		return nil, err
	}
	return &Scanner{
		auto:     auto,
		patterns: patterns,
		seen:     seen,
		common:   common,
	}, nil
}

func newResult(n int) (*sparseset.Set, error) {
	config := sparseset.DefaultConfig()
	config.Order = sparseset.Ordered
	return sparseset.NewWithConfig(n, config)
}

// Len returns the number of pattern IDs.
func (sc *Scanner) Len() int {
	return len(sc.patterns)
}

// Pattern returns the pattern registered under id.
func (sc *Scanner) Pattern(id uint32) []byte {
	return sc.patterns[id]
}

// Scan returns the IDs of the patterns found in haystack, in the order
// their first occurrences end. Overlapping and nested occurrences all
// count: with patterns "abc" and "b", scanning "abc" reports both.
//
// The returned set is owned by the Scanner and is overwritten by the next
// call to Scan, ScanAll or Missing.
func (sc *Scanner) Scan(haystack []byte) *sparseset.Set {
	sc.seen.Clear()
	for _, m := range sc.auto.FindAllOverlapping(haystack) {
		// PatternID indexes patterns, which is the bound of seen.
		_ = sc.seen.Add(uint32(m.PatternID))
	}
	return sc.seen
}

// ScanAll returns the IDs of the patterns found in every haystack, in the
// order they were first seen in the first haystack. With no haystacks the
// result is empty. The returned set is owned by the Scanner.
func (sc *Scanner) ScanAll(haystacks ...[]byte) *sparseset.Set {
	sc.common.Clear()
	for i, h := range haystacks {
		found := sc.Scan(h)
		if i == 0 {
			sc.common.Union(found)
			continue
		}
		sc.common.Intersection(found)
		if sc.common.IsEmpty() {
			break
		}
	}
	return sc.common
}

// Missing returns a new set holding the IDs of the patterns absent from
// haystack, in ascending order.
func (sc *Scanner) Missing(haystack []byte) *sparseset.Set {
	return sc.Scan(haystack).Complement()
}
