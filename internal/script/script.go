// Package script reads and replays sparse set scenarios.
//
// A scenario is a YAML document naming a universe, a handful of initial sets
// and a sequence of operations applied to them:
//
//	bound: 10
//	order: unordered
//	sets:
//	  a: [1, 2, 3, 4, 5]
//	  b: [1, 2, 6, 7, 8]
//	steps:
//	  - {op: delete, set: a, key: 3}
//	  - {op: xor, set: a, other: b, order: ordered}
//	expect:
//	  a: [5, 4, 6, 7, 8]
package script

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/coregx/sparseset"
)

var (
	// ErrInvalidScenario is returned when a scenario fails validation.
	ErrInvalidScenario = errors.New("script: invalid scenario")

	// ErrUnknownSet is returned when a step names a set that does not exist.
	ErrUnknownSet = errors.New("script: unknown set")

	// ErrExpectation is returned when a final set differs from its expectation.
	ErrExpectation = errors.New("script: expectation failed")
)

// Op names an operation a step performs.
type Op string

// Supported operations.
const (
	OpAdd          Op = "add"
	OpDelete       Op = "delete"
	OpClear        Op = "clear"
	OpTruncate     Op = "truncate"
	OpUnion        Op = "union"
	OpIntersection Op = "intersection"
	OpDifference   Op = "difference"
	OpXor          Op = "xor"
	OpComplement   Op = "complement"
	OpCopy         Op = "copy"
)

// Scenario is a parsed scenario document.
type Scenario struct {
	Bound  int                 `yaml:"bound"`
	Order  string              `yaml:"order,omitempty"`
	Sets   map[string][]uint32 `yaml:"sets"`
	Steps  []Step              `yaml:"steps,omitempty"`
	Expect map[string][]uint32 `yaml:"expect,omitempty"`

	order sparseset.Order
}

// Step is one operation of a scenario.
//
// Set names the set being modified. Other names the second operand of the
// algebra operations and the source of copy and complement, which replace
// (or create) Set. Bound, when non-zero, gives the universe of a copy or
// complement.
type Step struct {
	Op    Op       `yaml:"op"`
	Set   string   `yaml:"set"`
	Other string   `yaml:"other,omitempty"`
	Key   *uint32  `yaml:"key,omitempty"`
	Keys  []uint32 `yaml:"keys,omitempty"`
	Len   *int     `yaml:"len,omitempty"`
	Order string   `yaml:"order,omitempty"`
	Bound int      `yaml:"bound,omitempty"`

	order sparseset.Order
}

// Load reads and parses the scenario stored at path.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("script: read scenario: %w", err)
	}
	sc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sc, nil
}

// Parse decodes and validates a scenario document.
func Parse(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("script: failed to unmarshal scenario: %w", err)
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

// Validate checks the scenario for structural errors. Membership errors,
// such as a key outside the universe, surface when the scenario runs.
func (sc *Scenario) Validate() error {
	if _, err := sparseset.RegionSize(sc.Bound); err != nil {
		return fmt.Errorf("%w: bound %d: %w", ErrInvalidScenario, sc.Bound, err)
	}
	order, err := ParseOrder(sc.Order)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidScenario, err)
	}
	sc.order = order
	if len(sc.Sets) == 0 {
		return fmt.Errorf("%w: no sets", ErrInvalidScenario)
	}

	for i := range sc.Steps {
		if err := sc.Steps[i].validate(); err != nil {
			return fmt.Errorf("%w: step %d: %w", ErrInvalidScenario, i+1, err)
		}
	}
	return nil
}

func (st *Step) validate() error {
	if st.Set == "" {
		return fmt.Errorf("%s: missing set", st.Op)
	}
	order, err := ParseOrder(st.Order)
	if err != nil {
		return err
	}
	st.order = order

	switch st.Op {
	case OpAdd:
		if st.Key == nil && len(st.Keys) == 0 {
			return errors.New("add: missing key")
		}
	case OpDelete:
		if st.Key == nil {
			return errors.New("delete: missing key")
		}
	case OpClear:
	case OpTruncate:
		if st.Len == nil {
			return errors.New("truncate: missing len")
		}
	case OpUnion, OpIntersection, OpDifference, OpXor, OpComplement, OpCopy:
		if st.Other == "" {
			return fmt.Errorf("%s: missing other", st.Op)
		}
		if st.Bound < 0 {
			return fmt.Errorf("%s: negative bound %d", st.Op, st.Bound)
		}
	default:
		return fmt.Errorf("unknown op %q", st.Op)
	}
	return nil
}

// ParseOrder maps a scenario order name to an Order. The empty string and
// "default" map to OrderDefault.
func ParseOrder(name string) (sparseset.Order, error) {
	switch name {
	case "", "default":
		return sparseset.OrderDefault, nil
	case "unordered":
		return sparseset.Unordered, nil
	case "ordered":
		return sparseset.Ordered, nil
	default:
		return sparseset.OrderDefault, fmt.Errorf("unknown order %q", name)
	}
}

// setNames returns the initial set names in sorted order.
func (sc *Scenario) setNames() []string {
	names := make([]string, 0, len(sc.Sets))
	for name := range sc.Sets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
