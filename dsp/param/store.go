package param

import (
	"fmt"
	"math"
	"strings"
	"sync/atomic"
)

// Source supplies plain control values by identifier. ok is false when
// the identifier is unknown to the source.
type Source interface {
	Load(id string) (value float64, ok bool)
}

// Store holds the current plain value of every control in a layout.
// All methods are safe for concurrent use; Load never blocks or allocates.
type Store struct {
	layout *Layout
	values []atomic.Uint64
}

// NewStore creates a store with every control at its default.
func NewStore(layout *Layout) *Store {
	s := &Store{
		layout: layout,
		values: make([]atomic.Uint64, layout.Len()),
	}
	s.Reset()

	return s
}

// Layout returns the layout the store was built from.
func (s *Store) Layout() *Layout { return s.layout }

// Reset returns every control to its default.
func (s *Store) Reset() {
	for i, spec := range s.layout.specs {
		s.values[i].Store(math.Float64bits(spec.Default))
	}
}

// Load returns the plain value of id.
func (s *Store) Load(id string) (float64, bool) {
	i, ok := s.layout.index[id]
	if !ok {
		return 0, false
	}

	return math.Float64frombits(s.values[i].Load()), true
}

// LoadNormalized returns the normalized value of id.
func (s *Store) LoadNormalized(id string) (float64, bool) {
	v, ok := s.Load(id)
	if !ok {
		return 0, false
	}

	return s.layout.specs[s.layout.index[id]].Normalize(v), true
}

// Set stores a plain value, clamped to the control's range.
func (s *Store) Set(id string, plain float64) error {
	i, ok := s.layout.index[id]
	if !ok {
		return fmt.Errorf("param: unknown id %q", id)
	}

	if math.IsNaN(plain) {
		return fmt.Errorf("param %q: value is NaN", id)
	}

	s.values[i].Store(math.Float64bits(s.layout.specs[i].Clamp(plain)))

	return nil
}

// SetNormalized stores a value given in [0, 1].
func (s *Store) SetNormalized(id string, normalized float64) error {
	i, ok := s.layout.index[id]
	if !ok {
		return fmt.Errorf("param: unknown id %q", id)
	}

	if math.IsNaN(normalized) {
		return fmt.Errorf("param %q: value is NaN", id)
	}

	s.values[i].Store(math.Float64bits(s.layout.specs[i].Denormalize(normalized)))

	return nil
}

// SetText parses text with the control's Parse rules and stores the result.
func (s *Store) SetText(id, text string) error {
	spec, ok := s.layout.Lookup(id)
	if !ok {
		return fmt.Errorf("param: unknown id %q", id)
	}

	v, err := spec.Parse(text)
	if err != nil {
		return err
	}

	return s.Set(id, v)
}

// Apply parses assignments of the form id=value and stores them in order.
// It stops at the first malformed assignment.
func (s *Store) Apply(assignments ...string) error {
	for _, a := range assignments {
		id, text, found := strings.Cut(a, "=")
		if !found {
			return fmt.Errorf("param: assignment %q is not id=value", a)
		}

		if err := s.SetText(strings.TrimSpace(id), text); err != nil {
			return err
		}
	}

	return nil
}

// Format renders the current value of id for display.
func (s *Store) Format(id string) string {
	spec, ok := s.layout.Lookup(id)
	if !ok {
		return ""
	}

	v, _ := s.Load(id)

	return spec.Format(v)
}
