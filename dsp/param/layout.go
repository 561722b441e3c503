package param

import "fmt"

// Control identifiers of the default layout.
const (
	IDInput     = "input"
	IDRelease   = "release"
	IDEdge      = "edge"
	IDMode      = "mode"
	IDMix       = "mix"
	IDOmegaMix  = "omega_mix"
	IDSidechain = "sc_hpf"
	IDPower     = "pwr"
	IDCharacter = "omega_mode"
	IDRouting   = "routing"
)

// Layout is an ordered, immutable set of control declarations.
type Layout struct {
	specs []Spec
	index map[string]int
}

// NewLayout validates specs and builds a layout. Identifiers must be unique.
func NewLayout(specs ...Spec) (*Layout, error) {
	l := &Layout{
		specs: make([]Spec, len(specs)),
		index: make(map[string]int, len(specs)),
	}

	for i, s := range specs {
		if err := s.validate(); err != nil {
			return nil, err
		}

		if _, dup := l.index[s.ID]; dup {
			return nil, fmt.Errorf("param: duplicate id %q", s.ID)
		}

		l.specs[i] = s
		l.index[s.ID] = i
	}

	return l, nil
}

// DefaultLayout returns the ten controls of the engine.
func DefaultLayout() *Layout {
	l, err := NewLayout(
		Float(IDInput, "INPUT", "dB", -60, 10, 0, 1),
		Float(IDRelease, "RELEASE", "ms", 10, 1000, 150, 0.5),
		Float(IDEdge, "EDGE", "", 0, 1, 0, 1),
		Float(IDMode, "MODE", "", 0, 1, 0.5, 1),
		Float(IDMix, "MIX", "", 0, 1, 1, 1),
		Float(IDOmegaMix, "Ω MIX", "", 0, 1, 1, 1),
		Bool(IDSidechain, "SC HPF", false),
		Bool(IDPower, "PWR", true),
		Choice(IDCharacter, "Ω MODE", 0, "CLEAN", "IRON", "GRIT"),
		Choice(IDRouting, "ROUTING", 0, "A", "D", "Ω"),
	)
	if err != nil {
		panic(err)
	}

	return l
}

// Lookup returns the declaration of id.
func (l *Layout) Lookup(id string) (Spec, bool) {
	i, ok := l.index[id]
	if !ok {
		return Spec{}, false
	}

	return l.specs[i], true
}

// Specs returns the declarations in layout order.
func (l *Layout) Specs() []Spec {
	return append([]Spec(nil), l.specs...)
}

// Len returns the number of controls.
func (l *Layout) Len() int { return len(l.specs) }
