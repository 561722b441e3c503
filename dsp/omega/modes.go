package omega

import "fmt"

// RoutingMode selects the signal path that feeds the wet signal.
type RoutingMode int

const (
	// CompressorOnly applies the smoothed gain only (A).
	CompressorOnly RoutingMode = iota
	// SaturatorOnly saturates the input; the detector still runs (D).
	SaturatorOnly
	// Combined saturates the compressed signal and blends the result
	// against the compressed signal by SubMix (Ω).
	Combined
)

func (m RoutingMode) String() string {
	switch m {
	case CompressorOnly:
		return "A"
	case SaturatorOnly:
		return "D"
	case Combined:
		return "Ω"
	default:
		return fmt.Sprintf("RoutingMode(%d)", int(m))
	}
}

func (m RoutingMode) valid() bool {
	return m >= CompressorOnly && m <= Combined
}

// CharacterMode selects the compression ratio and the saturation drive boost.
type CharacterMode int

const (
	Clean CharacterMode = iota
	Iron
	Grit
)

var characterTable = [...]struct {
	name  string
	ratio float64
	boost float64
}{
	Clean: {"CLEAN", 2, 1},
	Iron:  {"IRON", 4, 1.35},
	Grit:  {"GRIT", 8, 1.8},
}

func (c CharacterMode) String() string {
	if c < Clean || c > Grit {
		return fmt.Sprintf("CharacterMode(%d)", int(c))
	}

	return characterTable[c].name
}

// Ratio returns the compression ratio of the mode. Unknown modes use CLEAN.
func (c CharacterMode) Ratio() float64 {
	if c < Clean || c > Grit {
		c = Clean
	}

	return characterTable[c].ratio
}

// DriveBoost returns the saturation drive multiplier of the mode.
// Unknown modes use CLEAN.
func (c CharacterMode) DriveBoost() float64 {
	if c < Clean || c > Grit {
		c = Clean
	}

	return characterTable[c].boost
}
