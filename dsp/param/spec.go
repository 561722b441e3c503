package param

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/cwbudde/omega76/dsp/core"
)

// Kind distinguishes continuous, switched and enumerated controls.
type Kind int

const (
	KindFloat Kind = iota
	KindBool
	KindChoice
)

func (k Kind) String() string {
	switch k {
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindChoice:
		return "choice"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Spec describes one control. Plain values are in the control's own unit;
// normalized values are in [0, 1].
type Spec struct {
	ID      string
	Name    string
	Unit    string
	Kind    Kind
	Min     float64
	Max     float64
	Default float64

	// Skew shapes the normalized mapping: normalized = proportion^Skew.
	// Values below 1 give more knob travel to the low end. Zero means 1.
	Skew float64

	// Choices lists the labels of a KindChoice control, indexed by plain value.
	Choices []string
}

// Float declares a continuous control.
func Float(id, name, unit string, minValue, maxValue, def, skew float64) Spec {
	return Spec{ID: id, Name: name, Unit: unit, Kind: KindFloat, Min: minValue, Max: maxValue, Default: def, Skew: skew}
}

// Bool declares an on/off control stored as 0 or 1.
func Bool(id, name string, def bool) Spec {
	d := 0.0
	if def {
		d = 1
	}

	return Spec{ID: id, Name: name, Kind: KindBool, Min: 0, Max: 1, Default: d}
}

// Choice declares an enumerated control whose plain value is a label index.
func Choice(id, name string, def int, choices ...string) Spec {
	return Spec{
		ID:      id,
		Name:    name,
		Kind:    KindChoice,
		Min:     0,
		Max:     float64(len(choices) - 1),
		Default: float64(def),
		Choices: choices,
	}
}

func (s Spec) validate() error {
	if s.ID == "" {
		return fmt.Errorf("param: empty id")
	}

	if !core.IsFinite(s.Min) || !core.IsFinite(s.Max) || s.Min >= s.Max {
		return fmt.Errorf("param %q: invalid range [%f, %f]", s.ID, s.Min, s.Max)
	}

	if s.Default < s.Min || s.Default > s.Max || !core.IsFinite(s.Default) {
		return fmt.Errorf("param %q: default %f outside [%f, %f]", s.ID, s.Default, s.Min, s.Max)
	}

	if s.Skew < 0 || !core.IsFinite(s.Skew) {
		return fmt.Errorf("param %q: skew must not be negative: %f", s.ID, s.Skew)
	}

	if s.Kind == KindChoice && len(s.Choices) < 2 {
		return fmt.Errorf("param %q: choice control needs at least two labels", s.ID)
	}

	return nil
}

func (s Spec) skew() float64 {
	if s.Skew == 0 {
		return 1
	}

	return s.Skew
}

// Clamp snaps a plain value into the control's range. Switched and
// enumerated controls are rounded to the nearest step. NaN yields the default.
func (s Spec) Clamp(plain float64) float64 {
	if math.IsNaN(plain) {
		return s.Default
	}

	plain = core.Clamp(plain, s.Min, s.Max)
	if s.Kind != KindFloat {
		plain = math.Round(plain)
	}

	return plain
}

// Normalize maps a plain value to [0, 1].
func (s Spec) Normalize(plain float64) float64 {
	proportion := (s.Clamp(plain) - s.Min) / (s.Max - s.Min)
	if skew := s.skew(); skew != 1 && proportion > 0 {
		proportion = math.Pow(proportion, skew)
	}

	return proportion
}

// Denormalize maps a normalized value in [0, 1] to the plain range.
func (s Spec) Denormalize(normalized float64) float64 {
	if math.IsNaN(normalized) {
		return s.Default
	}

	normalized = core.Clamp(normalized, 0, 1)
	if skew := s.skew(); skew != 1 && normalized > 0 {
		normalized = math.Pow(normalized, 1/skew)
	}

	return s.Clamp(s.Min + normalized*(s.Max-s.Min))
}

// Format renders a plain value for display.
func (s Spec) Format(plain float64) string {
	plain = s.Clamp(plain)

	switch s.Kind {
	case KindBool:
		if plain >= 0.5 {
			return "on"
		}

		return "off"
	case KindChoice:
		return s.Choices[int(plain)]
	}

	text := strconv.FormatFloat(plain, 'f', 2, 64)
	if s.Unit != "" {
		text += " " + s.Unit
	}

	return text
}

// Parse reads a plain value from text. It accepts numbers with an optional
// unit suffix, on/off style words for switches and labels for choices.
func (s Spec) Parse(text string) (float64, error) {
	text = strings.TrimSpace(text)

	switch s.Kind {
	case KindBool:
		switch strings.ToLower(text) {
		case "on", "true", "yes", "1":
			return 1, nil
		case "off", "false", "no", "0":
			return 0, nil
		}

		return 0, fmt.Errorf("param %q: not a switch value: %q", s.ID, text)
	case KindChoice:
		for i, label := range s.Choices {
			if strings.EqualFold(label, text) {
				return float64(i), nil
			}
		}
	}

	if s.Unit != "" {
		text = strings.TrimSpace(strings.TrimSuffix(text, s.Unit))
	}

	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, fmt.Errorf("param %q: %w", s.ID, err)
	}

	if !core.IsFinite(v) {
		return 0, fmt.Errorf("param %q: value must be finite: %q", s.ID, text)
	}

	return s.Clamp(v), nil
}
