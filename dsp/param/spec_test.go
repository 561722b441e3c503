package param

import (
	"math"
	"testing"
)

func TestSpecNormalizeRoundTrip(t *testing.T) {
	l := DefaultLayout()

	for _, spec := range l.Specs() {
		t.Run(spec.ID, func(t *testing.T) {
			for _, plain := range []float64{spec.Min, spec.Default, spec.Max, (spec.Min + spec.Max) / 2} {
				want := spec.Clamp(plain)

				got := spec.Denormalize(spec.Normalize(plain))
				if math.Abs(got-want) > 1e-9 {
					t.Fatalf("round trip %v -> %v, want %v", plain, got, want)
				}
			}
		})
	}
}

func TestSpecSkew(t *testing.T) {
	release, ok := DefaultLayout().Lookup(IDRelease)
	if !ok {
		t.Fatal("release missing")
	}

	want := math.Sqrt((150.0 - 10) / 990)
	if got := release.Normalize(150); math.Abs(got-want) > 1e-12 {
		t.Fatalf("Normalize(150) = %v, want %v", got, want)
	}

	if got := release.Denormalize(0.5); math.Abs(got-(10+990*0.25)) > 1e-9 {
		t.Fatalf("Denormalize(0.5) = %v, want %v", got, 10+990*0.25)
	}
}

func TestSpecClamp(t *testing.T) {
	l := DefaultLayout()
	input, _ := l.Lookup(IDInput)
	routing, _ := l.Lookup(IDRouting)

	tests := []struct {
		name string
		spec Spec
		in   float64
		want float64
	}{
		{"below range", input, -100, -60},
		{"above range", input, 30, 10},
		{"NaN uses default", input, math.NaN(), 0},
		{"choice rounds", routing, 1.4, 1},
		{"choice upper", routing, 7, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.spec.Clamp(tt.in); got != tt.want {
				t.Fatalf("Clamp(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestSpecParseAndFormat(t *testing.T) {
	l := DefaultLayout()

	tests := []struct {
		id     string
		text   string
		want   float64
		format string
	}{
		{IDInput, "-6 dB", -6, "-6.00 dB"},
		{IDInput, "4.5", 4.5, "4.50 dB"},
		{IDRelease, "300ms", 300, "300.00 ms"},
		{IDSidechain, "on", 1, "on"},
		{IDPower, "false", 0, "off"},
		{IDCharacter, "iron", 1, "IRON"},
		{IDRouting, "Ω", 2, "Ω"},
		{IDRouting, "1", 1, "D"},
	}

	for _, tt := range tests {
		t.Run(tt.id+"="+tt.text, func(t *testing.T) {
			spec, _ := l.Lookup(tt.id)

			got, err := spec.Parse(tt.text)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.text, err)
			}

			if got != tt.want {
				t.Fatalf("Parse(%q) = %v, want %v", tt.text, got, tt.want)
			}

			if f := spec.Format(got); f != tt.format {
				t.Fatalf("Format(%v) = %q, want %q", got, f, tt.format)
			}
		})
	}
}

func TestSpecParseErrors(t *testing.T) {
	l := DefaultLayout()

	for _, tt := range []struct{ id, text string }{
		{IDInput, "loud"},
		{IDInput, "NaN"},
		{IDPower, "maybe"},
		{IDCharacter, "FUZZ"},
	} {
		spec, _ := l.Lookup(tt.id)
		if _, err := spec.Parse(tt.text); err == nil {
			t.Fatalf("Parse(%q) for %s: expected error", tt.text, tt.id)
		}
	}
}

func TestNewLayoutRejectsInvalid(t *testing.T) {
	tests := []struct {
		name  string
		specs []Spec
	}{
		{"duplicate", []Spec{Bool("a", "A", false), Bool("a", "A", true)}},
		{"empty id", []Spec{Bool("", "A", false)}},
		{"inverted range", []Spec{Float("x", "X", "", 1, 0, 0.5, 1)}},
		{"default outside", []Spec{Float("x", "X", "", 0, 1, 2, 1)}},
		{"negative skew", []Spec{Float("x", "X", "", 0, 1, 0, -1)}},
		{"single choice", []Spec{Choice("c", "C", 0, "only")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewLayout(tt.specs...); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestDefaultLayoutDefaults(t *testing.T) {
	want := map[string]float64{
		IDInput:     0,
		IDRelease:   150,
		IDEdge:      0,
		IDMode:      0.5,
		IDMix:       1,
		IDOmegaMix:  1,
		IDSidechain: 0,
		IDPower:     1,
		IDCharacter: 0,
		IDRouting:   0,
	}

	l := DefaultLayout()
	if l.Len() != len(want) {
		t.Fatalf("Len = %d, want %d", l.Len(), len(want))
	}

	for id, def := range want {
		spec, ok := l.Lookup(id)
		if !ok {
			t.Fatalf("%s missing", id)
		}

		if spec.Default != def {
			t.Fatalf("%s default = %v, want %v", id, spec.Default, def)
		}
	}
}
