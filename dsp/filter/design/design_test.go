package design

import (
	"math"
	"testing"

	"github.com/cwbudde/omega76/dsp/filter/biquad"
)

func almostEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func TestButterworthHP_SectionCount(t *testing.T) {
	tests := []struct {
		order    int
		sections int
	}{
		{1, 1},
		{2, 1},
		{3, 2},
		{4, 2},
	}

	for _, tt := range tests {
		if got := len(ButterworthHP(120, tt.order, 48000)); got != tt.sections {
			t.Fatalf("order %d: got %d sections, want %d", tt.order, got, tt.sections)
		}
	}
}

func TestButterworthHP_Minus3dBAtCutoff(t *testing.T) {
	for _, sr := range []float64{44100, 48000, 96000} {
		for _, order := range []int{1, 2, 3, 4} {
			chain := biquad.NewCascade(1, ButterworthHP(120, order, sr))
			cutoffDB := chain.MagnitudeDB(120, sr)
			if !almostEqual(cutoffDB, -3.01, 0.1) {
				t.Fatalf("sr %.0f order %d: cutoff magnitude=%.2f dB, want ~-3.01 dB", sr, order, cutoffDB)
			}
		}
	}
}

func TestButterworthHP_PassbandAndStopband(t *testing.T) {
	sr := 48000.0
	for _, order := range []int{1, 2} {
		chain := biquad.NewCascade(1, ButterworthHP(120, order, sr))

		if pass := chain.MagnitudeDB(5000, sr); !almostEqual(pass, 0, 0.05) {
			t.Fatalf("order %d: passband=%.3f dB, want ~0", order, pass)
		}

		// One decade below cutoff: ~-20 dB per order.
		stop := chain.MagnitudeDB(12, sr)
		want := -20.0 * float64(order)
		if !almostEqual(stop, want, 1.0) {
			t.Fatalf("order %d: stopband=%.2f dB, want ~%.0f", order, stop, want)
		}
	}
}

func TestButterworthHP_FirstOrderIsSinglePole(t *testing.T) {
	c := ButterworthHP(120, 1, 48000)[0]
	if c.B2 != 0 || c.A2 != 0 {
		t.Fatalf("first-order section has second-order terms: %+v", c)
	}
	if !c.Stable() {
		t.Fatalf("pole outside unit circle: %v", c.A1)
	}
	if !almostEqual(c.B0+c.B1, 0, 1e-15) {
		t.Fatalf("DC gain must be zero: B0+B1=%v", c.B0+c.B1)
	}
}

func TestButterworthHP_Stable(t *testing.T) {
	for _, sr := range []float64{22050, 48000, 192000} {
		for _, order := range []int{1, 2, 3, 4} {
			for i, c := range ButterworthHP(120, order, sr) {
				if !c.Stable() {
					t.Fatalf("sr %.0f order %d section %d unstable: %+v", sr, order, i, c)
				}
			}
		}
	}
}

func TestHighpass_DefaultQ(t *testing.T) {
	a := Highpass(120, 0, 48000)
	b := Highpass(120, defaultQ, 48000)
	if a != b {
		t.Fatalf("invalid q should fall back to 1/sqrt2: %+v vs %+v", a, b)
	}
}

func TestInvalidInputs(t *testing.T) {
	if ButterworthHP(120, 0, 48000) != nil {
		t.Fatal("order 0 should return nil")
	}

	zero := biquad.Coefficients{}
	cases := []struct {
		name string
		got  biquad.Coefficients
	}{
		{"zero rate", Highpass(120, defaultQ, 0)},
		{"above nyquist", Highpass(30000, defaultQ, 48000)},
		{"nan freq", Highpass(math.NaN(), defaultQ, 48000)},
		{"first order zero rate", butterworthFirstOrderHP(120, 0)},
	}

	for _, tt := range cases {
		if tt.got != zero {
			t.Fatalf("%s: expected zero coefficients, got %+v", tt.name, tt.got)
		}
	}
}
