package saturation

import (
	"math"
	"testing"

	"github.com/cwbudde/omega76/internal/testutil"
)

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name     string
		drive    float64
		hardness float64
		wantErr  bool
	}{
		{"defaults", 1, 1, false},
		{"max character", 21.6, 2.6, false},
		{"zero drive", 0, 1, false},
		{"negative drive", -1, 1, true},
		{"NaN drive", math.NaN(), 1, true},
		{"too much drive", 1000, 1, true},
		{"zero hardness", 1, 0, true},
		{"infinite hardness", 1, math.Inf(1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.drive, tt.hardness)
			if (err != nil) != tt.wantErr {
				t.Fatalf("New(%v, %v) error = %v, wantErr %v", tt.drive, tt.hardness, err, tt.wantErr)
			}
		})
	}
}

func TestSaturatorUnityPoint(t *testing.T) {
	for _, h := range []float64{1, 1.8, 2.6} {
		for _, d := range []float64{1, 4, 12} {
			s, err := New(d, h)
			if err != nil {
				t.Fatal(err)
			}

			if got := s.ProcessSample(1 / d); math.Abs(got-1) > 1e-12 {
				t.Fatalf("drive=%v hardness=%v: sat(1/drive) = %v, want 1", d, h, got)
			}
		}
	}
}

func TestSaturatorOddSymmetry(t *testing.T) {
	s, err := New(5, 2)
	if err != nil {
		t.Fatal(err)
	}

	for _, x := range testutil.DeterministicNoise(3, 4, 256) {
		if a, b := s.ProcessSample(-x), -s.ProcessSample(x); a != b {
			t.Fatalf("sat(-%v) = %v, -sat(%v) = %v", x, a, x, b)
		}
	}
}

func TestSaturatorBounded(t *testing.T) {
	inputs := []float64{0, 1e-9, 0.5, 1, 10, 1e6, 1e300, -1e300}

	for _, h := range []float64{1, 2.6} {
		s, err := New(21.6, h)
		if err != nil {
			t.Fatal(err)
		}

		bound := s.Bound()
		if bound > 2 {
			t.Fatalf("hardness=%v: bound %v exceeds 2", h, bound)
		}

		for _, x := range inputs {
			y := s.ProcessSample(x)
			if math.IsNaN(y) || math.Abs(y) > bound*(1+1e-12) {
				t.Fatalf("hardness=%v: sat(%v) = %v, bound %v", h, x, y, bound)
			}
		}
	}
}

func TestSaturatorProcessMatchesSample(t *testing.T) {
	s, err := New(3, 1.5)
	if err != nil {
		t.Fatal(err)
	}

	src := testutil.DeterministicSine(997, 48000, 0.8, 128)
	want := make([]float64, len(src))

	for i, x := range src {
		want[i] = s.ProcessSample(x)
	}

	dst := make([]float64, len(src))
	s.Process(dst, src)
	testutil.RequireSliceNearlyEqual(t, dst, want, 0)

	buf := append([]float64(nil), src...)
	s.ProcessInPlace(buf)
	testutil.RequireSliceNearlyEqual(t, buf, want, 0)
}

func TestSaturatorConfigureSanitizes(t *testing.T) {
	var s Saturator
	s.Configure(math.NaN(), math.Inf(1))

	if s.Drive() != defaultDrive || s.Hardness() != defaultHardness {
		t.Fatalf("drive=%v hardness=%v", s.Drive(), s.Hardness())
	}

	s.Configure(500, 0)

	if s.Drive() != maxDrive || s.Hardness() != minHardness {
		t.Fatalf("drive=%v hardness=%v", s.Drive(), s.Hardness())
	}
}

func BenchmarkSaturatorProcessInPlace(b *testing.B) {
	s, err := New(6.5, 1.8)
	if err != nil {
		b.Fatal(err)
	}

	buf := testutil.DeterministicSine(440, 48000, 0.9, 512)

	b.ReportAllocs()
	b.SetBytes(int64(len(buf) * 8))

	for b.Loop() {
		s.ProcessInPlace(buf)
	}
}
