package window

import (
	"math"
	"strings"
	"testing"
)

const tol = 1e-12

func TestGenerate_Golden(t *testing.T) {
	tests := []struct {
		name string
		typ  Type
		want []float64
	}{
		{
			name: "hann",
			typ:  TypeHann,
			want: []float64{
				0.0, 0.1882550990706332, 0.6112604669781572, 0.9504844339512095,
				0.9504844339512095, 0.6112604669781573, 0.1882550990706333, 0.0,
			},
		},
		{
			name: "hamming",
			typ:  TypeHamming,
			want: []float64{
				0.08, 0.25319469114498255, 0.6423596296199047, 0.9544456792351128,
				0.9544456792351128, 0.6423596296199047, 0.25319469114498255, 0.08,
			},
		},
		{
			name: "rectangular",
			typ:  TypeRectangular,
			want: []float64{1, 1, 1, 1, 1, 1, 1, 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Generate(tt.typ, len(tt.want))
			if len(got) != len(tt.want) {
				t.Fatalf("len=%d, want %d", len(got), len(tt.want))
			}

			for i := range got {
				if math.Abs(got[i]-tt.want[i]) > 1e-12 {
					t.Fatalf("w[%d]=%.16f, want %.16f", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestGenerate_Periodic(t *testing.T) {
	w := Generate(TypeHann, 4, WithPeriodic())
	want := []float64{0, 0.5, 1, 0.5}

	for i := range want {
		if math.Abs(w[i]-want[i]) > tol {
			t.Fatalf("w[%d]=%g, want %g", i, w[i], want[i])
		}
	}
}

func TestGenerate_Invalid(t *testing.T) {
	if Generate(TypeHann, 0) != nil {
		t.Fatal("zero length should return nil")
	}

	if Generate(Type(99), 8) != nil {
		t.Fatal("unknown type should return nil")
	}

	if w := Generate(TypeHann, 1); len(w) != 1 || math.Abs(w[0]) > tol {
		t.Fatalf("single-point Hann = %v", w)
	}
}

func TestZeroValueIsHann(t *testing.T) {
	var typ Type
	if typ != TypeHann || typ.String() != "Hann" {
		t.Fatalf("zero Type = %v", typ)
	}

	if got := Type(42).String(); got != "Type(42)" {
		t.Fatalf("String()=%q", got)
	}
}

func TestParse(t *testing.T) {
	for _, typ := range []Type{TypeHann, TypeHamming, TypeBlackman, TypeRectangular} {
		got, err := Parse(strings.ToLower(typ.String()))
		if err != nil || got != typ {
			t.Fatalf("Parse(%q) = %v, %v", typ.String(), got, err)
		}
	}

	if _, err := Parse("kaiser"); err == nil {
		t.Fatal("expected error for unknown window")
	}
}

func TestApply(t *testing.T) {
	buf := []float64{2, 2, 2, 2}
	if err := Apply(buf, Generate(TypeHann, 4, WithPeriodic())); err != nil {
		t.Fatal(err)
	}

	want := []float64{0, 1, 2, 1}
	for i := range want {
		if math.Abs(buf[i]-want[i]) > tol {
			t.Fatalf("buf[%d]=%g, want %g", i, buf[i], want[i])
		}
	}

	if err := Apply(buf, []float64{1}); err == nil {
		t.Fatal("expected length mismatch error")
	}
}

func TestGains_PeriodicHann(t *testing.T) {
	w := Generate(TypeHann, 1024, WithPeriodic())

	if got := CoherentGain(w); math.Abs(got-0.5) > 1e-12 {
		t.Fatalf("coherent gain=%g, want 0.5", got)
	}

	if got := PowerGain(w); math.Abs(got-0.375) > 1e-12 {
		t.Fatalf("power gain=%g, want 0.375", got)
	}

	if got := ENBW(w); math.Abs(got-1.5) > 1e-9 {
		t.Fatalf("ENBW=%g, want 1.5", got)
	}

	if got := ENBW(Generate(TypeRectangular, 64)); math.Abs(got-1) > 1e-12 {
		t.Fatalf("rectangular ENBW=%g, want 1", got)
	}
}

func TestGains_Empty(t *testing.T) {
	if CoherentGain(nil) != 0 || PowerGain(nil) != 0 {
		t.Fatal("empty gains should be zero")
	}

	if !math.IsInf(ENBW(nil), 1) {
		t.Fatal("empty ENBW should be +Inf")
	}
}

func BenchmarkGenerateHann(b *testing.B) {
	for b.Loop() {
		_ = Generate(TypeHann, 4096, WithPeriodic())
	}
}
