package omega

import (
	"math"
	"testing"

	"github.com/cwbudde/omega76/dsp/effects/dynamics"
	"github.com/cwbudde/omega76/dsp/param"
)

func TestResolveDefaults(t *testing.T) {
	r := NewResolver(nil)
	r.SetSampleRate(testRate)

	got := r.Resolve(nil)
	want := DefaultControlParameters(testRate)

	if got != want {
		t.Fatalf("Resolve(nil) = %+v\nwant %+v", got, want)
	}
}

func TestResolveStoreDefaultsMatchNilSource(t *testing.T) {
	r := NewResolver(nil)
	r.SetSampleRate(testRate)

	store := param.NewStore(param.DefaultLayout())
	if a, b := r.Resolve(store), r.Resolve(nil); a != b {
		t.Fatalf("store defaults %+v differ from nil source %+v", a, b)
	}
}

func TestResolveMapping(t *testing.T) {
	r := NewResolver(param.DefaultLayout())
	r.SetSampleRate(testRate)

	cp := r.Resolve(mapSource{
		param.IDInput:     -6,
		param.IDRelease:   300,
		param.IDEdge:      1,
		param.IDMode:      1,
		param.IDMix:       0.25,
		param.IDOmegaMix:  0.5,
		param.IDSidechain: 1,
		param.IDPower:     1,
		param.IDCharacter: 2,
		param.IDRouting:   2,
	})

	checks := []struct {
		name      string
		got, want float64
	}{
		{"InputGain", cp.InputGain, math.Pow(10, -6.0/20)},
		{"Ratio", cp.Ratio, 8},
		{"AttackCoeff", cp.AttackCoeff, math.Exp(-1 / (0.010 * testRate))},
		{"ReleaseCoeff", cp.ReleaseCoeff, math.Exp(-1 / (0.300 * testRate))},
		{"Drive", cp.Drive, 12 * 1.8},
		{"Hardness", cp.Hardness, 2.6},
		{"Mix", cp.Mix, 0.25},
		{"SubMix", cp.SubMix, 0.5},
		{"ThresholdDB", cp.ThresholdDB, -18},
	}
	for _, c := range checks {
		if math.Abs(c.got-c.want) > 1e-12 {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}

	if cp.Routing != Combined || !cp.SidechainHPF || !cp.PoweredOn {
		t.Fatalf("routing=%v sidechain=%v power=%v", cp.Routing, cp.SidechainHPF, cp.PoweredOn)
	}
}

func TestResolveFallbacks(t *testing.T) {
	r := NewResolver(nil)
	r.SetSampleRate(testRate)

	cp := r.Resolve(mapSource{
		param.IDInput:     math.NaN(),
		param.IDRelease:   math.Inf(1),
		param.IDMix:       7,
		param.IDOmegaMix:  -3,
		param.IDCharacter: 9,
		param.IDRouting:   -1,
		param.IDPower:     0.4,
	})

	if cp.InputGain != 1 {
		t.Errorf("NaN input: gain %v, want 1", cp.InputGain)
	}

	if want := dynamics.TimeConstantCoeff(0.150, testRate); cp.ReleaseCoeff != want {
		t.Errorf("Inf release: coeff %v, want default %v", cp.ReleaseCoeff, want)
	}

	if cp.Mix != 1 || cp.SubMix != 0 {
		t.Errorf("mix=%v subMix=%v, want clamped 1 and 0", cp.Mix, cp.SubMix)
	}

	if cp.Ratio != 8 || cp.Routing != CompressorOnly {
		t.Errorf("ratio=%v routing=%v", cp.Ratio, cp.Routing)
	}

	if cp.PoweredOn {
		t.Error("pwr 0.4 resolved to on")
	}

	// Missing controls resolve to defaults: edge 0 gives hardness 1.
	if cp.Hardness != 1 || cp.SidechainHPF {
		t.Errorf("hardness=%v sidechain=%v", cp.Hardness, cp.SidechainHPF)
	}
}

func TestResolveCachesReleaseCoefficient(t *testing.T) {
	r := NewResolver(nil)
	r.SetSampleRate(testRate)

	src := mapSource{param.IDRelease: 150}
	first := r.Resolve(src)

	if r.releaseMs != 150 {
		t.Fatalf("cache key = %v, want 150", r.releaseMs)
	}

	r.releaseCoeff = 0.5 // a stale cache would leak this value

	if got := r.Resolve(src).ReleaseCoeff; got != 0.5 {
		t.Fatalf("coefficient recomputed for unchanged release: %v", got)
	}

	src[param.IDRelease] = 400
	if got := r.Resolve(src).ReleaseCoeff; got == 0.5 || got == first.ReleaseCoeff {
		t.Fatalf("coefficient not recomputed after release change: %v", got)
	}

	r.SetSampleRate(96000)

	if got, want := r.Resolve(src).ReleaseCoeff, dynamics.TimeConstantCoeff(0.4, 96000); got != want {
		t.Fatalf("after rate change: %v, want %v", got, want)
	}
}

func TestResolveDoesNotAllocate(t *testing.T) {
	r := NewResolver(nil)
	r.SetSampleRate(testRate)

	store := param.NewStore(param.DefaultLayout())

	allocs := testing.AllocsPerRun(100, func() {
		_ = r.Resolve(store)
	})
	if allocs != 0 {
		t.Fatalf("Resolve allocates %v times", allocs)
	}
}
