package param

import (
	"math"
	"sync"
	"testing"
)

func TestStoreDefaults(t *testing.T) {
	s := NewStore(DefaultLayout())

	v, ok := s.Load(IDRelease)
	if !ok || v != 150 {
		t.Fatalf("Load(release) = %v, %v", v, ok)
	}

	if _, ok := s.Load("missing"); ok {
		t.Fatal("Load of unknown id reported ok")
	}
}

func TestStoreSetClamps(t *testing.T) {
	s := NewStore(DefaultLayout())

	if err := s.Set(IDInput, 40); err != nil {
		t.Fatal(err)
	}

	if v, _ := s.Load(IDInput); v != 10 {
		t.Fatalf("input = %v, want 10", v)
	}

	if err := s.Set(IDInput, math.NaN()); err == nil {
		t.Fatal("expected error for NaN")
	}

	if err := s.Set("missing", 1); err == nil {
		t.Fatal("expected error for unknown id")
	}
}

func TestStoreSetNormalized(t *testing.T) {
	s := NewStore(DefaultLayout())

	if err := s.SetNormalized(IDRouting, 1); err != nil {
		t.Fatal(err)
	}

	if v, _ := s.Load(IDRouting); v != 2 {
		t.Fatalf("routing = %v, want 2", v)
	}

	if err := s.SetNormalized(IDRelease, 0.5); err != nil {
		t.Fatal(err)
	}

	n, _ := s.LoadNormalized(IDRelease)
	if math.Abs(n-0.5) > 1e-12 {
		t.Fatalf("LoadNormalized(release) = %v, want 0.5", n)
	}
}

func TestStoreApply(t *testing.T) {
	s := NewStore(DefaultLayout())

	if err := s.Apply("omega_mode=GRIT", "routing=Ω", " mix = 0.25", "sc_hpf=on"); err != nil {
		t.Fatal(err)
	}

	for id, want := range map[string]float64{IDCharacter: 2, IDRouting: 2, IDMix: 0.25, IDSidechain: 1} {
		if v, _ := s.Load(id); v != want {
			t.Fatalf("%s = %v, want %v", id, v, want)
		}
	}

	if got := s.Format(IDCharacter); got != "GRIT" {
		t.Fatalf("Format = %q", got)
	}

	if err := s.Apply("mix"); err == nil {
		t.Fatal("expected error for missing '='")
	}

	s.Reset()

	if v, _ := s.Load(IDMix); v != 1 {
		t.Fatalf("mix after Reset = %v, want 1", v)
	}
}

func TestStoreConcurrentAccess(t *testing.T) {
	s := NewStore(DefaultLayout())

	var wg sync.WaitGroup

	wg.Add(2)

	go func() {
		defer wg.Done()

		for i := range 10000 {
			_ = s.Set(IDInput, float64(i%70)-60)
		}
	}()

	go func() {
		defer wg.Done()

		for range 10000 {
			v, ok := s.Load(IDInput)
			if !ok || v < -60 || v > 10 || v != math.Trunc(v) {
				t.Errorf("torn or out-of-range read: %v", v)
				return
			}
		}
	}()

	wg.Wait()
}

func TestStoreLoadDoesNotAllocate(t *testing.T) {
	s := NewStore(DefaultLayout())

	allocs := testing.AllocsPerRun(100, func() {
		_, _ = s.Load(IDRelease)
	})
	if allocs != 0 {
		t.Fatalf("Load allocates %v times", allocs)
	}
}
