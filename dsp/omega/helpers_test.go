package omega

import (
	"testing"

	"github.com/cwbudde/omega76/dsp/param"
)

const testRate = 48000.0

type mapSource map[string]float64

func (m mapSource) Load(id string) (float64, bool) {
	v, ok := m[id]
	return v, ok
}

func newTestEngine(t testing.TB, assignments ...string) (*Engine, *param.Store) {
	t.Helper()

	store := param.NewStore(param.DefaultLayout())
	if err := store.Apply(assignments...); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	e := New(store)
	if err := e.Prepare(testRate); err != nil {
		t.Fatalf("Prepare: %v", err)
	}

	return e, store
}

// processBlocks feeds l and r through e in blocks of size n.
func processBlocks(e *Engine, l, r []float64, n int) {
	for start := 0; start < len(l); start += n {
		end := min(start+n, len(l))
		e.Process([][]float64{l[start:end], r[start:end]})
	}
}
