package omega

import (
	"math"
	"testing"
)

func TestTelemetryPublishClamps(t *testing.T) {
	var tel Telemetry

	for _, tt := range []struct{ in, want float64 }{
		{-3, 0},
		{math.NaN(), 0},
		{12.5, 12.5},
		{45, MaxGainReductionDB},
		{math.Inf(1), MaxGainReductionDB},
	} {
		tel.publish(tt.in)

		if got := tel.GainReductionDB(); got != tt.want {
			t.Fatalf("publish(%v): %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestMeterBallistics(t *testing.T) {
	var tel Telemetry

	m := NewMeter(&tel)
	tel.publish(10)

	// One frame at 30 Hz with a 22 ms attack.
	want := 10 * (1 - math.Exp(-(1.0/30)/0.022))
	if got := m.Tick(30); math.Abs(got-want) > 1e-12 {
		t.Fatalf("attack tick = %v, want %v", got, want)
	}

	for range 60 {
		m.Tick(30)
	}

	if math.Abs(m.Value()-10) > 1e-6 {
		t.Fatalf("meter did not settle: %v", m.Value())
	}

	tel.publish(0)

	wantRelease := 10 * math.Exp(-(1.0/30)/0.140)
	if got := m.Tick(30); math.Abs(got-wantRelease) > 1e-6 {
		t.Fatalf("release tick = %v, want %v", got, wantRelease)
	}
}

func TestMeterSnapsAtLowRates(t *testing.T) {
	var tel Telemetry

	m := NewMeter(&tel)
	tel.publish(7)

	if got := m.Tick(1); got != 7 {
		t.Fatalf("Tick(1) = %v, want 7", got)
	}

	m.Reset()

	if m.Value() != 0 {
		t.Fatalf("Value after Reset = %v", m.Value())
	}
}

func TestMeterSetBallisticsFloors(t *testing.T) {
	var tel Telemetry

	m := NewMeter(&tel)
	m.SetBallistics(0, math.NaN())

	if m.attackMs != minMeterMs || m.releaseMs != minMeterMs {
		t.Fatalf("attack=%v release=%v", m.attackMs, m.releaseMs)
	}

	tel.publish(5)

	want := 5 * (1 - math.Exp(-(1.0/30)/minMeterTau))
	if got := m.Tick(30); math.Abs(got-want) > 1e-12 {
		t.Fatalf("tick = %v, want %v", got, want)
	}
}
