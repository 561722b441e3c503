package omega

import "github.com/cwbudde/omega76/dsp/effects/saturation"

// mixer routes one sample through the wet path selected for the block and
// blends it with the dry sample.
type mixer struct {
	routing RoutingMode
	mix     float64
	subMix  float64
	sat     *saturation.Saturator
}

// process returns the output for input x under smoothed gain g.
func (m *mixer) process(x, g float64) float64 {
	var wet float64

	switch m.routing {
	case SaturatorOnly:
		wet = m.sat.ProcessSample(x)
	case Combined:
		c := x * g
		wet = c + m.subMix*(m.sat.ProcessSample(c)-c)
	default:
		wet = x * g
	}

	return x*(1-m.mix) + wet*m.mix
}
