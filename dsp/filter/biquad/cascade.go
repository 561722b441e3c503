package biquad

// Cascade is a series of sections applied to each of a fixed number of
// channels. All channels share coefficients; each has its own state.
// A Cascade is not safe for concurrent use.
type Cascade struct {
	coeffs []Coefficients
	state  [][]State
}

// NewCascade returns a cascade over channels channels with zero state.
// channels below 1 are raised to 1.
func NewCascade(channels int, coeffs []Coefficients) *Cascade {
	channels = max(channels, 1)

	c := &Cascade{
		coeffs: append([]Coefficients(nil), coeffs...),
		state:  make([][]State, channels),
	}

	for ch := range c.state {
		c.state[ch] = make([]State, len(coeffs))
	}

	return c
}

// SetCoefficients replaces the sections. When the section count is
// unchanged every channel keeps its delay lines; otherwise state is
// cleared.
func (c *Cascade) SetCoefficients(coeffs []Coefficients) {
	if len(coeffs) == len(c.coeffs) {
		copy(c.coeffs, coeffs)
		return
	}

	c.coeffs = append(c.coeffs[:0], coeffs...)
	for ch := range c.state {
		c.state[ch] = make([]State, len(coeffs))
	}
}

// ProcessSample filters one sample of channel ch.
func (c *Cascade) ProcessSample(ch int, x float64) float64 {
	st := c.state[ch]
	for i := range c.coeffs {
		x = c.coeffs[i].Step(x, &st[i])
	}

	return x
}

// Reset clears the state of every channel.
func (c *Cascade) Reset() {
	for ch := range c.state {
		clear(c.state[ch])
	}
}

// Channels returns the channel count.
func (c *Cascade) Channels() int { return len(c.state) }

// Sections returns the number of sections.
func (c *Cascade) Sections() int { return len(c.coeffs) }

// Section returns the coefficients of section i.
func (c *Cascade) Section(i int) Coefficients { return c.coeffs[i] }

// State returns the delay line of section i on channel ch.
func (c *Cascade) State(ch, i int) State { return c.state[ch][i] }

// Order returns the filter order, counting first-order sections as one.
func (c *Cascade) Order() int {
	order := 0
	for _, co := range c.coeffs {
		if co.FirstOrder() {
			order++
		} else {
			order += 2
		}
	}

	return order
}
