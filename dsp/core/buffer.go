package core

// EnsureLen returns a slice with the requested length, reusing buf capacity if possible.
func EnsureLen(buf []float64, n int) []float64 {
	if n <= 0 {
		return buf[:0]
	}
	if cap(buf) >= n {
		return buf[:n]
	}
	return make([]float64, n)
}

// EnsureChannels returns a planar block with the requested channel count and
// length, reusing the capacity of block and its channel slices.
func EnsureChannels(block [][]float64, channels, n int) [][]float64 {
	if channels <= 0 {
		return block[:0]
	}
	if cap(block) >= channels {
		block = block[:channels]
	} else {
		grown := make([][]float64, channels)
		copy(grown, block)
		block = grown
	}
	for ch := range block {
		block[ch] = EnsureLen(block[ch], n)
	}
	return block
}
