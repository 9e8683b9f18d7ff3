package fir

// Convolver is a direct form FIR filter over a ShiftBuffer. All arithmetic is
// done on int32 and wraps around on overflow, as it does on the 32-bit target.
type Convolver struct {
	taps   [N]int32
	buffer ShiftBuffer
}

// NewConvolver returns a convolver with a zeroed buffer.
func NewConvolver(taps [N]int32) *Convolver {
	return &Convolver{
		taps: taps,
	}
}

// Process pushes x into the buffer and returns the filtered sample.
func (c *Convolver) Process(x int32) int32 {
	c.buffer.Push(x)

	var acc int32
	for k := 0; k < N; k++ {
		acc += c.taps[k] * c.buffer.At(k)
	}

	return acc
}

// Compute filters a whole signal and returns one output per input sample.
// The buffer is cleared first, so equal inputs always give equal outputs.
func (c *Convolver) Compute(input []int32) []int32 {
	c.Reset()

	out := make([]int32, len(input))
	for i, x := range input {
		out[i] = c.Process(x)
	}

	return out
}

// Reset clears the shift buffer.
func (c *Convolver) Reset() {
	c.buffer.Reset()
}

// Buffer returns a copy of the current window.
func (c *Convolver) Buffer() [N]int32 {
	return c.buffer.Samples()
}

// Compute runs the fixed taps over the fixed input signal.
func Compute() []int32 {
	in := InputSignal()
	return NewConvolver(Taps()).Compute(in[:])
}
