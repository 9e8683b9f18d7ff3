package fir

// Filter constants
const (
	// N is the number of taps of the filter and the capacity of the shift
	// buffer.
	N = 11
	// DataLength is the number of samples streamed to the accelerator on
	// each run.
	DataLength = 64
)

var taps = [N]int32{0, -8, -10, 3, 26, 35, -18, 25, -12, 5, 0}

var inputSignal = [N]int32{3, 2, 4, 6, 5, 9, 8, 11, 10, 1, 7}

// Taps returns a copy of the filter coefficients.
func Taps() [N]int32 { return taps }

// InputSignal returns a copy of the test input vector.
func InputSignal() [N]int32 { return inputSignal }
