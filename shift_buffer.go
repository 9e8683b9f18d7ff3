package fir

// ShiftBuffer holds the last N samples, newest first. The zero value is an
// empty (all zero) buffer ready to use.
type ShiftBuffer struct {
	buf [N]int32
}

// Push shifts every sample one slot towards the end, dropping the oldest one,
// and stores x at index 0.
func (b *ShiftBuffer) Push(x int32) {
	for j := N - 1; j > 0; j-- {
		b.buf[j] = b.buf[j-1]
	}
	b.buf[0] = x
}

// At returns the sample pushed i calls ago.
func (b *ShiftBuffer) At(i int) int32 {
	return b.buf[i]
}

// Len always returns N.
func (b *ShiftBuffer) Len() int {
	return len(b.buf)
}

// Reset zeroes every slot.
func (b *ShiftBuffer) Reset() {
	b.buf = [N]int32{}
}

// Samples returns a copy of the window.
func (b *ShiftBuffer) Samples() [N]int32 {
	return b.buf
}
