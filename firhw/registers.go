package firhw

import (
	"fmt"
	"strings"

	"github.com/cgxeiji/fir"
)

// Reg is the byte offset of a 32-bit accelerator register.
type Reg uint8

// CoeffReg returns the register holding coefficient i.
func CoeffReg(i int) Reg {
	return Coeff0 + Reg(4*i)
}

func (r Reg) String() string {
	switch r {
	case Control:
		return "control"
	case Length:
		return "length"
	case NTaps:
		return "ntaps"
	case X:
		return "x"
	case Y:
		return "y"
	}
	if i, ok := coeffIndex(r); ok {
		return fmt.Sprintf("coeff%d", i)
	}
	return fmt.Sprintf("reg(%#02x)", uint8(r))
}

func coeffIndex(r Reg) (int, bool) {
	if r < Coeff0 || r >= CoeffReg(fir.N) || (r-Coeff0)%4 != 0 {
		return 0, false
	}
	return int(r-Coeff0) / 4, true
}

// RegisterFile is the register surface of the accelerator. Every call is a
// side effect on the device: implementations must issue each access exactly
// once and in call order.
type RegisterFile interface {
	Read(r Reg) (uint32, error)
	Write(r Reg, v uint32) error
}

// Status is the decoded content of the control register.
type Status uint32

// Done reports whether the accelerator finished the current run.
func (s Status) Done() bool { return uint32(s)&DoneBit != 0 }

// Idle reports whether the accelerator is waiting for a start.
func (s Status) Idle() bool { return uint32(s)&IdleBit != 0 }

// XReady reports whether the accelerator accepts a new sample.
func (s Status) XReady() bool { return uint32(s)&XReadyBit != 0 }

// YReady reports whether a filtered sample is available.
func (s Status) YReady() bool { return uint32(s)&YReadyBit != 0 }

func (s Status) String() string {
	var flags []string
	for _, f := range []struct {
		bit  uint32
		name string
	}{
		{StartBit, "start"},
		{DoneBit, "done"},
		{IdleBit, "idle"},
		{XReadyBit, "x-ready"},
		{YReadyBit, "y-ready"},
	} {
		if uint32(s)&f.bit != 0 {
			flags = append(flags, f.name)
		}
	}
	return fmt.Sprintf("0x%08x[%s]", uint32(s), strings.Join(flags, "|"))
}
