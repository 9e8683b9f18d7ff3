package firhw

import (
	"fmt"

	"github.com/cgxeiji/fir"
)

// Sim is an in-memory model of the accelerator. Once started, each sample
// written to x goes through the filter and becomes visible on y after
// latency further samples. Once length samples were written, every read of y
// moves the next pending output to y. The done bit rises after length
// samples.
type Sim struct {
	control uint32
	length  uint32
	ntaps   uint32
	coeff   [fir.N]uint32
	y       uint32

	conv     *fir.Convolver
	pipe     []uint32
	consumed uint32
	polls    int
	running  bool

	latency   int
	doneDelay int
	stall     bool
}

// SimOption configures a Sim.
type SimOption func(s *Sim) SimOption

// SimLatency sets the number of samples between a write to x and the
// matching output on y. The default is 1.
func SimLatency(n int) SimOption {
	return func(s *Sim) SimOption {
		old := s.latency
		s.latency = n
		return SimLatency(old)
	}
}

// SimDoneDelay delays the done bit by n extra reads of the control register
// once all samples were consumed.
func SimDoneDelay(n int) SimOption {
	return func(s *Sim) SimOption {
		old := s.doneDelay
		s.doneDelay = n
		return SimDoneDelay(old)
	}
}

// SimStall makes the accelerator never raise the done bit.
func SimStall(stall bool) SimOption {
	return func(s *Sim) SimOption {
		old := s.stall
		s.stall = stall
		return SimStall(old)
	}
}

// NewSim returns an idle accelerator model.
func NewSim(opts ...SimOption) *Sim {
	s := &Sim{
		control: IdleBit,
		latency: 1,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Read implements RegisterFile.
func (s *Sim) Read(r Reg) (uint32, error) {
	switch r {
	case Control:
		if s.running && s.consumed >= s.length && !s.stall {
			if s.polls >= s.doneDelay {
				s.finish()
			}
			s.polls++
		}
		return s.control, nil
	case Length:
		return s.length, nil
	case NTaps:
		return s.ntaps, nil
	case X:
		return 0, nil
	case Y:
		v := s.y
		if s.consumed >= s.length && len(s.pipe) > 0 {
			// input exhausted: the pipeline drains one output per read
			s.y = s.pipe[0]
			s.pipe = s.pipe[1:]
		}
		return v, nil
	}
	if i, ok := coeffIndex(r); ok {
		return s.coeff[i], nil
	}
	return 0, fmt.Errorf("firhw: sim: invalid register %v", r)
}

// Write implements RegisterFile.
func (s *Sim) Write(r Reg, v uint32) error {
	switch r {
	case Control:
		if v&StartBit != 0 {
			s.start()
		}
		return nil
	case Length:
		s.length = v
		return nil
	case NTaps:
		s.ntaps = v
		return nil
	case X:
		s.push(v)
		return nil
	case Y:
		return nil
	}
	if i, ok := coeffIndex(r); ok {
		s.coeff[i] = v
		return nil
	}
	return fmt.Errorf("firhw: sim: invalid register %v", r)
}

// Consumed returns the number of samples accepted since the last start.
func (s *Sim) Consumed() uint32 {
	return s.consumed
}

func (s *Sim) start() {
	var taps [fir.N]int32
	for i := 0; i < fir.N && uint32(i) < s.ntaps; i++ {
		taps[i] = int32(s.coeff[i])
	}
	s.conv = fir.NewConvolver(taps)
	s.pipe = s.pipe[:0]
	s.consumed = 0
	s.polls = 0
	s.y = 0
	s.running = true
	s.control = XReadyBit
}

func (s *Sim) push(v uint32) {
	if !s.running || s.consumed >= s.length {
		return
	}
	s.pipe = append(s.pipe, uint32(s.conv.Process(int32(v))))
	if len(s.pipe) > s.latency {
		s.y = s.pipe[0]
		s.pipe = s.pipe[1:]
		s.control |= YReadyBit
	}
	s.consumed++
	if s.consumed >= s.length {
		s.control &^= XReadyBit
	}
}

func (s *Sim) finish() {
	s.running = false
	s.control = DoneBit | IdleBit
}
