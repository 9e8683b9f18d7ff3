package firhw

import (
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/cgxeiji/fir"
)

var (
	// ErrState is returned when a driver step is called out of order (e.g.
	// streaming samples before the accelerator was started).
	ErrState = errors.New("firhw: invalid driver state")
	// ErrNotResponding is returned by bounded wait policies when the
	// accelerator never raises the done bit.
	ErrNotResponding = errors.New("firhw: accelerator not responding")
)

// State is the step of the accelerator handshake the driver is in.
type State uint8

// Driver states
const (
	Idle State = iota
	Configured
	Running
	Done
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Configured:
		return "configured"
	case Running:
		return "running"
	case Done:
		return "done"
	}
	return fmt.Sprintf("State(%d)", uint8(s))
}

// Phase describes one run of the accelerator. Samples offset+0 ..
// offset+length-1 are streamed. A primed phase writes its first sample
// without reading y, and reads y once more after the last sample.
type Phase struct {
	Offset uint32
	Prime  bool
}

// DefaultPhases are the three runs used to exercise the accelerator pipeline.
var DefaultPhases = []Phase{
	{Offset: 0, Prime: true},
	{Offset: 3},
	{Offset: 5},
}

// PhaseResult holds every value read from y during a phase, in read order.
type PhaseResult struct {
	Offset  uint32
	Outputs []int32
}

// Driver runs the accelerator handshake on a RegisterFile.
type Driver struct {
	rf     RegisterFile
	diag   Diagnostics
	wait   WaitPolicy
	msg    *log.Logger
	phases []Phase

	taps   [fir.N]int32
	length uint32
	state  State
}

// New returns a driver for the accelerator behind rf. By default, it uses the
// fixed filter taps, streams 64 samples per phase, runs DefaultPhases and
// spins on the done bit.
func New(rf RegisterFile, opts ...Option) *Driver {
	d := &Driver{
		rf:     rf,
		diag:   Discard,
		wait:   Spin(),
		msg:    log.New(io.Discard, "", 0),
		phases: DefaultPhases,
		taps:   fir.Taps(),
		length: fir.DataLength,
	}
	d.Options(opts...)

	return d
}

// State returns the current handshake step.
func (d *Driver) State() State {
	return d.state
}

// Status reads and decodes the control register.
func (d *Driver) Status() (Status, error) {
	v, err := d.rf.Read(Control)
	if err != nil {
		return 0, fmt.Errorf("firhw: could not read status: %w", err)
	}
	return Status(v), nil
}

// Configure writes the run length, the tap count and every coefficient, in
// index order.
func (d *Driver) Configure() error {
	if d.state != Idle && d.state != Done {
		return fmt.Errorf("firhw: could not configure while %v: %w", d.state, ErrState)
	}

	if err := d.rf.Write(Length, d.length); err != nil {
		return fmt.Errorf("firhw: could not configure length: %w", err)
	}
	if err := d.rf.Write(NTaps, fir.N); err != nil {
		return fmt.Errorf("firhw: could not configure tap count: %w", err)
	}
	for i, c := range d.taps {
		if err := d.rf.Write(CoeffReg(i), uint32(c)); err != nil {
			return fmt.Errorf("firhw: could not configure coefficient %d: %w", i, err)
		}
	}
	d.state = Configured
	d.msg.Printf("configured %d taps, length %d", fir.N, d.length)

	if err := d.diag.Mark(MarkConfigured); err != nil {
		return fmt.Errorf("firhw: could not write marker: %w", err)
	}

	return nil
}

// Start triggers a run.
func (d *Driver) Start() error {
	if d.state != Configured && d.state != Done {
		return fmt.Errorf("firhw: could not start while %v: %w", d.state, ErrState)
	}

	if err := d.rf.Write(Control, StartBit); err != nil {
		return fmt.Errorf("firhw: could not start: %w", err)
	}
	d.state = Running

	if err := d.diag.Mark(MarkStarted); err != nil {
		return fmt.Errorf("firhw: could not write marker: %w", err)
	}

	return nil
}

// Stream writes the samples of phase p to x. Each write is immediately
// followed by a read of y, which returns an earlier sample's output because
// of the accelerator pipeline.
func (d *Driver) Stream(p Phase) ([]int32, error) {
	if d.state != Running {
		return nil, fmt.Errorf("firhw: could not stream while %v: %w", d.state, ErrState)
	}

	out := make([]int32, 0, d.length)
	first := uint32(0)
	if p.Prime {
		if err := d.rf.Write(X, p.Offset); err != nil {
			return nil, fmt.Errorf("firhw: could not write sample %d: %w", p.Offset, err)
		}
		first = 1
	}

	for i := first; i < d.length; i++ {
		x := i + p.Offset
		if err := d.rf.Write(X, x); err != nil {
			return nil, fmt.Errorf("firhw: could not write sample %d: %w", x, err)
		}
		y, err := d.rf.Read(Y)
		if err != nil {
			return nil, fmt.Errorf("firhw: could not read output for sample %d: %w", x, err)
		}
		out = append(out, int32(y))
	}

	if p.Prime {
		y, err := d.rf.Read(Y)
		if err != nil {
			return nil, fmt.Errorf("firhw: could not read last output: %w", err)
		}
		out = append(out, int32(y))
	}

	return out, nil
}

// AwaitDone polls the done bit with the driver's wait policy.
func (d *Driver) AwaitDone() error {
	if d.state != Running {
		return fmt.Errorf("firhw: could not wait for done while %v: %w", d.state, ErrState)
	}

	err := d.wait(func() (bool, error) {
		v, err := d.rf.Read(Control)
		if err != nil {
			return false, err
		}
		return v&DoneBit != 0, nil
	})
	if err != nil {
		return fmt.Errorf("firhw: could not wait for done: %w", err)
	}
	d.state = Done

	if err := d.diag.Mark(MarkDone); err != nil {
		return fmt.Errorf("firhw: could not write marker: %w", err)
	}

	return nil
}

// RunPhase starts the accelerator, streams phase p and waits for completion.
func (d *Driver) RunPhase(p Phase) (PhaseResult, error) {
	if err := d.Start(); err != nil {
		return PhaseResult{}, err
	}

	out, err := d.Stream(p)
	if err != nil {
		return PhaseResult{}, err
	}

	if err := d.AwaitDone(); err != nil {
		return PhaseResult{}, err
	}
	d.msg.Printf("phase offset=%d: %d outputs", p.Offset, len(out))

	return PhaseResult{Offset: p.Offset, Outputs: out}, nil
}

// Run configures the accelerator once, then runs every phase in order.
func (d *Driver) Run() ([]PhaseResult, error) {
	if err := d.Configure(); err != nil {
		return nil, err
	}

	res := make([]PhaseResult, 0, len(d.phases))
	for i, p := range d.phases {
		r, err := d.RunPhase(p)
		if err != nil {
			return res, fmt.Errorf("firhw: phase %d: %w", i+1, err)
		}
		res = append(res, r)
	}

	return res, nil
}
