package firhw

import "fmt"

// Op is the kind of a register access.
type Op uint8

// Access kinds
const (
	OpRead Op = iota
	OpWrite
)

func (op Op) String() string {
	if op == OpWrite {
		return "W"
	}
	return "R"
}

// Access is one recorded register access.
type Access struct {
	Op    Op
	Reg   Reg
	Value uint32
}

func (a Access) String() string {
	return fmt.Sprintf("%v %v=%#x", a.Op, a.Reg, a.Value)
}

// Recorder wraps a RegisterFile and keeps a log of every access that went
// through, in order.
type Recorder struct {
	rf  RegisterFile
	Log []Access
}

// NewRecorder returns a recorder in front of rf.
func NewRecorder(rf RegisterFile) *Recorder {
	return &Recorder{rf: rf}
}

// Read implements RegisterFile.
func (rec *Recorder) Read(r Reg) (uint32, error) {
	v, err := rec.rf.Read(r)
	if err != nil {
		return 0, err
	}
	rec.Log = append(rec.Log, Access{Op: OpRead, Reg: r, Value: v})
	return v, nil
}

// Write implements RegisterFile.
func (rec *Recorder) Write(r Reg, v uint32) error {
	if err := rec.rf.Write(r, v); err != nil {
		return err
	}
	rec.Log = append(rec.Log, Access{Op: OpWrite, Reg: r, Value: v})
	return nil
}
