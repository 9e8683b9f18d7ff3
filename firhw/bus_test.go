package firhw

import (
	"encoding/binary"
	"fmt"
	"reflect"
	"testing"

	"periph.io/x/periph/conn"
	"periph.io/x/periph/conn/i2c"
	"periph.io/x/periph/conn/i2c/i2ctest"
)

func TestBusPlayback(t *testing.T) {
	pb := &i2ctest.Playback{
		Ops: []i2ctest.IO{
			{Addr: BridgeAddr, W: []byte{0x14, 0x0b, 0x00, 0x00, 0x00}},
			{Addr: BridgeAddr, W: []byte{0x84, 0xf8, 0xff, 0xff, 0xff}},
			{Addr: BridgeAddr, W: []byte{0x00}, R: []byte{0x06, 0x00, 0x00, 0x00}},
			{Addr: BridgeAddr, W: []byte{0x44}, R: []byte{0xe8, 0xff, 0xff, 0xff}},
		},
	}
	b := NewBus(&i2c.Dev{Addr: BridgeAddr, Bus: pb})

	if err := b.Write(NTaps, 11); err != nil {
		t.Fatalf("could not write ntaps: %+v", err)
	}
	c := int32(-8)
	if err := b.Write(CoeffReg(1), uint32(c)); err != nil {
		t.Fatalf("could not write coeff1: %+v", err)
	}

	st, err := b.Read(Control)
	if err != nil {
		t.Fatalf("could not read control: %+v", err)
	}
	if got, want := Status(st), Status(DoneBit|IdleBit); got != want {
		t.Fatalf("invalid status: got=%v, want=%v", got, want)
	}

	y, err := b.Read(Y)
	if err != nil {
		t.Fatalf("could not read y: %+v", err)
	}
	if got, want := int32(y), int32(-24); got != want {
		t.Fatalf("invalid output: got=%d, want=%d", got, want)
	}

	if err := pb.Close(); err != nil {
		t.Fatalf("unexpected pending operations: %+v", err)
	}
	if err := b.Close(); err != nil {
		t.Fatalf("could not close bus: %+v", err)
	}
}

// bridge decodes register bridge frames into a RegisterFile.
type bridge struct {
	rf RegisterFile
}

func (br *bridge) String() string      { return "bridge" }
func (br *bridge) Halt() error         { return nil }
func (br *bridge) Duplex() conn.Duplex { return conn.Half }

func (br *bridge) Tx(w, r []byte) error {
	switch {
	case len(w) == 1 && len(r) == 4:
		v, err := br.rf.Read(Reg(w[0]))
		if err != nil {
			return err
		}
		binary.LittleEndian.PutUint32(r, v)
		return nil
	case len(w) == 5 && len(r) == 0:
		return br.rf.Write(Reg(w[0]), binary.LittleEndian.Uint32(w[1:]))
	}
	return fmt.Errorf("bridge: invalid frame w=%x r=%d", w, len(r))
}

func TestBusDriver(t *testing.T) {
	var (
		direct  Markers
		bridged Markers
	)

	want, err := New(NewSim(), WithDiagnostics(&direct)).Run()
	if err != nil {
		t.Fatalf("could not run direct driver: %+v", err)
	}

	got, err := New(NewBus(&bridge{rf: NewSim()}), WithDiagnostics(&bridged)).Run()
	if err != nil {
		t.Fatalf("could not run bridged driver: %+v", err)
	}

	if !reflect.DeepEqual(got, want) {
		t.Fatalf("bridged run differs from direct run")
	}
	if !reflect.DeepEqual(bridged.Values, direct.Values) {
		t.Fatalf("invalid markers:\ngot= %#x\nwant=%#x", bridged.Values, direct.Values)
	}
}

func TestBusError(t *testing.T) {
	b := NewBus(&bridge{rf: NewSim()})
	if _, err := b.Read(0xFC); err == nil {
		t.Fatalf("expected an error reading an unmapped register")
	}
	if err := b.Write(0xFC, 1); err == nil {
		t.Fatalf("expected an error writing an unmapped register")
	}
}
