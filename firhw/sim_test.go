package firhw

import "testing"

func TestSimIgnoresSamplesWhenIdle(t *testing.T) {
	s := NewSim()
	if err := s.Write(X, 3); err != nil {
		t.Fatal(err)
	}
	if got := s.Consumed(); got != 0 {
		t.Fatalf("sample consumed while idle: %d", got)
	}
}

func TestSimLatency(t *testing.T) {
	s := NewSim(SimLatency(2))
	for _, w := range []struct {
		reg Reg
		v   uint32
	}{
		{NTaps, 11},
		{Length, 4},
		{CoeffReg(0), 1},
		{Control, StartBit},
	} {
		if err := s.Write(w.reg, w.v); err != nil {
			t.Fatal(err)
		}
	}

	// identity filter, two samples of latency
	var got []uint32
	for _, x := range []uint32{10, 20, 30, 40} {
		if err := s.Write(X, x); err != nil {
			t.Fatal(err)
		}
		y, err := s.Read(Y)
		if err != nil {
			t.Fatal(err)
		}
		got = append(got, y)
	}
	want := []uint32{0, 0, 10, 20}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sample %d: got=%d, want=%d (all=%v)", i, got[i], want[i], got)
		}
	}

	// input exhausted: pending outputs drain one per read
	for _, want := range []uint32{30, 40, 40} {
		y, err := s.Read(Y)
		if err != nil {
			t.Fatal(err)
		}
		if y != want {
			t.Fatalf("invalid drained output: got=%d, want=%d", y, want)
		}
	}

	st, err := s.Read(Control)
	if err != nil {
		t.Fatal(err)
	}
	if !Status(st).Done() {
		t.Fatalf("done not set after %d samples: %v", s.Consumed(), Status(st))
	}
}

func TestSimInvalidRegister(t *testing.T) {
	s := NewSim()
	if _, err := s.Read(0x04); err == nil {
		t.Fatalf("expected an error")
	}
	if err := s.Write(0x04, 0); err == nil {
		t.Fatalf("expected an error")
	}
}
