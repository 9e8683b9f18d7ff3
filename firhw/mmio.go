package firhw

import (
	"fmt"
	"sync/atomic"

	"periph.io/x/periph/host"
	"periph.io/x/periph/host/pmem"
)

// MMIO is a RegisterFile backed by the accelerator's physical registers.
// Accesses go through sync/atomic so the compiler never elides, merges or
// reorders them.
type MMIO struct {
	view  *pmem.View
	words []uint32
}

// OpenMMIO maps the register window at base. If base is 0, the default
// address (0x30000000) is used. Mapping /dev/mem usually requires root.
func OpenMMIO(base uint64) (*MMIO, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("firhw: could not initialize host: %w", err)
	}

	if base == 0 {
		base = Base
	}
	if base%pageSize != 0 {
		return nil, fmt.Errorf("firhw: base %#x is not page aligned", base)
	}

	view, err := pmem.Map(base, pageSize)
	if err != nil {
		return nil, fmt.Errorf("firhw: could not map registers at %#x: %w", base, err)
	}

	return &MMIO{
		view:  view,
		words: view.Uint32()[:mapSize/4],
	}, nil
}

// Read loads a register.
func (m *MMIO) Read(r Reg) (uint32, error) {
	i, err := m.index(r)
	if err != nil {
		return 0, err
	}
	return atomic.LoadUint32(&m.words[i]), nil
}

// Write stores a register.
func (m *MMIO) Write(r Reg, v uint32) error {
	i, err := m.index(r)
	if err != nil {
		return err
	}
	atomic.StoreUint32(&m.words[i], v)
	return nil
}

func (m *MMIO) index(r Reg) (int, error) {
	if r%4 != 0 || int(r)/4 >= len(m.words) {
		return 0, fmt.Errorf("firhw: invalid register %v", r)
	}
	return int(r) / 4, nil
}

// Close unmaps the registers.
func (m *MMIO) Close() error {
	if m.view == nil {
		return nil
	}
	if err := m.view.Close(); err != nil {
		return fmt.Errorf("firhw: could not unmap registers: %w", err)
	}
	m.view = nil
	return nil
}
