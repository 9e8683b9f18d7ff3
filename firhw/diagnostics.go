package firhw

import (
	"fmt"
	"log"
	"sync/atomic"

	"periph.io/x/periph/host"
	"periph.io/x/periph/host/pmem"
)

// Diagnostics receives observability markers. Markers have no effect on
// filtering.
type Diagnostics interface {
	Mark(v uint32) error
}

type discard struct{}

func (discard) Mark(uint32) error { return nil }

// Discard drops every marker.
var Discard Diagnostics = discard{}

// Markers records markers in memory.
type Markers struct {
	Values []uint32
}

// Mark implements Diagnostics.
func (m *Markers) Mark(v uint32) error {
	m.Values = append(m.Values, v)
	return nil
}

type logDiagnostics struct {
	msg *log.Logger
}

// LogDiagnostics prints each marker to msg.
func LogDiagnostics(msg *log.Logger) Diagnostics {
	return &logDiagnostics{msg: msg}
}

func (l *logDiagnostics) Mark(v uint32) error {
	l.msg.Printf("marker 0x%08x", v)
	return nil
}

// Word is a single physical 32-bit word used as a marker output, typically a
// GPIO data register watched by a test bench.
type Word struct {
	view *pmem.View
	word *uint32
}

// OpenWord maps the page holding addr. If addr is 0, the default diagnostics
// address (0x2600000C) is used.
func OpenWord(addr uint64) (*Word, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("firhw: could not initialize host: %w", err)
	}

	if addr == 0 {
		addr = DiagAddr
	}
	if addr%4 != 0 {
		return nil, fmt.Errorf("firhw: diagnostics address %#x is not word aligned", addr)
	}

	page := addr &^ (pageSize - 1)
	view, err := pmem.Map(page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("firhw: could not map diagnostics word at %#x: %w", addr, err)
	}

	return &Word{
		view: view,
		word: &view.Uint32()[(addr-page)/4],
	}, nil
}

// Mark implements Diagnostics.
func (w *Word) Mark(v uint32) error {
	atomic.StoreUint32(w.word, v)
	return nil
}

// Close unmaps the word.
func (w *Word) Close() error {
	if w.view == nil {
		return nil
	}
	if err := w.view.Close(); err != nil {
		return fmt.Errorf("firhw: could not unmap diagnostics word: %w", err)
	}
	w.view = nil
	return nil
}
