package firhw

import (
	"encoding/binary"
	"fmt"

	"periph.io/x/periph/conn"
	"periph.io/x/periph/conn/i2c"
	"periph.io/x/periph/conn/i2c/i2creg"
	"periph.io/x/periph/conn/mmr"
	"periph.io/x/periph/host"
)

// BridgeAddr is the default I²C address of the register bridge.
const BridgeAddr = 0x30

// Bus is a RegisterFile reached through a register bridge: each access is a
// one byte register offset followed by a little-endian 32-bit word.
type Bus struct {
	dev mmr.Dev8
	bus i2c.BusCloser
}

// NewBus returns a register file talking over c.
func NewBus(c conn.Conn) *Bus {
	return &Bus{
		dev: mmr.Dev8{
			Conn:  c,
			Order: binary.LittleEndian,
		},
	}
}

// OpenI2C opens the register bridge on an I²C bus.
//
// Argument "busName" can be used to specify the exact bus to use ("/dev/i2c-2", "I2C2", "2").
// Argument "addr" can be used to specify an alternative address if the default (0x30) is not used.
// If "busName" argument is specified as an empty string "" the first available bus will be used.
func OpenI2C(busName string, addr uint16) (*Bus, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("firhw: could not initialize host: %w", err)
	}

	bus, err := i2creg.Open(busName)
	if err != nil {
		return nil, fmt.Errorf("firhw: could not open I2C bus: %w", err)
	}

	if addr == 0 {
		addr = BridgeAddr
	}

	b := NewBus(&i2c.Dev{
		Addr: addr,
		Bus:  bus,
	})
	b.bus = bus

	return b, nil
}

// Read reads a register.
func (b *Bus) Read(r Reg) (uint32, error) {
	v, err := b.dev.ReadUint32(uint8(r))
	if err != nil {
		return 0, fmt.Errorf("firhw: could not read %v: %w", r, err)
	}
	return v, nil
}

// Write writes a register.
func (b *Bus) Write(r Reg, v uint32) error {
	if err := b.dev.WriteUint32(uint8(r), v); err != nil {
		return fmt.Errorf("firhw: could not write %v: %w", r, err)
	}
	return nil
}

// Close releases the bus if it was opened by OpenI2C.
func (b *Bus) Close() error {
	if b.bus == nil {
		return nil
	}
	return b.bus.Close()
}
