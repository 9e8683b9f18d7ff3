package firhw

// Register offsets from the accelerator base address.
const (
	Control Reg = 0x00
	Length  Reg = 0x10
	NTaps   Reg = 0x14
	X       Reg = 0x40
	Y       Reg = 0x44
	Coeff0  Reg = 0x80
)

// Control register flags
const (
	StartBit  uint32 = (1 << 0)
	DoneBit   uint32 = (1 << 1)
	IdleBit   uint32 = (1 << 2)
	XReadyBit uint32 = (1 << 4)
	YReadyBit uint32 = (1 << 5)
)

// Device constants
const (
	Base     = 0x3000_0000
	DiagAddr = 0x2600_000C

	mapSize  = 0x100
	pageSize = 0x1000
)

// Diagnostics markers
const (
	MarkConfigured uint32 = 0xAB42_0000
	MarkStarted    uint32 = 0x00A5_0000
	MarkDone       uint32 = 0x005A_0000
)
