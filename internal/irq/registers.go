package irq

// Interrupt IDs used by the board. The timer is a private peripheral
// interrupt, the other two are shared peripheral interrupts.
const (
	IDTimer    = 29
	IDButton   = 73
	IDKeyboard = 79

	// NumLines is the number of interrupt IDs the distributor models
	NumLines = 256

	// CPU0 is the target mask selecting the only core
	CPU0 uint8 = 0x01

	// SpuriousID is read from ICCIAR when nothing is pending
	SpuriousID = 1023
)

// Register offsets as programmed by the reference firmware, relative to
// the CPU interface and distributor bases.
const (
	OffsetICCICR  = 0x00
	OffsetICCPMR  = 0x04
	OffsetICCIAR  = 0x0C
	OffsetICCEOIR = 0x10

	OffsetICDDCR  = 0x000
	OffsetICDISER = 0x100
	OffsetICDIPTR = 0x800
)

// Registers is the programmable state of the CPU interface and distributor
type Registers struct {
	ICCPMR  uint32 // priority mask, sources at or above it are masked
	ICCICR  uint32 // CPU interface control, bit 0 enables signalling
	ICCIAR  uint32 // last acknowledged interrupt
	ICCEOIR uint32 // last end-of-interrupt written
	ICDDCR  uint32 // distributor control, bit 0 enables forwarding

	ICDISER [NumLines / 32]uint32 // set-enable bits, one per ID
	ICDIPTR [NumLines]uint8       // processor target mask, one byte per ID
	ICDIPR  [NumLines]uint8       // priority, lower is more urgent
}

// ISERLocation returns the byte offset of the set-enable word holding id
// and the bit to set within that word.
func ISERLocation(id int) (offset uint32, mask uint32) {
	offset = OffsetICDISER + uint32((id>>3)&^3)
	mask = 1 << uint(id&31)
	return offset, mask
}

// IPTRLocation returns the byte offset of the processor target byte for id
func IPTRLocation(id int) uint32 {
	return OffsetICDIPTR + uint32(id&^3) + uint32(id&3)
}

func (r *Registers) enable(id int) {
	offset, mask := ISERLocation(id)
	r.ICDISER[(offset-OffsetICDISER)/4] |= mask
}

func (r *Registers) enabled(id int) bool {
	offset, mask := ISERLocation(id)
	return r.ICDISER[(offset-OffsetICDISER)/4]&mask != 0
}

func (r *Registers) target(id int, cpus uint8) {
	r.ICDIPTR[IPTRLocation(id)-OffsetICDIPTR] = cpus
}

func (r *Registers) targets(id int) uint8 {
	return r.ICDIPTR[IPTRLocation(id)-OffsetICDIPTR]
}

// signalling reports whether both the CPU interface and the distributor are on
func (r *Registers) signalling() bool {
	return r.ICCICR&1 != 0 && r.ICDDCR&1 != 0
}
