// Package mmio provides peripheral-scoped access to memory-mapped registers.
//
// A Bus performs raw 32-bit loads and stores at absolute addresses. A Block
// narrows a Bus to one peripheral's address window so that code driving the
// UART can never touch the SPI controller by accident.
package mmio

import "strconv"

// RegisterWidth is the width in bytes of every register access.
const RegisterWidth = 4

// Bus is the raw register access capability supplied by the platform.
// Every call must reach the hardware exactly once and in program order.
type Bus interface {
	// Load32 reads the 32-bit register at addr
	Load32(addr uintptr) uint32

	// Store32 writes v to the 32-bit register at addr
	Store32(addr uintptr, v uint32)
}

// Block is a window of registers belonging to a single peripheral.
type Block struct {
	bus  Bus
	base uintptr
	size uintptr
}

// NewBlock scopes bus to the window [base, base+size).
// It panics if bus is nil, base is misaligned, size cannot hold a register
// or the window runs past the end of the address space.
func NewBlock(bus Bus, base, size uintptr) Block {
	if bus == nil {
		panic("mmio: nil bus")
	}
	if base%RegisterWidth != 0 {
		panic("mmio: misaligned block base 0x" + hex(base))
	}
	if size < RegisterWidth {
		panic("mmio: block size 0x" + hex(size) + " too small")
	}
	if base+(size-1) < base {
		panic("mmio: block at 0x" + hex(base) + " wraps the address space")
	}
	return Block{bus: bus, base: base, size: size}
}

// Base returns the absolute address of the first register in the block.
func (b Block) Base() uintptr {
	return b.base
}

// Size returns the length of the block window in bytes.
func (b Block) Size() uintptr {
	return b.size
}

// ReadRegister reads the register at offset from the block base.
func (b Block) ReadRegister(offset uintptr) uint32 {
	return b.bus.Load32(b.addr(offset))
}

// WriteRegister writes v to the register at offset from the block base.
func (b Block) WriteRegister(offset uintptr, v uint32) {
	b.bus.Store32(b.addr(offset), v)
}

// Contains reports whether addr falls inside the block window.
func (b Block) Contains(addr uintptr) bool {
	return addr >= b.base && addr-b.base < b.size
}

// Overlaps reports whether two blocks share any address.
func (b Block) Overlaps(other Block) bool {
	return b.base <= other.last() && other.base <= b.last()
}

// last is the final byte address of the window. Unlike base+size it cannot
// wrap for a window that ends at the top of the address space.
func (b Block) last() uintptr {
	return b.base + (b.size - 1)
}

func (b Block) addr(offset uintptr) uintptr {
	if offset%RegisterWidth != 0 {
		panic("mmio: misaligned register offset 0x" + hex(offset))
	}
	if offset > b.size-RegisterWidth {
		panic("mmio: register offset 0x" + hex(offset) + " outside block at 0x" + hex(b.base))
	}
	return b.base + offset
}

func hex(v uintptr) string {
	return strconv.FormatUint(uint64(v), 16)
}
