//go:build tinygo

package mmio

import (
	"runtime/volatile"
	"unsafe"
)

// Volatile is the bare-metal Bus. Loads and stores go straight to the
// physical address through runtime/volatile so the compiler cannot elide,
// merge or reorder them.
type Volatile struct{}

// Load32 reads the 32-bit register at addr
func (Volatile) Load32(addr uintptr) uint32 {
	return volatile.LoadUint32((*uint32)(unsafe.Pointer(addr)))
}

// Store32 writes v to the 32-bit register at addr
func (Volatile) Store32(addr uintptr, v uint32) {
	volatile.StoreUint32((*uint32)(unsafe.Pointer(addr)), v)
}
