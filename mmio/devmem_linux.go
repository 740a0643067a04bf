//go:build linux && !tinygo

package mmio

import (
	"fmt"
	"os"
	"sync/atomic"
	"unsafe"

	"golang.org/x/sys/unix"
)

// DefaultDevMem is the physical memory device on Linux.
const DefaultDevMem = "/dev/mem"

// DevMem is a Bus backed by mappings of a physical memory device.
// Registers are only reachable once their window has been mapped with Map.
type DevMem struct {
	f       *os.File
	windows []window
}

type window struct {
	base uintptr // physical address of mem[0]
	mem  []byte
}

// OpenDevMem opens path (normally /dev/mem) for synchronous register access.
func OpenDevMem(path string) (*DevMem, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_SYNC, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	return &DevMem{f: f}, nil
}

// Map maps the physical window [base, base+size) and returns it as a Block.
func (d *DevMem) Map(base, size uintptr) (Block, error) {
	page := uintptr(os.Getpagesize())
	start := base &^ (page - 1)
	length := (base + size - start + page - 1) &^ (page - 1)

	mem, err := unix.Mmap(int(d.f.Fd()), int64(start), int(length),
		unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return Block{}, fmt.Errorf("failed to map 0x%x+0x%x from %s: %w", base, size, d.f.Name(), err)
	}

	d.windows = append(d.windows, window{base: start, mem: mem})
	return NewBlock(d, base, size), nil
}

// Load32 reads the 32-bit register at addr
func (d *DevMem) Load32(addr uintptr) uint32 {
	return atomic.LoadUint32(d.word(addr))
}

// Store32 writes v to the 32-bit register at addr
func (d *DevMem) Store32(addr uintptr, v uint32) {
	atomic.StoreUint32(d.word(addr), v)
}

// Close unmaps every window and closes the device.
func (d *DevMem) Close() error {
	var firstErr error
	for _, w := range d.windows {
		if err := unix.Munmap(w.mem); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	d.windows = nil
	if err := d.f.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}

func (d *DevMem) word(addr uintptr) *uint32 {
	for _, w := range d.windows {
		if addr >= w.base && addr-w.base+RegisterWidth <= uintptr(len(w.mem)) {
			return (*uint32)(unsafe.Pointer(&w.mem[addr-w.base]))
		}
	}
	panic("mmio: address 0x" + hex(addr) + " is not mapped")
}
