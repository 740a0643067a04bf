// Package config holds the board constants for the Communication
// Accelerator self-test: peripheral base addresses, window size and the
// settle delays used between a transmit and the matching receive.
//
// The constants in this file are all bare-metal firmware needs. BoardConfig
// and its JSON loading are only built for hosted targets.
package config

import "time"

// Default board layout (AXI peripherals in the Zynq PL address space)
const (
	DefaultUARTBase  = 0x43C00000
	DefaultSPIBase   = 0x43C10000
	DefaultBlockSize = 0x1000

	// Busy-wait iteration counts tuned for the PS clock on bare metal
	DefaultUARTSettleSpins = 1000000
	DefaultSPISettleSpins  = 500000

	// Wall-clock equivalents used when running under an OS
	DefaultUARTSettle = 10 * time.Millisecond
	DefaultSPISettle  = 5 * time.Millisecond
)

// minBlockSize covers the highest register offset used (0x0C) plus its width
const minBlockSize = 0x10
