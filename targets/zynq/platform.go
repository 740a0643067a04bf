//go:build tinygo

package main

import "commaccel/mmio"

// Zynq-7000 PS UART1 (Cadence UART), the board console
const (
	psUART1Base = 0xE0001000
	psUARTSize  = 0x1000

	psUARTRegStatus = 0x2C // Channel_sts_reg0
	psUARTRegFIFO   = 0x30 // TX_RX_FIFO0

	psUARTStatusTEmpty = 1 << 3
	psUARTStatusTFull  = 1 << 4
)

// psUART writes console text to the PS UART by polling the TX FIFO.
// Clocks, pins and baud rate are left as the first-stage boot loader set them.
type psUART struct {
	regs mmio.Block
}

func newPSUART(regs mmio.Block) *psUART {
	return &psUART{regs: regs}
}

func (u *psUART) WriteString(s string) {
	for i := 0; i < len(s); i++ {
		for u.regs.ReadRegister(psUARTRegStatus)&psUARTStatusTFull != 0 {
		}
		u.regs.WriteRegister(psUARTRegFIFO, uint32(s[i]))
	}
}

// Drain blocks until the TX FIFO has shifted out every byte
func (u *psUART) Drain() {
	for u.regs.ReadRegister(psUARTRegStatus)&psUARTStatusTEmpty == 0 {
	}
}

// zynqPlatform is the bare-metal board support. The boot loader has already
// configured the PL and the console, so Init has nothing left to do. Cleanup
// holds main until the last verdict has left the UART.
type zynqPlatform struct {
	console *psUART
}

func (p *zynqPlatform) Init() {}

func (p *zynqPlatform) Cleanup() {
	p.console.Drain()
}
