package core

import "commaccel/mmio"

// UART register map (offsets from the UART block base)
const (
	UARTRegTX = 0x08 // transmit holding register
	UARTRegRX = 0x0C // receive register, data in bits [7:0]
)

// UART loopback parameters
const (
	UARTTestPattern = 0x55
	UARTMaxAttempts = 10
	UARTFlushDepth  = 100 // stale words drained before the first attempt
)

// UART drives the UART register block.
type UART struct {
	regs mmio.Block
}

// NewUART wraps the register block of a UART peripheral.
func NewUART(regs mmio.Block) *UART {
	return &UART{regs: regs}
}

// Transmit writes one byte to the transmit register
func (u *UART) Transmit(b uint8) {
	u.regs.WriteRegister(UARTRegTX, uint32(b))
}

// Receive reads the receive register and returns its low byte
func (u *UART) Receive() uint8 {
	return uint8(u.regs.ReadRegister(UARTRegRX) & 0xFF)
}

// Flush performs n reads of the receive register, discarding the data.
func (u *UART) Flush(n int) {
	for i := 0; i < n; i++ {
		u.regs.ReadRegister(UARTRegRX)
	}
}

// UARTResult is the terminal outcome of the UART loopback check.
type UARTResult struct {
	Passed   bool
	Attempts int   // attempts performed, 1..UARTMaxAttempts
	Last     uint8 // value read on the final attempt
}

// CheckUARTLoopback verifies that a byte written to TX comes back on RX.
//
// The receive FIFO is drained first. Each attempt then transmits the test
// pattern, waits for settle and reads RX; the first match ends the check.
// Individual attempts are not reported, only the final result.
func CheckUARTLoopback(u *UART, settle Delay) UARTResult {
	u.Flush(UARTFlushDepth)

	var res UARTResult
	for attempt := 1; attempt <= UARTMaxAttempts; attempt++ {
		u.Transmit(UARTTestPattern)
		settle.Wait()

		res.Attempts = attempt
		res.Last = u.Receive()
		if res.Last == UARTTestPattern {
			res.Passed = true
			break
		}
	}
	return res
}
