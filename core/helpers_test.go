package core

import (
	"strings"
	"testing"

	"commaccel/mmio"
)

const (
	testUARTBase = 0x43C00000
	testSPIBase  = 0x43C10000
	testSize     = 0x1000

	uartTX = testUARTBase + UARTRegTX
	uartRX = testUARTBase + UARTRegRX
	spiCtl = testSPIBase + SPIRegCtrl
	spiDat = testSPIBase + SPIRegData
	spiRX  = testSPIBase + SPIRegRX
)

// countingDelay records how often it was waited on
type countingDelay struct {
	n int
}

func (d *countingDelay) Wait() { d.n++ }

// fakePlatform records the trace length at Init and Cleanup
type fakePlatform struct {
	sim          *mmio.Sim
	initAt       int
	cleanupAt    int
	inits, clean int
}

func (p *fakePlatform) Init() {
	p.inits++
	p.initAt = len(p.sim.Trace())
}

func (p *fakePlatform) Cleanup() {
	p.clean++
	p.cleanupAt = len(p.sim.Trace())
}

// captureConsole redirects console output for the duration of the test
func captureConsole(t *testing.T) *strings.Builder {
	t.Helper()
	var sb strings.Builder
	SetConsoleWriter(func(s string) { sb.WriteString(s) })
	t.Cleanup(func() { SetConsoleWriter(nil) })
	return &sb
}

func queueFlush(sim *mmio.Sim, v uint32) {
	for i := 0; i < UARTFlushDepth; i++ {
		sim.QueueReads(uartRX, v)
	}
}

func newTestBoard(sim *mmio.Sim) (*Board, *countingDelay, *countingDelay) {
	uartDelay, spiDelay := &countingDelay{}, &countingDelay{}
	b := NewBoard(
		mmio.NewBlock(sim, testUARTBase, testSize),
		mmio.NewBlock(sim, testSPIBase, testSize),
		uartDelay, spiDelay,
	)
	return b, uartDelay, spiDelay
}
