package core

import (
	"testing"

	"commaccel/mmio"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUARTLoopbackMatchOnAttemptK(t *testing.T) {
	for k := 1; k <= UARTMaxAttempts; k++ {
		sim := mmio.NewSim()
		b, delay, _ := newTestBoard(sim)

		// Flushed words must not count, even if they look like a match
		queueFlush(sim, UARTTestPattern)
		for i := 1; i < k; i++ {
			sim.QueueReads(uartRX, uint32(i))
		}
		sim.QueueReads(uartRX, UARTTestPattern)

		res := CheckUARTLoopback(b.UART, delay)

		assert.True(t, res.Passed, "k=%d", k)
		assert.Equal(t, k, res.Attempts, "k=%d", k)
		assert.Equal(t, uint8(UARTTestPattern), res.Last, "k=%d", k)
		assert.Equal(t, k, sim.Count(mmio.OpWrite, uartTX), "transmits, k=%d", k)
		assert.Equal(t, UARTFlushDepth+k, sim.Count(mmio.OpRead, uartRX), "reads, k=%d", k)
		assert.Equal(t, k, delay.n, "waits, k=%d", k)
	}
}

func TestUARTLoopbackNeverMatches(t *testing.T) {
	sim := mmio.NewSim()
	b, delay, _ := newTestBoard(sim)

	queueFlush(sim, 0)
	for i := 1; i <= UARTMaxAttempts; i++ {
		sim.QueueReads(uartRX, uint32(0x10+i))
	}

	res := CheckUARTLoopback(b.UART, delay)

	assert.False(t, res.Passed)
	assert.Equal(t, UARTMaxAttempts, res.Attempts)
	assert.Equal(t, uint8(0x1A), res.Last, "value from the 10th attempt")
	assert.Equal(t, UARTMaxAttempts, sim.Count(mmio.OpWrite, uartTX))
	assert.Equal(t, UARTMaxAttempts, delay.n)
}

func TestUARTFlushPrecedesFirstTransmit(t *testing.T) {
	sim := mmio.NewSim()
	b, delay, _ := newTestBoard(sim)
	sim.QueueReads(uartRX, 0xDEADBEEF) // one injected value, the rest read back zero

	CheckUARTLoopback(b.UART, delay)

	trace := sim.Trace()
	require.True(t, len(trace) > UARTFlushDepth)
	for i, a := range trace[:UARTFlushDepth] {
		require.Equal(t, mmio.Access{Op: mmio.OpRead, Addr: uartRX, Value: a.Value}, a, "access %d", i)
	}
	assert.Equal(t, mmio.Access{Op: mmio.OpWrite, Addr: uartTX, Value: UARTTestPattern}, trace[UARTFlushDepth])
}

func TestUARTReceiveMasksLowByte(t *testing.T) {
	sim := mmio.NewSim()
	b, delay, _ := newTestBoard(sim)
	queueFlush(sim, 0)
	sim.QueueReads(uartRX, 0xFFFFFF00|UARTTestPattern)

	res := CheckUARTLoopback(b.UART, delay)

	assert.True(t, res.Passed)
	assert.Equal(t, 1, res.Attempts)
}

func TestUARTLoopbackWithHardwareModel(t *testing.T) {
	sim := mmio.NewSim()
	b, delay, _ := newTestBoard(sim)

	// RX echoes TX once two transmits have gone through
	sent := 0
	sim.OnWrite(uartTX, func(v uint32) {
		sent++
		if sent >= 2 {
			sim.QueueReads(uartRX, v)
		}
	})

	res := CheckUARTLoopback(b.UART, delay)
	assert.True(t, res.Passed)
	assert.Equal(t, 2, res.Attempts)
}
