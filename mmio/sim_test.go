package mmio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimQueuedReadsThenLastWritten(t *testing.T) {
	sim := NewSim()
	const addr = 0x100

	assert.Equal(t, uint32(0), sim.Load32(addr), "unwritten register reads zero")

	sim.Store32(addr, 7)
	sim.QueueReads(addr, 1, 2)
	assert.Equal(t, 2, sim.Pending(addr))
	assert.Equal(t, uint32(1), sim.Load32(addr))
	assert.Equal(t, uint32(2), sim.Load32(addr))
	assert.Equal(t, 0, sim.Pending(addr))
	assert.Equal(t, uint32(7), sim.Load32(addr))
}

func TestSimTraceOrder(t *testing.T) {
	sim := NewSim()
	sim.Store32(0x8, 0xAA)
	sim.QueueReads(0xC, 0x42)
	sim.Load32(0xC)

	require.Len(t, sim.Trace(), 2)
	assert.Equal(t, Access{Op: OpWrite, Addr: 0x8, Value: 0xAA}, sim.Trace()[0])
	assert.Equal(t, Access{Op: OpRead, Addr: 0xC, Value: 0x42}, sim.Trace()[1])
	assert.Equal(t, 1, sim.Count(OpWrite, 0x8))
	assert.Equal(t, 0, sim.Count(OpRead, 0x8))
	assert.Equal(t, "write", OpWrite.String())
}

func TestSimOnWriteLoopback(t *testing.T) {
	sim := NewSim()
	sim.OnWrite(0x8, func(v uint32) { sim.QueueReads(0xC, v) })

	sim.Store32(0x8, 0x55)
	assert.Equal(t, uint32(0x55), sim.Load32(0xC))
}

func TestSimReset(t *testing.T) {
	sim := NewSim()
	sim.Store32(0x8, 1)
	sim.QueueReads(0xC, 9)
	sim.Reset()

	_, ok := sim.Last(0x8)
	assert.False(t, ok)
	assert.Equal(t, 0, sim.Pending(0xC))
	assert.Empty(t, sim.Trace())
}
