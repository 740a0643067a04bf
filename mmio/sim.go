package mmio

// Op identifies the kind of a recorded register access
type Op uint8

const (
	OpRead Op = iota
	OpWrite
)

func (o Op) String() string {
	if o == OpWrite {
		return "write"
	}
	return "read"
}

// Access is one register access observed by a Sim.
type Access struct {
	Op    Op
	Addr  uintptr
	Value uint32 // value written, or value returned to the reader
}

// Sim is an in-memory Bus for host builds and tests.
//
// A write stores the value as the register's last-written value. A read
// returns the next injected value for that address if one is queued,
// otherwise the last-written value (zero if never written). Every access is
// appended to the trace in program order.
type Sim struct {
	regs    map[uintptr]uint32
	reads   map[uintptr][]uint32
	onWrite map[uintptr]func(v uint32)
	trace   []Access
}

// NewSim returns an empty simulated register store.
func NewSim() *Sim {
	return &Sim{
		regs:    make(map[uintptr]uint32),
		reads:   make(map[uintptr][]uint32),
		onWrite: make(map[uintptr]func(uint32)),
	}
}

// Load32 reads the 32-bit register at addr
func (s *Sim) Load32(addr uintptr) uint32 {
	v := s.regs[addr]
	if q := s.reads[addr]; len(q) > 0 {
		v = q[0]
		s.reads[addr] = q[1:]
	}
	s.trace = append(s.trace, Access{Op: OpRead, Addr: addr, Value: v})
	return v
}

// Store32 writes v to the 32-bit register at addr
func (s *Sim) Store32(addr uintptr, v uint32) {
	s.regs[addr] = v
	s.trace = append(s.trace, Access{Op: OpWrite, Addr: addr, Value: v})
	if fn := s.onWrite[addr]; fn != nil {
		fn(v)
	}
}

// QueueReads injects values returned, in order, by the next reads of addr.
func (s *Sim) QueueReads(addr uintptr, values ...uint32) {
	s.reads[addr] = append(s.reads[addr], values...)
}

// Pending returns how many injected reads of addr have not been consumed.
func (s *Sim) Pending(addr uintptr) int {
	return len(s.reads[addr])
}

// OnWrite installs fn to run after every write to addr. It can be used to
// model hardware side effects such as a loopback path from TX to RX.
func (s *Sim) OnWrite(addr uintptr, fn func(v uint32)) {
	s.onWrite[addr] = fn
}

// Last returns the last value written to addr.
func (s *Sim) Last(addr uintptr) (uint32, bool) {
	v, ok := s.regs[addr]
	return v, ok
}

// Trace returns every access recorded since creation or the last Reset.
func (s *Sim) Trace() []Access {
	return s.trace
}

// Count returns the number of recorded accesses of kind op at addr.
func (s *Sim) Count(op Op, addr uintptr) int {
	n := 0
	for _, a := range s.trace {
		if a.Op == op && a.Addr == addr {
			n++
		}
	}
	return n
}

// Reset clears register contents, injected reads, hooks and the trace.
func (s *Sim) Reset() {
	s.regs = make(map[uintptr]uint32)
	s.reads = make(map[uintptr][]uint32)
	s.onWrite = make(map[uintptr]func(uint32))
	s.trace = nil
}
