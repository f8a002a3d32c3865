package core

// LogEntry is one recorded (delivered, non-dropped) broadcast.
type LogEntry struct {
	Seq     uint64
	ID      MessageID
	Payload Payload
	Sender  string
}

const ringLogCapacity = 1000

// Bus is the fan-out broadcast medium: every registered node except the
// sender receives every delivered broadcast, in registration order, with
// an optional fault hook in front and a bounded ring log behind.
type Bus struct {
	registry *Registry
	injector *FaultInjector
	log      []LogEntry
	logStart int // index of the oldest live entry, mod len(log) once full
	nextSeq  uint64
}

// NewBus returns a bus backed by the given registry. The registry is
// expected to be stable for the engine's lifetime (arena-and-index
// ownership — see spec §9).
func NewBus(registry *Registry) *Bus {
	return &Bus{registry: registry}
}

// Register adds a node to the underlying registry.
func (b *Bus) Register(n Node) error {
	return b.registry.Register(n)
}

// SetFaultInjector swaps the active fault injector. Callers must only do
// this between engine ticks; the prior injector (and any messages it had
// queued for DELAY redelivery) is discarded.
func (b *Bus) SetFaultInjector(f *FaultInjector) {
	b.injector = f
}

// FaultInjector returns the currently attached injector, or nil.
func (b *Bus) FaultInjector() *FaultInjector {
	return b.injector
}

// Broadcast delivers (id, payload, sender) to every node but the sender.
// Re-entrant broadcasts — a receiver calling Broadcast from inside its own
// Receive — are legal and deliver immediately, depth-first, before control
// returns to the outer broadcast's remaining deliveries.
func (b *Bus) Broadcast(id MessageID, payload Payload, sender string) {
	if b.injector != nil {
		var drop bool
		id, payload, drop = b.injector.process(id, payload, sender)
		if drop {
			return
		}
	}
	b.deliver(id, payload, sender)
}

func (b *Bus) deliver(id MessageID, payload Payload, sender string) {
	b.appendLog(id, payload, sender)

	// Snapshot registration order before fanning out: a receiver may
	// register new nodes only between ticks (forbidden mid-tick by
	// convention), so iterating a name snapshot here is always safe even
	// under re-entrant broadcasts.
	names := b.registry.Names()
	for _, name := range names {
		if name == sender {
			continue
		}
		node := b.registry.Lookup(name)
		if node == nil {
			continue
		}
		node.Receive(id, payload, sender)
	}
}

func (b *Bus) appendLog(id MessageID, payload Payload, sender string) {
	entry := LogEntry{Seq: b.nextSeq, ID: id, Payload: payload, Sender: sender}
	b.nextSeq++
	if len(b.log) < ringLogCapacity {
		b.log = append(b.log, entry)
		return
	}
	b.log[b.logStart] = entry
	b.logStart = (b.logStart + 1) % ringLogCapacity
}

// Log returns a snapshot of the ring log in emission order.
func (b *Bus) Log() []LogEntry {
	if len(b.log) < ringLogCapacity {
		out := make([]LogEntry, len(b.log))
		copy(out, b.log)
		return out
	}
	out := make([]LogEntry, ringLogCapacity)
	n := copy(out, b.log[b.logStart:])
	copy(out[n:], b.log[:b.logStart])
	return out
}

// redeliverDelayed flushes any message a DELAY fault queued on the prior
// tick, re-broadcasting it under its original sender before normal tick
// activity begins.
func (b *Bus) redeliverDelayed() {
	if b.injector == nil {
		return
	}
	for _, msg := range b.injector.drainDelayed() {
		b.deliver(msg.id, msg.payload, msg.sender)
	}
}
