package core

import (
	"testing"
	"time"
)

func TestBusBroadcastExcludesSender(t *testing.T) {
	r := NewRegistry()
	b := NewBus(r)

	a := &fakeNode{name: "A"}
	other := &fakeNode{name: "B"}
	if err := b.Register(a); err != nil {
		t.Fatalf("register A: %v", err)
	}
	if err := b.Register(other); err != nil {
		t.Fatalf("register B: %v", err)
	}

	b.Broadcast(WheelSpeed, Float(12.5), "A")

	if len(a.received) != 0 {
		t.Errorf("sender should not receive its own broadcast, got %d", len(a.received))
	}
	if len(other.received) != 1 {
		t.Fatalf("expected 1 delivery to B, got %d", len(other.received))
	}
	if other.received[0].ID != WheelSpeed {
		t.Errorf("expected WHEEL_SPEED, got %s", other.received[0].ID)
	}
}

func TestBusRegisterDuplicateFails(t *testing.T) {
	r := NewRegistry()
	b := NewBus(r)
	a := &fakeNode{name: "A"}
	if err := b.Register(a); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if err := b.Register(&fakeNode{name: "A"}); err == nil {
		t.Error("expected DuplicateNode error on second registration")
	}
}

func TestBusLogOrderingAndCap(t *testing.T) {
	r := NewRegistry()
	b := NewBus(r)
	sink := &fakeNode{name: "sink"}
	if err := b.Register(sink); err != nil {
		t.Fatal(err)
	}
	src := &fakeNode{name: "src"}
	if err := b.Register(src); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < ringLogCapacity+10; i++ {
		b.Broadcast(WheelSpeed, Float(i), "src")
	}

	log := b.Log()
	if len(log) != ringLogCapacity {
		t.Fatalf("expected log capped at %d, got %d", ringLogCapacity, len(log))
	}
	if got := log[0].Payload.(Float); got != Float(10) {
		t.Errorf("expected oldest surviving entry payload 10, got %v", got)
	}
	last := log[len(log)-1].Payload.(Float)
	if last != Float(ringLogCapacity+9) {
		t.Errorf("expected newest entry payload %d, got %v", ringLogCapacity+9, last)
	}
}

func TestBusReentrantBroadcastDepthFirst(t *testing.T) {
	r := NewRegistry()
	b := NewBus(r)

	var order []string
	relay := &relayNode{name: "relay", onReceive: func(id MessageID) {
		if id == SteeringCmd {
			order = append(order, "relay-reentrant")
			b.Broadcast(BrakeCmd, Float(1), "relay")
		}
	}}
	tail := &fakeNode{name: "tail"}

	if err := b.Register(relay); err != nil {
		t.Fatal(err)
	}
	if err := b.Register(tail); err != nil {
		t.Fatal(err)
	}

	order = append(order, "outer-start")
	b.Broadcast(SteeringCmd, Float(0.1), "outer")
	order = append(order, "outer-end")

	want := []string{"outer-start", "relay-reentrant", "outer-end"}
	if len(order) != len(want) {
		t.Fatalf("got %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("got %v, want %v", order, want)
		}
	}

	if len(tail.received) != 2 {
		t.Fatalf("expected tail to see both broadcasts, got %d", len(tail.received))
	}
}

func TestFaultInjectorDropAndCorrupt(t *testing.T) {
	r := NewRegistry()
	b := NewBus(r)
	sink := &fakeNode{name: "sink"}
	if err := b.Register(sink); err != nil {
		t.Fatal(err)
	}
	src := &fakeNode{name: "src"}
	if err := b.Register(src); err != nil {
		t.Fatal(err)
	}

	fi := NewFaultInjector()
	fi.Inject(FaultDrop, string(BrakeCmd), 0)
	fi.Inject(FaultCorrupt, string(WheelSpeed), 0)
	b.SetFaultInjector(fi)

	b.Broadcast(BrakeCmd, Float(1.0), "src")
	b.Broadcast(WheelSpeed, Float(20.0), "src")

	if len(sink.received) != 1 {
		t.Fatalf("expected only the corrupted message to be delivered, got %d", len(sink.received))
	}
	if sink.received[0].Payload != CorruptedSentinel {
		t.Errorf("expected corrupted sentinel, got %v", sink.received[0].Payload)
	}
	if len(b.Log()) != 1 {
		t.Errorf("dropped messages must not appear in the ring log, got %d entries", len(b.Log()))
	}
}

func TestFaultInjectorDelayRedeliversNextTick(t *testing.T) {
	r := NewRegistry()
	b := NewBus(r)
	sink := &fakeNode{name: "sink"}
	if err := b.Register(sink); err != nil {
		t.Fatal(err)
	}
	src := &fakeNode{name: "src"}
	if err := b.Register(src); err != nil {
		t.Fatal(err)
	}

	fi := NewFaultInjector()
	fi.Inject(FaultDelay, string(AccelCmd), 0)
	b.SetFaultInjector(fi)

	b.Broadcast(AccelCmd, Float(0.5), "src")
	if len(sink.received) != 0 {
		t.Fatalf("DELAY must not deliver within the same tick, got %d", len(sink.received))
	}

	b.redeliverDelayed()
	if len(sink.received) != 1 {
		t.Fatalf("expected delayed message redelivered on next tick, got %d", len(sink.received))
	}
	if sink.received[0].Sender != "src" {
		t.Errorf("expected original sender preserved, got %q", sink.received[0].Sender)
	}
}

// fakeNode is a minimal Node used across bus tests.
type fakeNode struct {
	name     string
	received []LogEntry
}

func (f *fakeNode) Name() string { return f.name }
func (f *fakeNode) Receive(id MessageID, payload Payload, sender string) {
	f.received = append(f.received, LogEntry{ID: id, Payload: payload, Sender: sender})
}
func (f *fakeNode) Step(dt time.Duration) {}

// relayNode re-broadcasts from inside Receive to exercise re-entrancy.
type relayNode struct {
	name      string
	received  []LogEntry
	onReceive func(id MessageID)
}

func (r *relayNode) Name() string { return r.name }
func (r *relayNode) Receive(id MessageID, payload Payload, sender string) {
	r.received = append(r.received, LogEntry{ID: id, Payload: payload, Sender: sender})
	if r.onReceive != nil {
		r.onReceive(id)
	}
}
func (r *relayNode) Step(dt time.Duration) {}
