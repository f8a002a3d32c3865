package core

import "time"

// Receiver is the callback capability every bus participant implements.
// Receive must be total over the payload domain it cares about: malformed
// or unexpected payloads are handled locally (logged, ignored, or driven to
// a safe state) and never propagated as a panic across the bus.
type Receiver interface {
	Receive(id MessageID, payload Payload, sender string)
}

// Steppable is the periodic-logic capability. ECUs place their periodic
// emissions (status broadcasts, FSM polling) here; plants use it only for
// bookkeeping that isn't physics integration.
type Steppable interface {
	Step(dt time.Duration)
}

// Node is the uniform capability every registered participant satisfies.
type Node interface {
	Receiver
	Steppable
	// Name returns the node's unique registry name.
	Name() string
}

// Plant is a Node that additionally owns continuous physical state.
type Plant interface {
	Node
	// AdvancePhysics integrates continuous state forward by dt.
	AdvancePhysics(dt time.Duration)
	// PublishSensors emits sensor broadcasts reflecting current state.
	PublishSensors()
}
