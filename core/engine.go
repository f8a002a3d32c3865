package core

import (
	"time"

	"github.com/sirupsen/logrus"

	benchrrors "github.com/vvtb/bench/infrastructure/errors"
)

// Engine owns the bus and the two ordered node lists (plants, ECUs) and
// sequences ticks. It is the sole scheduler: single-threaded, synchronous,
// no suspension points inside a tick.
type Engine struct {
	registry *Registry
	bus      *Bus
	plants   []Plant
	ecus     []Node

	dt      time.Duration
	tick    uint64
	running bool

	log     *logrus.Entry
	metrics MetricsRecorder
}

// MetricsRecorder is the nil-safe metrics hook the engine drives each tick.
// infrastructure/metrics.Recorder implements it; tests pass nil.
type MetricsRecorder interface {
	ObserveTick(d time.Duration)
	ObserveBusLog(length int)
}

// Option configures an Engine at construction.
type Option func(*Engine)

// WithDT sets the fixed simulation step. Defaults to 10ms.
func WithDT(dt time.Duration) Option {
	return func(e *Engine) { e.dt = dt }
}

// WithLogger overrides the engine's logger.
func WithLogger(log *logrus.Entry) Option {
	return func(e *Engine) { e.log = log }
}

// WithMetrics attaches a metrics recorder.
func WithMetrics(m MetricsRecorder) Option {
	return func(e *Engine) { e.metrics = m }
}

// New constructs an empty Engine ready to accept plants and ECUs.
func New(opts ...Option) *Engine {
	registry := NewRegistry()
	e := &Engine{
		registry: registry,
		bus:      NewBus(registry),
		dt:       10 * time.Millisecond,
		log:      logrus.NewEntry(logrus.StandardLogger()),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Bus returns the underlying message bus.
func (e *Engine) Bus() *Bus {
	return e.bus
}

// Tick returns the current tick index k.
func (e *Engine) Tick() uint64 {
	return e.tick
}

// DT returns the fixed simulation step.
func (e *Engine) DT() time.Duration {
	return e.dt
}

// AddPlant registers a plant and appends it to the ordered plant list.
// Plants advance physics before any ECU steps (spec §4.4/§5).
func (e *Engine) AddPlant(p Plant) error {
	if err := e.bus.Register(p); err != nil {
		return err
	}
	e.plants = append(e.plants, p)
	return nil
}

// AddECU registers an ECU and appends it to the ordered ECU list.
func (e *Engine) AddECU(n Node) error {
	if err := e.bus.Register(n); err != nil {
		return err
	}
	e.ecus = append(e.ecus, n)
	return nil
}

// Lookup returns a registered node by name, or an UnknownNode error.
func (e *Engine) Lookup(name string) (Node, error) {
	n := e.registry.Lookup(name)
	if n == nil {
		return nil, benchrrors.UnknownNode(name)
	}
	return n, nil
}

// Step advances the simulation by exactly one dt:
//
//	(a) for each plant in registration order: AdvancePhysics(dt), then PublishSensors()
//	(b) for each ECU in registration order: Step(dt)
//
// Any DELAY-faulted message queued on the prior tick is redelivered first.
func (e *Engine) Step() {
	start := time.Now()

	e.bus.redeliverDelayed()

	for _, p := range e.plants {
		p.AdvancePhysics(e.dt)
		p.PublishSensors()
	}
	for _, n := range e.ecus {
		n.Step(e.dt)
	}

	e.tick++

	if e.metrics != nil {
		e.metrics.ObserveTick(time.Since(start))
		e.metrics.ObserveBusLog(len(e.bus.log))
	}
}

// Run iterates ⌊duration/dt⌋ steps, or until Stop() is called. There is no
// wall-clock pacing in the core — ticks execute back to back.
func (e *Engine) Run(duration time.Duration) {
	e.running = true
	steps := int(duration / e.dt)
	for i := 0; i < steps; i++ {
		if !e.running {
			break
		}
		e.Step()
	}
	e.running = false
}

// Stop sets a flag checked at the top of the next Run loop iteration; the
// tick in progress always runs to completion.
func (e *Engine) Stop() {
	e.running = false
}

// Running reports whether a Run loop is currently executing.
func (e *Engine) Running() bool {
	return e.running
}

// ModuleNames returns registered node names in registration order.
func (e *Engine) ModuleNames() []string {
	return e.registry.Names()
}
