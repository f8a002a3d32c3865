package ecus

import (
	"math"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vvtb/bench/core"
)

// escYawRateThreshold is the absolute yaw rate, in rad/s, above which ESC
// intervenes with stabilizing braking.
const escYawRateThreshold = 0.5

// ESC is the Electronic Stability Control ECU: a threshold-based yaw-rate
// monitor that applies corrective braking when the vehicle oversteers.
type ESC struct {
	name string
	bus  *core.Bus
	log  *logrus.Entry

	active bool
}

// NewESC constructs an ESC ECU, inactive by default.
func NewESC(name string, bus *core.Bus, log *logrus.Entry) *ESC {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &ESC{name: name, bus: bus, log: log.WithField("node", name)}
}

func (e *ESC) Name() string { return e.name }

func (e *ESC) Receive(id core.MessageID, payload core.Payload, sender string) {
	if id != core.YawRate {
		return
	}
	f, ok := payload.(core.Float)
	if !ok {
		return
	}
	e.checkStability(float64(f))
}

func (e *ESC) checkStability(yawRate float64) {
	if math.Abs(yawRate) > escYawRateThreshold {
		if !e.active {
			e.activate()
		}
	} else if e.active {
		e.deactivate()
	}
}

func (e *ESC) activate() {
	e.active = true
	e.broadcast(core.ESCStatus, core.Str("ACTIVE"))
	e.broadcast(core.BrakeCmd, core.Float(0.8))
}

func (e *ESC) deactivate() {
	e.active = false
	e.broadcast(core.ESCStatus, core.Str("INACTIVE"))
	e.broadcast(core.BrakeCmd, core.Float(0.0))
}

// Step executes no periodic logic; ESC is purely event-driven.
func (e *ESC) Step(dt time.Duration) {}

func (e *ESC) broadcast(id core.MessageID, p core.Payload) {
	if e.bus == nil {
		return
	}
	e.bus.Broadcast(id, p, e.name)
}

// Active reports whether stability control is currently intervening.
func (e *ESC) Active() bool { return e.active }
