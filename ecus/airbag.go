package ecus

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vvtb/bench/core"
)

// crashThresholdG is the deceleration, in g, below which the crash
// pyrotechnics fire (negative: deceleration along the vehicle's x-axis).
const crashThresholdG = -5.0

// gravityMS2 converts ACCEL_X (m/s²) to g for the crash threshold check.
const gravityMS2 = 9.81

// Airbag is the airbag control unit: monitors longitudinal acceleration
// and fires pyrotechnic restraints once during a crash event.
type Airbag struct {
	name string
	bus  *core.Bus
	log  *logrus.Entry

	airbagsDeployed      bool
	pretensionersDeployed bool
}

// NewAirbag constructs an Airbag ECU with restraints undeployed.
func NewAirbag(name string, bus *core.Bus, log *logrus.Entry) *Airbag {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Airbag{name: name, bus: bus, log: log.WithField("node", name)}
}

func (a *Airbag) Name() string { return a.name }

func (a *Airbag) Receive(id core.MessageID, payload core.Payload, sender string) {
	if id != core.AccelX {
		return
	}
	f, ok := payload.(core.Float)
	if !ok {
		return
	}
	accelG := float64(f) / gravityMS2
	if accelG < crashThresholdG && !a.airbagsDeployed {
		a.deploySafetySystems()
	}
}

func (a *Airbag) deploySafetySystems() {
	a.log.Warn("crash detected, deploying safety systems")
	a.airbagsDeployed = true
	a.pretensionersDeployed = true

	a.broadcast(core.DeployAirbag, core.Bool(true))
	a.broadcast(core.DeploySeatbelt, core.Bool(true))
	a.broadcast(core.PostCrashAlert, core.PostCrashLocation{Loc: "GPS_DATA_HERE"})
}

// Step executes no periodic logic; Airbag is purely event-driven.
func (a *Airbag) Step(dt time.Duration) {}

func (a *Airbag) broadcast(id core.MessageID, p core.Payload) {
	if a.bus == nil {
		return
	}
	a.bus.Broadcast(id, p, a.name)
}

// Deployed reports whether the restraints have fired.
func (a *Airbag) Deployed() bool { return a.airbagsDeployed }
