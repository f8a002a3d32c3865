package ecus

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vvtb/bench/core"
)

// ChargingState is the BMS's charging session state machine, independent
// of the charging station's own connector state machine.
type ChargingState string

const (
	ChargingIdle      ChargingState = "IDLE"
	ChargingHandshake ChargingState = "HANDSHAKE"
	ChargingActive    ChargingState = "CHARGING"
)

const (
	minVoltageLimit = 320.0
	maxVoltageLimit = 420.0
	maxTempLimit    = 60.0
)

// BMS monitors HV telemetry for safety-limit violations and drives the
// contactors plus the charge-request handshake toward a target SoC.
type BMS struct {
	name string
	bus  *core.Bus
	log  *logrus.Entry

	contactorsClosed bool
	socEstimate      float64
	targetSoC        float64
	charging         ChargingState
}

// NewBMS constructs a BMS ECU with contactors open and a 90% target SoC.
func NewBMS(name string, bus *core.Bus, log *logrus.Entry) *BMS {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &BMS{
		name:        name,
		bus:         bus,
		log:         log.WithField("node", name),
		socEstimate: 100.0,
		targetSoC:   90.0,
		charging:    ChargingIdle,
	}
}

func (b *BMS) Name() string { return b.name }

func (b *BMS) Receive(id core.MessageID, payload core.Payload, sender string) {
	switch id {
	case core.HVVoltage:
		if f, ok := payload.(core.Float); ok {
			b.checkVoltage(float64(f))
		}
	case core.HVTemp:
		if f, ok := payload.(core.Float); ok {
			b.checkTemp(float64(f))
		}
	case core.ChargerStatus:
		if s, ok := payload.(core.ChargerStatusData); ok {
			b.handleChargerStatus(s)
		}
	}
}

func (b *BMS) handleChargerStatus(status core.ChargerStatusData) {
	if status.State == "CONNECTED" && b.charging == ChargingIdle {
		b.transitionCharging(ChargingHandshake)
		b.closeContactors()
	}
}

func (b *BMS) checkVoltage(v float64) {
	if v < minVoltageLimit {
		b.openContactors()
		b.safetyStopCharging()
	} else if v > maxVoltageLimit {
		b.openContactors()
		b.safetyStopCharging()
	}
}

func (b *BMS) checkTemp(t float64) {
	if t > maxTempLimit {
		b.openContactors()
		b.safetyStopCharging()
	}
}

// safetyStopCharging returns the charging FSM to IDLE and issues a stop
// request, per "Any safety violation → IDLE, stop, open".
func (b *BMS) safetyStopCharging() {
	b.transitionCharging(ChargingIdle)
	b.broadcast(core.ChargeRequest, core.ChargeRequestData{ChargingEnabled: false})
}

func (b *BMS) openContactors() {
	if b.contactorsClosed {
		b.contactorsClosed = false
		b.broadcast(core.ContactorState, core.Bool(false))
	}
}

func (b *BMS) closeContactors() {
	if !b.contactorsClosed {
		b.contactorsClosed = true
		b.broadcast(core.ContactorState, core.Bool(true))
	}
}

func (b *BMS) transitionCharging(to ChargingState) {
	if b.charging == to {
		return
	}
	b.log.WithFields(logrus.Fields{"from": b.charging, "to": to}).Debug("charging state transition")
	b.charging = to
}

// Step broadcasts BMS_SOC and drives the CC-CV taper handshake.
func (b *BMS) Step(dt time.Duration) {
	b.broadcast(core.BMSSoC, core.Float(b.socEstimate))

	switch b.charging {
	case ChargingHandshake, ChargingActive:
		if b.socEstimate < b.targetSoC {
			b.transitionCharging(ChargingActive)
			currentTarget := 100.0
			if b.socEstimate >= 80 {
				currentTarget = 20.0
			}
			b.broadcast(core.ChargeRequest, core.ChargeRequestData{
				VoltageTarget:   400.0,
				CurrentTarget:   currentTarget,
				ChargingEnabled: true,
			})
		} else {
			b.transitionCharging(ChargingIdle)
			b.broadcast(core.ChargeRequest, core.ChargeRequestData{ChargingEnabled: false})
			b.openContactors()
		}
	}
}

func (b *BMS) broadcast(id core.MessageID, p core.Payload) {
	if b.bus == nil {
		return
	}
	b.bus.Broadcast(id, p, b.name)
}

// SetSoC overrides the internal SoC estimate, used by scenario scripts that
// drive a charging handshake without a full battery coulomb-count model.
func (b *BMS) SetSoC(soc float64) { b.socEstimate = soc }

// SoC returns the current SoC estimate.
func (b *BMS) SoC() float64 { return b.socEstimate }

// ContactorsClosed reports whether the contactors are currently closed.
func (b *BMS) ContactorsClosed() bool { return b.contactorsClosed }

// ChargingState returns the current charging session state.
func (b *BMS) ChargingState() ChargingState { return b.charging }
