package plants

import (
	"time"

	"github.com/vvtb/bench/core"
)

// ChargingStationState is the connector-level state machine of a DC fast
// charger (EVSE), independent of the BMS's own charging FSM.
type ChargingStationState string

const (
	ChargerDisconnected ChargingStationState = "DISCONNECTED"
	ChargerConnected    ChargingStationState = "CONNECTED"
	ChargerCharging     ChargingStationState = "CHARGING"
	ChargerError        ChargingStationState = "ERROR"
)

// ChargingStation simulates a DC fast charger: cable connection, the
// CHARGE_REQUEST/CHARGER_OUTPUT handshake with the BMS, and a hardware
// power ceiling.
type ChargingStation struct {
	name string
	bus  *core.Bus

	connected     bool
	state         ChargingStationState
	voltageSupply float64
	currentSupply float64
	MaxPower      float64
}

// NewChargingStation constructs a disconnected 150kW DC fast charger.
func NewChargingStation(name string, bus *core.Bus) *ChargingStation {
	return &ChargingStation{
		name:     name,
		bus:      bus,
		state:    ChargerDisconnected,
		MaxPower: 150000.0,
	}
}

func (c *ChargingStation) Name() string { return c.name }

func (c *ChargingStation) Receive(id core.MessageID, payload core.Payload, sender string) {
	switch id {
	case core.ChargeRequest:
		if req, ok := payload.(core.ChargeRequestData); ok {
			c.handleChargeRequest(req)
		}
	case core.ContactorState:
		if open, ok := payload.(core.Bool); ok && !bool(open) && c.state == ChargerCharging {
			c.state = ChargerError
			c.stopCharging()
		}
	}
}

func (c *ChargingStation) Step(dt time.Duration) {}

// ConnectCable simulates a plug-in event, driven by a test harness or
// scenario script rather than by bus traffic.
func (c *ChargingStation) ConnectCable() {
	c.connected = true
	c.state = ChargerConnected
	c.broadcast(core.ChargerStatus, core.ChargerStatusData{State: string(ChargerConnected), MaxPower: c.MaxPower})
}

func (c *ChargingStation) handleChargeRequest(req core.ChargeRequestData) {
	if !c.connected {
		return
	}
	if !req.ChargingEnabled {
		c.stopCharging()
		return
	}

	vReq := req.VoltageTarget
	iReq := req.CurrentTarget
	if vReq > 0 && vReq*iReq > c.MaxPower {
		iReq = c.MaxPower / vReq
	}

	c.voltageSupply = vReq
	c.currentSupply = iReq
	c.state = ChargerCharging

	c.broadcast(core.ChargerOutput, core.ChargerOutputData{Voltage: c.voltageSupply, Current: c.currentSupply})
}

func (c *ChargingStation) stopCharging() {
	c.voltageSupply = 0
	c.currentSupply = 0
	if c.state != ChargerError {
		c.state = ChargerConnected
	}
	c.broadcast(core.ChargerOutput, core.ChargerOutputData{Voltage: 0, Current: 0})
}

func (c *ChargingStation) AdvancePhysics(dt time.Duration) {}
func (c *ChargingStation) PublishSensors()                {}

func (c *ChargingStation) broadcast(id core.MessageID, p core.Payload) {
	if c.bus == nil {
		return
	}
	c.bus.Broadcast(id, p, c.name)
}

// SetBus attaches the bus this plant broadcasts on.
func (c *ChargingStation) SetBus(bus *core.Bus) { c.bus = bus }

// State returns the connector-level state, used by scenario assertions.
func (c *ChargingStation) State() ChargingStationState { return c.state }
