package plants

import (
	"time"

	"github.com/vvtb/bench/core"
)

// Battery simulates a high-voltage pack: state of charge via coulomb
// counting, voltage sag under load, and a simple I²R thermal model.
type Battery struct {
	name string
	bus  *core.Bus

	CapacityKWh       float64
	currentCapacity   float64
	voltage           float64
	current           float64
	temperature       float64
	internalResistance float64

	ambientTemp float64
	driftVoltage float64
	driftCurrent float64
	driftTemp    float64
}

// NewBattery constructs a pack at nominal voltage and 25°C, with the given
// capacity in kWh (spec default 60kWh).
func NewBattery(name string, bus *core.Bus, capacityKWh float64) *Battery {
	return &Battery{
		name:               name,
		bus:                bus,
		CapacityKWh:        capacityKWh,
		currentCapacity:    capacityKWh,
		voltage:            400.0,
		temperature:        25.0,
		internalResistance: 0.05,
		ambientTemp:        25.0,
	}
}

func (b *Battery) Name() string { return b.name }

func (b *Battery) Receive(id core.MessageID, payload core.Payload, sender string) {
	switch id {
	case core.LoadCurrent:
		if f, ok := payload.(core.Float); ok {
			b.current = float64(f)
		}
	case core.SetEnvThermal:
		if t, ok := payload.(core.EnvThermal); ok {
			b.ambientTemp = t.AmbientTemp
		}
	case core.SetSensorDrift:
		if d, ok := payload.(core.SensorDrift); ok {
			b.driftVoltage = d.Voltage
			b.driftCurrent = d.Current
			b.driftTemp = d.Temp
		}
	}
}

func (b *Battery) Step(dt time.Duration) {}

// AdvancePhysics integrates SoC (coulomb counting), voltage sag under load,
// and the I²R heating / ambient-delta cooling thermal model.
func (b *Battery) AdvancePhysics(dt time.Duration) {
	dtSec := dt.Seconds()

	// Positive current = discharge. Energy in kWh = V*I*t / (1000*3600).
	energyChangeKWh := (b.voltage * b.current * dtSec) / (1000 * 3600)
	b.currentCapacity -= energyChangeKWh

	heatGen := (b.current * b.current) * b.internalResistance
	cooling := (b.temperature - b.ambientTemp) * 0.1
	b.temperature += (heatGen - cooling) * dtSec * 0.01

	b.voltage = 400.0 - (b.current * b.internalResistance)
}

func (b *Battery) PublishSensors() {
	b.broadcast(core.HVVoltage, core.Float(b.voltage+b.driftVoltage))
	b.broadcast(core.HVCurrent, core.Float(b.current+b.driftCurrent))
	b.broadcast(core.HVTemp, core.Float(b.temperature+b.driftTemp))
}

func (b *Battery) broadcast(id core.MessageID, p core.Payload) {
	if b.bus == nil {
		return
	}
	b.bus.Broadcast(id, p, b.name)
}

// SetBus attaches the bus this plant broadcasts sensor data on.
func (b *Battery) SetBus(bus *core.Bus) { b.bus = bus }

// SoC returns the current state of charge as a fraction of capacity, 0..1.
func (b *Battery) SoC() float64 {
	if b.CapacityKWh == 0 {
		return 0
	}
	return b.currentCapacity / b.CapacityKWh
}

// Voltage returns the current pack terminal voltage (without drift), for
// test assertions.
func (b *Battery) Voltage() float64 { return b.voltage }

// Temperature returns the current pack temperature in °C.
func (b *Battery) Temperature() float64 { return b.temperature }
