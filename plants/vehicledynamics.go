// Package plants holds the physical simulation nodes: vehicle dynamics,
// the traction battery, and the charging station they plug into.
package plants

import (
	"math"
	"time"

	"github.com/vvtb/bench/core"
)

// VehicleDynamics simulates longitudinal and lateral motion with a
// kinematic bicycle model, split left/right braking friction, and a power
// draw fed back to the battery plant via LOAD_CURRENT.
type VehicleDynamics struct {
	name string
	bus  *core.Bus

	x, y      float64
	yaw       float64
	v         float64
	yawRate   float64
	slipAngle float64
	prevV     float64

	steeringAngle float64
	throttle      float64
	brake         float64

	muLeft  float64
	muRight float64

	Wheelbase   float64
	TrackWidth  float64
	Mass        float64
	InertiaZ    float64
}

// NewVehicleDynamics constructs a vehicle at rest at the origin with the
// spec's reference mass/geometry, broadcasting on bus once registered.
func NewVehicleDynamics(name string, bus *core.Bus) *VehicleDynamics {
	return &VehicleDynamics{
		name:       name,
		bus:        bus,
		muLeft:     1.0,
		muRight:    1.0,
		Wheelbase:  2.5,
		TrackWidth: 1.6,
		Mass:       1500.0,
		InertiaZ:   2500.0,
	}
}

func (v *VehicleDynamics) Name() string { return v.name }

// Receive handles actuator commands and environment overrides.
func (v *VehicleDynamics) Receive(id core.MessageID, payload core.Payload, sender string) {
	switch id {
	case core.SteeringCmd:
		if f, ok := payload.(core.Float); ok {
			v.steeringAngle = float64(f)
		}
	case core.AccelCmd:
		if f, ok := payload.(core.Float); ok {
			v.throttle = float64(f)
		}
	case core.BrakeCmd:
		if f, ok := payload.(core.Float); ok {
			v.brake = float64(f)
		}
	case core.SetEnvMu:
		if m, ok := payload.(core.EnvMu); ok {
			v.muLeft = m.MuLeft
			v.muRight = m.MuRight
		}
	}
}

// Step is a no-op: VehicleDynamics advances via AdvancePhysics/PublishSensors,
// driven directly by the engine's plant phase.
func (v *VehicleDynamics) Step(dt time.Duration) {}

func (v *VehicleDynamics) longitudinalForce() (netForce, diffBrake float64) {
	const fDriveMax = 3000.0
	const maxBrakePerSide = 8000.0

	fDrive := v.throttle * fDriveMax
	fBrakeL := v.brake * maxBrakePerSide * v.muLeft
	fBrakeR := v.brake * maxBrakePerSide * v.muRight
	return fDrive - (fBrakeL + fBrakeR), fBrakeL - fBrakeR
}

// AdvancePhysics integrates one dt of the kinematic bicycle model.
func (v *VehicleDynamics) AdvancePhysics(dt time.Duration) {
	dtSec := dt.Seconds()

	fLong, fDiffBrake := v.longitudinalForce()
	accel := fLong / v.Mass

	v.x += v.v * math.Cos(v.yaw) * dtSec
	v.y += v.v * math.Sin(v.yaw) * dtSec
	v.yaw += v.yawRate * dtSec
	v.v = math.Max(0, v.v+accel*dtSec)

	idealYawRate := (v.v / v.Wheelbase) * math.Tan(v.steeringAngle)
	maxYawRate := 9.8 / (v.v + 0.1)
	if math.Abs(idealYawRate) > maxYawRate {
		idealYawRate = math.Copysign(maxYawRate, idealYawRate) * 1.5
	}

	avgMu := (v.muLeft + v.muRight) / 2.0
	tau := 0.2 / math.Max(avgMu, 0.1)

	yawAccelSteering := (idealYawRate - v.yawRate) / tau
	// Moment = differential brake force * half track width, about the z axis.
	yawAccelDisturbance := (fDiffBrake * (v.TrackWidth / 2.0)) / v.InertiaZ

	v.yawRate += (yawAccelSteering + yawAccelDisturbance) * dtSec
	v.slipAngle = (v.v * v.yawRate) * 0.05

	powerOut := (v.throttle * fDriveMax) * v.v
	var powerIn float64
	if powerOut > 0 {
		powerIn = powerOut / 0.85
	} else {
		powerIn = powerOut * 0.5
	}
	v.broadcast(core.LoadCurrent, core.Float(powerIn/400.0))
}

// PublishSensors broadcasts telemetry consumed by the ADAS/ESC/Airbag ECUs.
func (v *VehicleDynamics) PublishSensors() {
	v.broadcast(core.WheelSpeed, core.Float(v.v))
	v.broadcast(core.YawRate, core.Float(v.yawRate))
	v.broadcast(core.LateralAccel, core.Float(v.v*v.yawRate))
	v.broadcast(core.GPSPos, core.GPSPosition{X: v.x, Y: v.y})

	accelX := (v.v - v.prevV) / 0.05
	v.prevV = v.v
	v.broadcast(core.AccelX, core.Float(accelX))
}

// broadcast is nil-safe so a VehicleDynamics built without a bus (e.g. in a
// unit test exercising pure physics) can still call AdvancePhysics/PublishSensors.
func (v *VehicleDynamics) broadcast(id core.MessageID, p core.Payload) {
	if v.bus == nil {
		return
	}
	v.bus.Broadcast(id, p, v.name)
}
// SetBus attaches the bus this plant broadcasts sensor data on.
func (v *VehicleDynamics) SetBus(bus *core.Bus) { v.bus = bus }

// State accessors, used by scenario scripts and the HTTP inspection server.
func (v *VehicleDynamics) X() float64         { return v.x }
func (v *VehicleDynamics) Y() float64         { return v.y }
func (v *VehicleDynamics) Yaw() float64       { return v.yaw }
func (v *VehicleDynamics) Speed() float64     { return v.v }
func (v *VehicleDynamics) YawRate() float64   { return v.yawRate }
func (v *VehicleDynamics) SlipAngle() float64 { return v.slipAngle }
