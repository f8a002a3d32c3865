// Package ecus implements the bench's electronic control units: the
// safety-critical ADAS (AEB+LKA), BMS, and Gateway (IDS/OTA/OBD/UDS/V2X)
// state machines, plus the Body and Airbag/ESC support ECUs.
package ecus

import (
	"math"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vvtb/bench/core"
)

// ttcThreshold is the time-to-collision below which AEB engages full braking.
const ttcThreshold = 2.5

// laneConfidenceThreshold is the minimum CAMERA_LANE confidence below which
// LKA disengages (SOTIF fallback).
const laneConfidenceThreshold = 0.6

// ADAS implements two independent control laws sharing one bus connection:
// Automatic Emergency Braking and Lane Keep Assist.
type ADAS struct {
	name string
	bus  *core.Bus
	log  *logrus.Entry

	aebTriggered bool
}

// NewADAS constructs an ADAS ECU broadcasting on bus.
func NewADAS(name string, bus *core.Bus, log *logrus.Entry) *ADAS {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &ADAS{name: name, bus: bus, log: log.WithField("node", name)}
}

func (a *ADAS) Name() string { return a.name }

func (a *ADAS) Receive(id core.MessageID, payload core.Payload, sender string) {
	switch id {
	case core.RadarObjects:
		objs, ok := payload.(core.RadarObjectList)
		if !ok {
			a.log.Warn("malformed RADAR_OBJECTS payload, releasing AEB")
			a.releaseAEB()
			return
		}
		a.processRadar(objs)
	case core.CameraLane:
		lane, ok := payload.(core.CameraLaneData)
		if !ok {
			a.log.Warn("malformed CAMERA_LANE payload, ignoring")
			return
		}
		a.processLane(lane)
	}
}

func (a *ADAS) processLane(lane core.CameraLaneData) {
	if lane.Confidence < laneConfidenceThreshold {
		return
	}

	const kp = 0.05
	const kd = 1.5
	steer := -(kp*lane.LaneOffset + kd*lane.HeadingIdx)
	steer = math.Max(-0.5, math.Min(0.5, steer))

	a.broadcast(core.SteeringCmd, core.Float(steer))
}

func (a *ADAS) processRadar(objects core.RadarObjectList) {
	minTTC := math.Inf(1)
	for _, obj := range objects {
		if math.Abs(obj.LatPos) > 1.75 {
			continue
		}
		if obj.RelSpeed < 0 {
			ttc := -obj.Dist / obj.RelSpeed
			if ttc < minTTC {
				minTTC = ttc
			}
		}
	}

	if minTTC < ttcThreshold {
		a.triggerAEB()
	} else if a.aebTriggered {
		a.releaseAEB()
	}
}

func (a *ADAS) triggerAEB() {
	a.aebTriggered = true
	a.broadcast(core.BrakeCmd, core.Float(1.0))
}

func (a *ADAS) releaseAEB() {
	a.aebTriggered = false
	a.broadcast(core.BrakeCmd, core.Float(0.0))
}

// Step executes no periodic logic; AEB/LKA are purely event-driven.
func (a *ADAS) Step(dt time.Duration) {}

func (a *ADAS) broadcast(id core.MessageID, p core.Payload) {
	if a.bus == nil {
		return
	}
	a.bus.Broadcast(id, p, a.name)
}

// AEBTriggered reports whether emergency braking is currently engaged, used
// by metrics and scenario assertions.
func (a *ADAS) AEBTriggered() bool { return a.aebTriggered }
