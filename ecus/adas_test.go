package ecus

import (
	"math"
	"testing"

	"github.com/vvtb/bench/core"
)

func newTestBus(t *testing.T) *core.Bus {
	t.Helper()
	return core.NewBus(core.NewRegistry())
}

func lastBrakeCmd(t *testing.T, bus *core.Bus) (float64, bool) {
	t.Helper()
	log := bus.Log()
	for i := len(log) - 1; i >= 0; i-- {
		if log[i].ID == core.BrakeCmd {
			f, ok := log[i].Payload.(core.Float)
			return float64(f), ok
		}
	}
	return 0, false
}

func TestADASTriggersAEBOnImminentCollision(t *testing.T) {
	bus := newTestBus(t)
	adas := NewADAS("ADAS_ECU", bus, nil)
	if err := bus.Register(adas); err != nil {
		t.Fatal(err)
	}

	adas.Receive(core.RadarObjects, core.RadarObjectList{
		{Dist: 10, RelSpeed: -5}, // TTC = 2.0s < 2.5s threshold
	}, "Radar")

	if !adas.AEBTriggered() {
		t.Fatal("expected AEB to trigger for TTC below threshold")
	}
	brake, ok := lastBrakeCmd(t, bus)
	if !ok || brake != 1.0 {
		t.Errorf("expected BRAKE_CMD=1.0, got %v (ok=%v)", brake, ok)
	}
}

func TestADASReleasesAEBWhenClear(t *testing.T) {
	bus := newTestBus(t)
	adas := NewADAS("ADAS_ECU", bus, nil)
	if err := bus.Register(adas); err != nil {
		t.Fatal(err)
	}

	adas.Receive(core.RadarObjects, core.RadarObjectList{{Dist: 10, RelSpeed: -5}}, "Radar")
	if !adas.AEBTriggered() {
		t.Fatal("setup: expected AEB triggered first")
	}

	adas.Receive(core.RadarObjects, core.RadarObjectList{{Dist: 100, RelSpeed: -1}}, "Radar")
	if adas.AEBTriggered() {
		t.Error("expected AEB to release once no closing object remains below threshold")
	}
	brake, ok := lastBrakeCmd(t, bus)
	if !ok || brake != 0.0 {
		t.Errorf("expected BRAKE_CMD=0.0 on release, got %v (ok=%v)", brake, ok)
	}
}

func TestADASFiltersObjectsOutsideLane(t *testing.T) {
	bus := newTestBus(t)
	adas := NewADAS("ADAS_ECU", bus, nil)
	if err := bus.Register(adas); err != nil {
		t.Fatal(err)
	}

	adas.Receive(core.RadarObjects, core.RadarObjectList{
		{Dist: 5, RelSpeed: -10, LatPos: 2.0}, // outside +/-1.75m lane, ignored
	}, "Radar")

	if adas.AEBTriggered() {
		t.Error("expected out-of-lane object to be filtered and not trigger AEB")
	}
}

func TestADASMalformedRadarPayloadReleasesAEB(t *testing.T) {
	bus := newTestBus(t)
	adas := NewADAS("ADAS_ECU", bus, nil)
	if err := bus.Register(adas); err != nil {
		t.Fatal(err)
	}
	adas.aebTriggered = true

	adas.Receive(core.RadarObjects, core.Float(0), "Radar") // wrong payload shape

	if adas.AEBTriggered() {
		t.Error("expected malformed payload to release AEB, never escalate")
	}
}

func TestADASCutInPhantomBrakingScenario(t *testing.T) {
	bus := newTestBus(t)
	adas := NewADAS("ADAS_ECU", bus, nil)
	if err := bus.Register(adas); err != nil {
		t.Fatal(err)
	}

	// Lead vehicle cuts in close and immediately exits the lane again.
	adas.Receive(core.RadarObjects, core.RadarObjectList{{Dist: 8, RelSpeed: -6, LatPos: 0.0}}, "Radar")
	if !adas.AEBTriggered() {
		t.Fatal("setup: expected AEB to engage for the cut-in")
	}
	adas.Receive(core.RadarObjects, core.RadarObjectList{}, "Radar")
	if adas.AEBTriggered() {
		t.Error("expected AEB to release once the lead vehicle exits (no phantom braking)")
	}
}

func TestADASLKASteersTowardLaneCenter(t *testing.T) {
	bus := newTestBus(t)
	adas := NewADAS("ADAS_ECU", bus, nil)
	if err := bus.Register(adas); err != nil {
		t.Fatal(err)
	}

	adas.Receive(core.CameraLane, core.CameraLaneData{
		LaneOffset: 1.0, HeadingIdx: 0.0, Confidence: 0.9,
	}, "Camera")

	log := bus.Log()
	if len(log) != 1 || log[0].ID != core.SteeringCmd {
		t.Fatalf("expected a single STEERING_CMD broadcast, got %+v", log)
	}
	steer := float64(log[0].Payload.(core.Float))
	want := -0.05
	if math.Abs(steer-want) > 1e-9 {
		t.Errorf("steer = %v, want %v", steer, want)
	}
}

func TestADASLKADisengagesOnLowConfidence(t *testing.T) {
	bus := newTestBus(t)
	adas := NewADAS("ADAS_ECU", bus, nil)
	if err := bus.Register(adas); err != nil {
		t.Fatal(err)
	}

	adas.Receive(core.CameraLane, core.CameraLaneData{
		LaneOffset: 2.0, HeadingIdx: 1.0, Confidence: 0.3,
	}, "Camera")

	if len(bus.Log()) != 0 {
		t.Error("expected no STEERING_CMD emitted on low-confidence lane data")
	}
}

func TestADASLKAClampsSteeringAngle(t *testing.T) {
	bus := newTestBus(t)
	adas := NewADAS("ADAS_ECU", bus, nil)
	if err := bus.Register(adas); err != nil {
		t.Fatal(err)
	}

	adas.Receive(core.CameraLane, core.CameraLaneData{
		LaneOffset: 100.0, HeadingIdx: 100.0, Confidence: 1.0,
	}, "Camera")

	steer := float64(bus.Log()[0].Payload.(core.Float))
	if steer != -0.5 {
		t.Errorf("expected steering clamped to -0.5, got %v", steer)
	}
}

