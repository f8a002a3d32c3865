package scenario

import (
	"testing"

	"github.com/vvtb/bench/core"
	"github.com/vvtb/bench/ecus"
	"github.com/vvtb/bench/plants"
)

func newTestEngine(t *testing.T) *core.Engine {
	t.Helper()
	eng := core.New()
	bus := eng.Bus()
	if err := eng.AddPlant(plants.NewVehicleDynamics("VehicleDynamics", bus)); err != nil {
		t.Fatal(err)
	}
	if err := eng.AddECU(ecus.NewADAS("ADAS_ECU", bus, nil)); err != nil {
		t.Fatal(err)
	}
	return eng
}

func TestRunnerBroadcastAndStep(t *testing.T) {
	eng := newTestEngine(t)
	runner := NewRunner(eng)

	script := `
function run(bench) {
  bench.broadcast("RADAR_OBJECTS", {
    objects: [{id: "o1", dist: 3.0, relSpeed: -8.0, latPos: 0.0, latSpeed: 0.0}]
  }, "TestHarness");
  bench.step(1);
}
`
	result, err := runner.Run(Request{Script: script})
	if err != nil {
		t.Fatal(err)
	}
	if result.Ticks != 1 {
		t.Errorf("expected 1 tick, got %d", result.Ticks)
	}

	var sawBrake bool
	for _, e := range result.Log {
		if e.ID == core.BrakeCmd && float64(e.Payload.(core.Float)) == 1.0 {
			sawBrake = true
		}
	}
	if !sawBrake {
		t.Error("expected AEB to have issued a full BRAKE_CMD")
	}
}

func TestRunnerConsoleLogCaptured(t *testing.T) {
	eng := newTestEngine(t)
	runner := NewRunner(eng)

	result, err := runner.Run(Request{Script: `function run(bench) { console.log("hello", 42); }`})
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Logs) != 1 {
		t.Fatalf("expected one captured console.log line, got %v", result.Logs)
	}
}

func TestRunnerUnknownEntryPoint(t *testing.T) {
	eng := newTestEngine(t)
	runner := NewRunner(eng)

	if _, err := runner.Run(Request{Script: `function other(bench) {}`, EntryPoint: "run"}); err == nil {
		t.Error("expected an error when the entry point function is missing")
	}
}

func TestRunnerRejectsBadMessageID(t *testing.T) {
	eng := newTestEngine(t)
	runner := NewRunner(eng)

	_, err := runner.Run(Request{Script: `function run(bench) { bench.broadcast("NOT_REAL", {}, "TestHarness"); }`})
	if err == nil {
		t.Error("expected broadcasting an unknown message id to fail the run")
	}
}
