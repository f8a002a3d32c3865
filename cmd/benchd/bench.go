// Command benchd runs the virtual vehicle test bench: it wires the plants
// and ECUs onto one Engine and exposes a read-mostly inspection HTTP API
// (spec.md §6 expansion) for external scenario drivers and report tools.
package main

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/vvtb/bench/core"
	"github.com/vvtb/bench/ecus"
	"github.com/vvtb/bench/infrastructure/metrics"
	"github.com/vvtb/bench/plants"
)

// newBench constructs an Engine with every plant and ECU from spec.md §4
// registered in the order the Python original_source initializes them:
// vehicle dynamics and the electrical plants first, then the ECUs that
// consume their sensor broadcasts.
func newBench(log *logrus.Entry, nvmPath string) *core.Engine {
	// Each bench registers its collectors on its own registry, so building
	// several benches in one process does not collide on metric names.
	recorder := metrics.NewWithRegistry("vvtb_bench", prometheus.NewRegistry())
	eng := core.New(
		core.WithDT(10*time.Millisecond),
		core.WithLogger(log),
		core.WithMetrics(recorder),
	)
	bus := eng.Bus()

	vehicle := plants.NewVehicleDynamics("VehicleDynamics", bus)
	battery := plants.NewBattery("Battery", bus, 60.0)
	charger := plants.NewChargingStation("ChargingStation", bus)

	must(eng.AddPlant(vehicle))
	must(eng.AddPlant(battery))
	must(eng.AddPlant(charger))

	must(eng.AddECU(ecus.NewADAS("ADAS_ECU", bus, log)))
	must(eng.AddECU(ecus.NewBMS("BMS_ECU", bus, log)))
	must(eng.AddECU(ecus.NewGateway("Gateway_ECU", bus, log)))
	must(eng.AddECU(ecus.NewBody("Body_ECU", bus, log, nvmPath)))
	must(eng.AddECU(ecus.NewAirbag("Airbag_ECU", bus, log)))
	must(eng.AddECU(ecus.NewESC("ESC_ECU", bus, log)))

	return eng
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
