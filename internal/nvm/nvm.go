// Package nvm implements the Body ECU's persistent odometer store: a small
// human-readable document read once at construction and written only on an
// explicit save, simulating a vehicle's non-volatile memory.
package nvm

import (
	"os"

	"gopkg.in/yaml.v3"
)

// OdometerRecord is the on-disk shape of the odometer NVM document.
type OdometerRecord struct {
	TotalMileageM float64 `yaml:"total_mileage"`
	TripMeterM    float64 `yaml:"trip_meter"`
}

// Load reads an OdometerRecord from path. A missing or corrupt file is not
// an error: it yields the zero record, matching a fresh/unformatted NVM.
func Load(path string) OdometerRecord {
	data, err := os.ReadFile(path)
	if err != nil {
		return OdometerRecord{}
	}
	var rec OdometerRecord
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return OdometerRecord{}
	}
	return rec
}

// Save writes rec to path, overwriting any existing contents.
func Save(path string, rec OdometerRecord) error {
	data, err := yaml.Marshal(rec)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
