package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadScenariosConfig loads the scenario registry from config/scenarios.yaml.
func LoadScenariosConfig() (*ScenariosConfig, error) {
	return LoadScenariosConfigFromPath(filepath.Join("config", "scenarios.yaml"))
}

// LoadScenariosConfigFromPath loads the scenario registry from a specific path.
func LoadScenariosConfigFromPath(path string) (*ScenariosConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenarios config: %w", err)
	}

	var cfg ScenariosConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse scenarios config: %w", err)
	}

	for id, settings := range cfg.Scenarios {
		if settings.DurationSeconds <= 0 {
			return nil, fmt.Errorf("scenario %s: duration_seconds must be positive", id)
		}
	}

	return &cfg, nil
}

// LoadScenariosConfigOrDefault loads the scenario registry or returns the
// built-in defaults (spec §8's reference scenarios) if the file is absent.
func LoadScenariosConfigOrDefault() *ScenariosConfig {
	cfg, err := LoadScenariosConfig()
	if err != nil {
		return DefaultScenariosConfig()
	}
	return cfg
}

// DefaultScenariosConfig returns the bench's built-in scenario registry.
func DefaultScenariosConfig() *ScenariosConfig {
	return &ScenariosConfig{
		Scenarios: map[string]*ScenarioSettings{
			"stationary_obstacle": {
				Enabled:         true,
				DurationSeconds: 10,
				Description:     "Radar detects a stationary obstacle; AEB must brake before impact",
				Extra:           map[string]any{"script": "stationary_obstacle.js", "entry_point": "run"},
			},
			"cut_in_phantom_braking": {
				Enabled:         true,
				DurationSeconds: 10,
				Description:     "A lead vehicle cuts in and immediately exits; AEB must not phantom-brake",
				Extra:           map[string]any{"script": "cut_in_phantom_braking.js", "entry_point": "run"},
			},
			"split_mu_braking": {
				Enabled:         true,
				DurationSeconds: 8,
				Description:     "Left and right wheel surfaces have different friction during an AEB stop",
				Extra:           map[string]any{"script": "split_mu_braking.js", "entry_point": "run"},
			},
			"uds_security_handshake": {
				Enabled:         true,
				DurationSeconds: 5,
				Description:     "Gateway UDS seed/key security-access unlock followed by a RoutineControl start",
				Extra:           map[string]any{"script": "uds_security_handshake.js", "entry_point": "run"},
			},
			"ota_rollback": {
				Enabled:         true,
				DurationSeconds: 5,
				Description:     "An OTA update with a bad signature is rejected; one with a corrupt chunk is rolled back",
				Extra:           map[string]any{"script": "ota_rollback.js", "entry_point": "run"},
			},
			"odometer_persistence": {
				Enabled:         true,
				DurationSeconds: 20,
				Description:     "Body ECU odometer/trip totals survive an engine restart via NVM",
				Extra:           map[string]any{"script": "odometer_persistence.js", "entry_point": "run"},
			},
		},
	}
}
