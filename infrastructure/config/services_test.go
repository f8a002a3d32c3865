package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultScenariosConfig(t *testing.T) {
	cfg := DefaultScenariosConfig()
	if cfg == nil {
		t.Fatal("DefaultScenariosConfig() returned nil")
	}

	expectedScenarios := []string{
		"stationary_obstacle",
		"cut_in_phantom_braking",
		"split_mu_braking",
		"uds_security_handshake",
		"ota_rollback",
		"odometer_persistence",
	}

	for _, sc := range expectedScenarios {
		settings, ok := cfg.Scenarios[sc]
		if !ok {
			t.Errorf("missing scenario %q in default config", sc)
			continue
		}
		if !settings.Enabled {
			t.Errorf("scenario %q should be enabled by default", sc)
		}
		if settings.DurationSeconds == 0 {
			t.Errorf("scenario %q has no duration configured", sc)
		}
		if settings.Description == "" {
			t.Errorf("scenario %q has no description", sc)
		}
	}
}

func TestLoadScenariosConfigFromPath(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "scenarios.yaml")

		configContent := `
scenarios:
  test_scenario:
    enabled: true
    duration_seconds: 10
    description: "Test scenario"
`
		if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		cfg, err := LoadScenariosConfigFromPath(configPath)
		if err != nil {
			t.Fatalf("LoadScenariosConfigFromPath() error = %v", err)
		}

		if cfg == nil {
			t.Fatal("LoadScenariosConfigFromPath() returned nil")
		}

		sc, ok := cfg.Scenarios["test_scenario"]
		if !ok {
			t.Fatal("test_scenario not found in config")
		}
		if sc.DurationSeconds != 10 {
			t.Errorf("duration_seconds = %d, want 10", sc.DurationSeconds)
		}
		if !sc.Enabled {
			t.Error("scenario should be enabled")
		}
	})

	t.Run("missing duration", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "scenarios.yaml")

		configContent := `
scenarios:
  test_scenario:
    enabled: true
    description: "Test scenario"
`
		if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		_, err := LoadScenariosConfigFromPath(configPath)
		if err == nil {
			t.Error("expected error for missing duration")
		}
	})

	t.Run("file not found", func(t *testing.T) {
		_, err := LoadScenariosConfigFromPath("/nonexistent/path/scenarios.yaml")
		if err == nil {
			t.Error("expected error for missing file")
		}
	})

	t.Run("invalid yaml", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "scenarios.yaml")

		if err := os.WriteFile(configPath, []byte("invalid: yaml: content:"), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		_, err := LoadScenariosConfigFromPath(configPath)
		if err == nil {
			t.Error("expected error for invalid yaml")
		}
	})
}

func TestLoadScenariosConfigOrDefault(t *testing.T) {
	// Should return the default registry since config/scenarios.yaml
	// doesn't exist relative to the test's working directory.
	cfg := LoadScenariosConfigOrDefault()
	if cfg == nil {
		t.Fatal("LoadScenariosConfigOrDefault() returned nil")
	}

	if len(cfg.Scenarios) == 0 {
		t.Error("expected non-empty scenarios map")
	}
}
