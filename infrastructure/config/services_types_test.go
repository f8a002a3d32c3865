package config

import (
	"sort"
	"testing"
)

func TestScenariosConfigIsEnabled(t *testing.T) {
	cfg := &ScenariosConfig{
		Scenarios: map[string]*ScenarioSettings{
			"enabled-scenario":  {Enabled: true, DurationSeconds: 10},
			"disabled-scenario": {Enabled: false, DurationSeconds: 10},
		},
	}

	t.Run("enabled scenario", func(t *testing.T) {
		if !cfg.IsEnabled("enabled-scenario") {
			t.Error("IsEnabled() should return true for enabled scenario")
		}
	})

	t.Run("disabled scenario", func(t *testing.T) {
		if cfg.IsEnabled("disabled-scenario") {
			t.Error("IsEnabled() should return false for disabled scenario")
		}
	})

	t.Run("nonexistent scenario", func(t *testing.T) {
		if cfg.IsEnabled("nonexistent") {
			t.Error("IsEnabled() should return false for nonexistent scenario")
		}
	})

	t.Run("nil config", func(t *testing.T) {
		var nilCfg *ScenariosConfig
		if nilCfg.IsEnabled("any") {
			t.Error("IsEnabled() should return false for nil config")
		}
	})

	t.Run("nil scenarios map", func(t *testing.T) {
		emptyCfg := &ScenariosConfig{Scenarios: nil}
		if emptyCfg.IsEnabled("any") {
			t.Error("IsEnabled() should return false for nil scenarios map")
		}
	})
}

func TestScenariosConfigGetSettings(t *testing.T) {
	cfg := &ScenariosConfig{
		Scenarios: map[string]*ScenarioSettings{
			"test-scenario": {Enabled: true, DurationSeconds: 10, Description: "Test"},
		},
	}

	t.Run("existing scenario", func(t *testing.T) {
		settings := cfg.GetSettings("test-scenario")
		if settings == nil {
			t.Fatal("GetSettings() returned nil for existing scenario")
		}
		if settings.DurationSeconds != 10 {
			t.Errorf("DurationSeconds = %d, want 10", settings.DurationSeconds)
		}
		if settings.Description != "Test" {
			t.Errorf("Description = %s, want Test", settings.Description)
		}
	})

	t.Run("nonexistent scenario", func(t *testing.T) {
		settings := cfg.GetSettings("nonexistent")
		if settings != nil {
			t.Error("GetSettings() should return nil for nonexistent scenario")
		}
	})

	t.Run("nil config", func(t *testing.T) {
		var nilCfg *ScenariosConfig
		settings := nilCfg.GetSettings("any")
		if settings != nil {
			t.Error("GetSettings() should return nil for nil config")
		}
	})

	t.Run("nil scenarios map", func(t *testing.T) {
		emptyCfg := &ScenariosConfig{Scenarios: nil}
		settings := emptyCfg.GetSettings("any")
		if settings != nil {
			t.Error("GetSettings() should return nil for nil scenarios map")
		}
	})
}

func TestScenariosConfigEnabledScenarios(t *testing.T) {
	cfg := &ScenariosConfig{
		Scenarios: map[string]*ScenarioSettings{
			"scenario-a": {Enabled: true},
			"scenario-b": {Enabled: false},
			"scenario-c": {Enabled: true},
			"scenario-d": {Enabled: false},
		},
	}

	t.Run("returns enabled scenarios", func(t *testing.T) {
		enabled := cfg.EnabledScenarios()
		if len(enabled) != 2 {
			t.Fatalf("len(EnabledScenarios()) = %d, want 2", len(enabled))
		}
		sort.Strings(enabled)
		if enabled[0] != "scenario-a" || enabled[1] != "scenario-c" {
			t.Errorf("EnabledScenarios() = %v, want [scenario-a scenario-c]", enabled)
		}
	})

	t.Run("nil config", func(t *testing.T) {
		var nilCfg *ScenariosConfig
		enabled := nilCfg.EnabledScenarios()
		if enabled != nil {
			t.Error("EnabledScenarios() should return nil for nil config")
		}
	})

	t.Run("nil scenarios map", func(t *testing.T) {
		emptyCfg := &ScenariosConfig{Scenarios: nil}
		enabled := emptyCfg.EnabledScenarios()
		if enabled != nil {
			t.Error("EnabledScenarios() should return nil for nil scenarios map")
		}
	})

	t.Run("all disabled", func(t *testing.T) {
		allDisabled := &ScenariosConfig{
			Scenarios: map[string]*ScenarioSettings{
				"scenario-x": {Enabled: false},
			},
		}
		enabled := allDisabled.EnabledScenarios()
		if len(enabled) != 0 {
			t.Errorf("EnabledScenarios() = %v, want empty", enabled)
		}
	})
}

func TestScenariosConfigDisabledScenarios(t *testing.T) {
	cfg := &ScenariosConfig{
		Scenarios: map[string]*ScenarioSettings{
			"scenario-a": {Enabled: true},
			"scenario-b": {Enabled: false},
			"scenario-c": {Enabled: true},
			"scenario-d": {Enabled: false},
		},
	}

	t.Run("returns disabled scenarios", func(t *testing.T) {
		disabled := cfg.DisabledScenarios()
		if len(disabled) != 2 {
			t.Fatalf("len(DisabledScenarios()) = %d, want 2", len(disabled))
		}
		sort.Strings(disabled)
		if disabled[0] != "scenario-b" || disabled[1] != "scenario-d" {
			t.Errorf("DisabledScenarios() = %v, want [scenario-b scenario-d]", disabled)
		}
	})

	t.Run("nil config", func(t *testing.T) {
		var nilCfg *ScenariosConfig
		disabled := nilCfg.DisabledScenarios()
		if disabled != nil {
			t.Error("DisabledScenarios() should return nil for nil config")
		}
	})

	t.Run("nil scenarios map", func(t *testing.T) {
		emptyCfg := &ScenariosConfig{Scenarios: nil}
		disabled := emptyCfg.DisabledScenarios()
		if disabled != nil {
			t.Error("DisabledScenarios() should return nil for nil scenarios map")
		}
	})

	t.Run("all enabled", func(t *testing.T) {
		allEnabled := &ScenariosConfig{
			Scenarios: map[string]*ScenarioSettings{
				"scenario-x": {Enabled: true},
			},
		}
		disabled := allEnabled.DisabledScenarios()
		if len(disabled) != 0 {
			t.Errorf("DisabledScenarios() = %v, want empty", disabled)
		}
	})
}

func TestScenarioSettingsStruct(t *testing.T) {
	settings := ScenarioSettings{
		Enabled:         true,
		DurationSeconds: 10,
		Description:     "Test scenario",
		Extra: map[string]any{
			"key": "value",
		},
	}

	if !settings.Enabled {
		t.Error("Enabled should be true")
	}
	if settings.DurationSeconds != 10 {
		t.Errorf("DurationSeconds = %d, want 10", settings.DurationSeconds)
	}
	if settings.Description != "Test scenario" {
		t.Errorf("Description = %s, want 'Test scenario'", settings.Description)
	}
	if settings.Extra["key"] != "value" {
		t.Error("Extra map not set correctly")
	}
}
