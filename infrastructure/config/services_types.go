package config

// ScenarioSettings holds the configuration for a single named scenario
// loaded from scenarios.yaml.
type ScenarioSettings struct {
	// Enabled determines if the scenario is listed by EnabledScenarios.
	Enabled bool `yaml:"enabled" json:"enabled"`

	// DurationSeconds is the scenario's nominal run length; loading from YAML
	// requires it to be positive, and the scenario runner does not enforce it.
	DurationSeconds int `yaml:"duration_seconds" json:"duration_seconds"`

	// Description is a human-readable description.
	Description string `yaml:"description" json:"description"`

	// Extra holds any additional scenario-specific configuration.
	Extra map[string]any `yaml:"extra,omitempty" json:"extra,omitempty"`
}

// ScenariosConfig holds configuration for all known scenarios.
type ScenariosConfig struct {
	Scenarios map[string]*ScenarioSettings `yaml:"scenarios" json:"scenarios"`
}

// IsEnabled checks if a scenario is enabled in the configuration.
// Returns false if the scenario is not found in config.
func (c *ScenariosConfig) IsEnabled(scenarioID string) bool {
	if c == nil || c.Scenarios == nil {
		return false
	}
	settings, ok := c.Scenarios[scenarioID]
	if !ok {
		return false
	}
	return settings.Enabled
}

// GetSettings returns the settings for a scenario.
// Returns nil if the scenario is not found.
func (c *ScenariosConfig) GetSettings(scenarioID string) *ScenarioSettings {
	if c == nil || c.Scenarios == nil {
		return nil
	}
	return c.Scenarios[scenarioID]
}

// EnabledScenarios returns a list of enabled scenario IDs.
func (c *ScenariosConfig) EnabledScenarios() []string {
	if c == nil || c.Scenarios == nil {
		return nil
	}
	var enabled []string
	for id, settings := range c.Scenarios {
		if settings.Enabled {
			enabled = append(enabled, id)
		}
	}
	return enabled
}

// DisabledScenarios returns a list of disabled scenario IDs.
func (c *ScenariosConfig) DisabledScenarios() []string {
	if c == nil || c.Scenarios == nil {
		return nil
	}
	var disabled []string
	for id, settings := range c.Scenarios {
		if !settings.Enabled {
			disabled = append(disabled, id)
		}
	}
	return disabled
}
