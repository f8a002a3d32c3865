package scenario

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/vvtb/bench/infrastructure/config"
)

// Manifest resolves one scenario's script request from its
// config.ScenarioSettings.Extra fields, keeping the YAML-defined scenario
// registry (infrastructure/config/services.go) as the single source of
// truth for which scenarios exist and whether they're enabled.
type Manifest struct {
	ID         string
	Settings   *config.ScenarioSettings
	ScriptPath string
	EntryPoint string
}

// LoadManifest resolves scenario id against cfg, reading its script field
// (Extra["script"], relative to scriptDir) and optional entry_point
// (Extra["entry_point"], defaulting to "run").
func LoadManifest(cfg *config.ScenariosConfig, id string, scriptDir string) (*Manifest, error) {
	settings := cfg.GetSettings(id)
	if settings == nil {
		return nil, fmt.Errorf("scenario: unknown scenario %q", id)
	}
	scriptRel, _ := settings.Extra["script"].(string)
	if scriptRel == "" {
		return nil, fmt.Errorf("scenario: %q has no script field in its manifest", id)
	}
	entryPoint, _ := settings.Extra["entry_point"].(string)
	if entryPoint == "" {
		entryPoint = "run"
	}
	return &Manifest{
		ID:         id,
		Settings:   settings,
		ScriptPath: filepath.Join(scriptDir, scriptRel),
		EntryPoint: entryPoint,
	}, nil
}

// LoadScript reads the manifest's script file off disk.
func (m *Manifest) LoadScript() (string, error) {
	data, err := os.ReadFile(m.ScriptPath)
	if err != nil {
		return "", fmt.Errorf("scenario: read script %s: %w", m.ScriptPath, err)
	}
	return string(data), nil
}
