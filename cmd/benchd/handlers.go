package main

import (
	"encoding/json"
	"net/http"

	"github.com/tidwall/gjson"

	"github.com/vvtb/bench/core"
	"github.com/vvtb/bench/infrastructure/config"
	"github.com/vvtb/bench/infrastructure/logging"
	"github.com/vvtb/bench/scenario"
)

// benchServer binds the HTTP handlers to one running engine. It never
// registers on the bus itself — it only reads eng.Bus().Log(), calls
// eng.ModuleNames(), swaps the fault injector, or hands the engine to a
// scenario.Runner.
type benchServer struct {
	eng       *core.Engine
	log       *logging.Logger
	scenarios *config.ScenariosConfig
	scriptDir string
}

func (b *benchServer) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"tick":   b.eng.Tick(),
	})
}

func (b *benchServer) handleModules(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"modules": b.eng.ModuleNames(),
	})
}

func (b *benchServer) handleLog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"tick": b.eng.Tick(),
		"log":  b.eng.Bus().Log(),
	})
}

// handleLogQuery applies a gjson path expression (query param "path") to
// the JSON-rendered bus log, for ad hoc inspection without a full log
// download — e.g. "log.#(ID==\"BRAKE_CMD\")#".
func (b *benchServer) handleLogQuery(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		writeError(w, http.StatusBadRequest, "missing path query parameter")
		return
	}
	raw, err := json.Marshal(map[string]any{
		"tick": b.eng.Tick(),
		"log":  b.eng.Bus().Log(),
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "marshal bus log: "+err.Error())
		return
	}
	result := gjson.GetBytes(raw, path)
	if !result.Exists() {
		writeError(w, http.StatusNotFound, "path matched nothing")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(result.Raw))
}

// faultsRequest mirrors core.Fault but accepts the wire-friendly string
// shape gorilla/mux handlers normally decode JSON into.
type faultsRequest struct {
	Faults []struct {
		Kind     string `json:"kind"`
		Target   string `json:"target"`
		Duration int    `json:"duration"`
	} `json:"faults"`
}

// handleFaults replaces the engine's active fault injector in its entirety.
// Posting an empty faults list clears all active faults (spec.md §9).
func (b *benchServer) handleFaults(w http.ResponseWriter, r *http.Request) {
	var req faultsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "decode request: "+err.Error())
		return
	}

	injector := core.NewFaultInjector()
	for _, f := range req.Faults {
		injector.Inject(core.FaultKind(f.Kind), f.Target, f.Duration)
	}
	b.eng.Bus().SetFaultInjector(injector)
	b.log.WithContext(r.Context()).WithFields(map[string]interface{}{
		"fault_count": len(req.Faults),
	}).Info("fault injector replaced")

	writeJSON(w, http.StatusOK, map[string]any{"applied": len(req.Faults)})
}

type scenarioRequest struct {
	Name string `json:"name"`
}

// handleScenario resolves name against the scenario manifest registry,
// loads its script off disk, and runs it to completion on the bound
// engine, returning the resulting bus log and script console output.
func (b *benchServer) handleScenario(w http.ResponseWriter, r *http.Request) {
	var req scenarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "decode request: "+err.Error())
		return
	}

	manifest, err := scenario.LoadManifest(b.scenarios, req.Name, b.scriptDir)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	script, err := manifest.LoadScript()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	runner := scenario.NewRunner(b.eng)
	result, err := runner.Run(scenario.Request{Script: script, EntryPoint: manifest.EntryPoint})
	if err != nil {
		b.log.LogScenarioEvent(r.Context(), req.Name, "run_failed", err)
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	b.log.LogScenarioEvent(r.Context(), req.Name, "completed", nil)

	writeJSON(w, http.StatusOK, map[string]any{
		"ticks":   result.Ticks,
		"console": result.Logs,
		"log":     result.Log,
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": message})
}
