package main

import (
	"github.com/gorilla/mux"

	"github.com/vvtb/bench/infrastructure/logging"
)

// newRouter builds the inspection HTTP API (SPEC_FULL.md §6): a gorilla/mux
// router grounded on the teacher's infrastructure/service/runner.go Router()
// convention, at bench scale rather than the teacher's multi-service one.
// The server only ever reads the engine or drives it through the scenario
// runner/fault injector — it never registers itself as a bus node.
func newRouter(b *benchServer, log *logging.Logger, authSecret []byte) *mux.Router {
	r := mux.NewRouter()
	r.Use(recoveryMiddleware(log))
	r.Use(loggingMiddleware(log))

	r.HandleFunc("/healthz", b.handleHealthz).Methods("GET")

	api := r.PathPrefix("/v1/bench").Subrouter()
	api.HandleFunc("/modules", b.handleModules).Methods("GET")
	api.HandleFunc("/log", b.handleLog).Methods("GET")
	api.HandleFunc("/log/query", b.handleLogQuery).Methods("GET")

	auth := api.NewRoute().Subrouter()
	auth.Use(requireAuth(authSecret))
	auth.HandleFunc("/faults", b.handleFaults).Methods("POST")
	auth.HandleFunc("/scenario", b.handleScenario).Methods("POST")

	return r
}
