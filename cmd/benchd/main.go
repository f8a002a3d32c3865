// Command benchd runs the virtual vehicle test bench: it wires the plants
// and ECUs onto one Engine and exposes a read-mostly inspection HTTP API
// (SPEC_FULL.md §6) for external scenario drivers and report tools.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vvtb/bench/infrastructure/config"
	"github.com/vvtb/bench/infrastructure/logging"
)

func main() {
	addr := flag.String("addr", ":8090", "inspection API listen address")
	nvmPath := flag.String("nvm", "body_nvm.json", "Body ECU NVM persistence file")
	scenarioDir := flag.String("scenario-dir", "scenario/scripts", "directory scenario scripts are resolved against")
	authSecret := flag.String("auth-secret", os.Getenv("BENCH_AUTH_SECRET"), "HMAC secret for bearer tokens on mutating endpoints")
	flag.Parse()

	if *authSecret == "" {
		fmt.Fprintln(os.Stderr, "benchd: -auth-secret (or BENCH_AUTH_SECRET) is required")
		os.Exit(1)
	}

	log := logging.NewFromEnv("benchd")
	entry := logrus.NewEntry(log.Logger)

	eng := newBench(entry, *nvmPath)
	scenarios := config.LoadScenariosConfigOrDefault()

	server := &benchServer{
		eng:       eng,
		log:       log,
		scenarios: scenarios,
		scriptDir: *scenarioDir,
	}

	router := newRouter(server, log, []byte(*authSecret))
	httpServer := &http.Server{
		Addr:         *addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		entry.WithField("addr", *addr).Info("benchd listening")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			entry.WithError(err).Fatal("inspection server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		entry.WithError(err).Error("graceful shutdown failed")
	}
}
