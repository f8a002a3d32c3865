// Command benchctl is a thin HTTP client for a running benchd, grounded on
// the teacher's cmd/slctl CLI shape (global flag.FlagSet, an apiClient with
// bearer-token injection, pretty-printed JSON responses) at bench scale.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

func main() {
	if err := run(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	defaultAddr := getenv("BENCH_ADDR", "http://localhost:8090")
	defaultToken := os.Getenv("BENCH_TOKEN")

	root := flag.NewFlagSet("benchctl", flag.ContinueOnError)
	root.SetOutput(io.Discard)
	addrFlag := root.String("addr", defaultAddr, "benchd base URL (env BENCH_ADDR)")
	tokenFlag := root.String("token", defaultToken, "bearer token for mutating endpoints (env BENCH_TOKEN)")
	timeoutFlag := root.Duration("timeout", 15*time.Second, "HTTP request timeout")
	if err := root.Parse(args); err != nil {
		return usageError(err)
	}

	remaining := root.Args()
	if len(remaining) == 0 {
		return usageError(errors.New("no command specified"))
	}

	client := &apiClient{
		baseURL: strings.TrimRight(*addrFlag, "/"),
		token:   strings.TrimSpace(*tokenFlag),
		http:    &http.Client{Timeout: *timeoutFlag},
	}

	switch remaining[0] {
	case "health":
		return handleHealth(ctx, client)
	case "modules":
		return handleModules(ctx, client)
	case "log":
		return handleLog(ctx, client, remaining[1:])
	case "faults":
		return handleFaults(ctx, client, remaining[1:])
	case "scenario":
		return handleScenario(ctx, client, remaining[1:])
	case "help", "-h", "--help":
		printRootUsage()
		return nil
	default:
		return usageError(fmt.Errorf("unknown command %q", remaining[0]))
	}
}

func usageError(err error) error {
	printRootUsage()
	return err
}

func printRootUsage() {
	fmt.Println(`benchctl — virtual vehicle test bench inspection client

Usage:
  benchctl [global flags] <command> [flags]

Global Flags:
  --addr       benchd base URL (env BENCH_ADDR, default http://localhost:8090)
  --token      bearer token for faults/scenario (env BENCH_TOKEN)
  --timeout    HTTP timeout (default 15s)

Commands:
  health                         Show /healthz status and current tick
  modules                        List registered plant/ECU node names
  log [--query path]             Fetch the bus log, or a gjson path query
  faults --spec '[...]'          Replace the active fault injector (JSON fault list)
  scenario --name NAME           Run a named scenario to completion`)
}

type apiClient struct {
	baseURL string
	token   string
	http    *http.Client
}

func (c *apiClient) request(ctx context.Context, method, path string, payload any) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode payload: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%s %s: %s (status %d)", method, path, strings.TrimSpace(string(data)), resp.StatusCode)
	}
	return data, nil
}

func prettyPrint(data []byte) {
	if len(data) == 0 {
		fmt.Println("(empty)")
		return
	}
	var dst bytes.Buffer
	if err := json.Indent(&dst, data, "", "  "); err != nil {
		fmt.Println(string(data))
		return
	}
	fmt.Println(dst.String())
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func handleHealth(ctx context.Context, client *apiClient) error {
	data, err := client.request(ctx, http.MethodGet, "/healthz", nil)
	if err != nil {
		return err
	}
	prettyPrint(data)
	return nil
}

func handleModules(ctx context.Context, client *apiClient) error {
	data, err := client.request(ctx, http.MethodGet, "/v1/bench/modules", nil)
	if err != nil {
		return err
	}
	prettyPrint(data)
	return nil
}

func handleLog(ctx context.Context, client *apiClient, args []string) error {
	fs := flag.NewFlagSet("log", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	query := fs.String("query", "", "gjson path to query instead of the full log, e.g. 'log.#(ID==\"BRAKE_CMD\")#'")
	if err := fs.Parse(args); err != nil {
		return usageError(err)
	}

	path := "/v1/bench/log"
	if *query != "" {
		path = "/v1/bench/log/query?path=" + url.QueryEscape(*query)
	}
	data, err := client.request(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	prettyPrint(data)
	return nil
}

func handleFaults(ctx context.Context, client *apiClient, args []string) error {
	fs := flag.NewFlagSet("faults", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	spec := fs.String("spec", "[]", `JSON fault list, e.g. '[{"kind":"DROP","target":"RADAR_OBJECTS","duration":5}]'`)
	if err := fs.Parse(args); err != nil {
		return usageError(err)
	}

	var faults []map[string]any
	if err := json.Unmarshal([]byte(*spec), &faults); err != nil {
		return fmt.Errorf("parse --spec: %w", err)
	}

	data, err := client.request(ctx, http.MethodPost, "/v1/bench/faults", map[string]any{"faults": faults})
	if err != nil {
		return err
	}
	prettyPrint(data)
	return nil
}

func handleScenario(ctx context.Context, client *apiClient, args []string) error {
	fs := flag.NewFlagSet("scenario", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	name := fs.String("name", "", "scenario name from the scenarios registry")
	if err := fs.Parse(args); err != nil {
		return usageError(err)
	}
	if *name == "" {
		return errors.New("--name is required")
	}

	data, err := client.request(ctx, http.MethodPost, "/v1/bench/scenario", map[string]any{"name": *name})
	if err != nil {
		return err
	}
	prettyPrint(data)
	return nil
}
