// Package main prints the OpenAPI document of the apiembed HTTP API.
// Routes are registered against an in-memory embed service, so no network
// access or configuration is needed.
//
// Usage:
//
//	go run ./cmd/apiembed-openapi > openapi.json
//	go run ./cmd/apiembed-openapi -yaml > openapi.yaml
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"

	"go.opentelemetry.io/otel/metric/noop"
	"gopkg.in/yaml.v3"

	"github.com/apiembed/apiembed/internal/api/router"
	"github.com/apiembed/apiembed/internal/config"
	"github.com/apiembed/apiembed/internal/service"
	"github.com/apiembed/apiembed/internal/telemetry"
	"github.com/apiembed/apiembed/internal/view"
)

func main() {
	outputFile := flag.String("output", "", "Output file path (default: stdout)")
	outputYAML := flag.Bool("yaml", false, "Output as YAML instead of JSON")
	version := flag.String("api-version", "dev", "Version reported in the document")
	flag.Parse()

	renderer, err := view.New(view.Options{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading views: %v\n", err)
		os.Exit(1)
	}

	metrics, err := telemetry.NewMetrics(noop.NewMeterProvider().Meter(telemetry.Namespace))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error creating metrics: %v\n", err)
		os.Exit(1)
	}

	cfg := &config.Config{Version: *version}
	api := router.NewHumaAPI(cfg, service.NewFakeEmbedService(), renderer, http.NewServeMux(), metrics)

	spec := api.OpenAPI()

	var data []byte
	if *outputYAML {
		data, err = yaml.Marshal(spec)
	} else {
		data, err = json.MarshalIndent(spec, "", "  ")
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error marshaling OpenAPI spec: %v\n", err)
		os.Exit(1)
	}

	if *outputFile != "" {
		if err := os.WriteFile(*outputFile, data, 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "error writing to file: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "OpenAPI spec written to %s\n", *outputFile)
		return
	}
	fmt.Print(string(data))
}
