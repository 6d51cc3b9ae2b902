// validate-examples checks that every sample source document in examples/
// is accepted by the snippet library and converts for every target.
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/apiembed/apiembed/internal/source"
	"github.com/apiembed/apiembed/pkg/snippet"
)

const (
	// expectedExampleCount is the number of sample documents we expect to find in examples/
	// IMPORTANT: Only change this count if you have intentionally added or removed examples.
	expectedExampleCount = 5
)

func main() {
	log.SetFlags(0) // Remove timestamp from logs

	dir := "examples"
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}

	if err := runValidation(dir); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func runValidation(dir string) error {
	paths, err := findExamples(dir)
	if err != nil {
		return fmt.Errorf("failed to find examples: %w", err)
	}

	log.Printf("Found %d examples in %s\n", len(paths), dir)

	if len(paths) != expectedExampleCount {
		return fmt.Errorf("expected %d examples but found %d - if this is intentional, update expectedExampleCount in %s",
			expectedExampleCount, len(paths), "tools/validate-examples/main.go")
	}

	log.Println()

	validatedCount := 0
	for _, path := range paths {
		log.Printf("%s:", filepath.Base(path))

		if validateExample(path) {
			validatedCount++
		}

		log.Println()
	}

	if validatedCount != len(paths) {
		return fmt.Errorf("validation failed: expected %d examples to pass but only %d did", len(paths), validatedCount)
	}

	log.Printf("Successfully validated all %d examples!", validatedCount)
	return nil
}

func findExamples(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".json", ".yaml", ".yml":
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(paths)
	return paths, nil
}

func contentType(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "application/yaml"
	default:
		return "application/json"
	}
}

func validateExample(path string) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("  Reading: ❌ %v", err)
		return false
	}

	doc, err := source.Decode(data, contentType(path))
	if err != nil {
		log.Printf("  Decoding: ❌ %v", err)
		return false
	}

	s, err := snippet.New(doc)
	if err != nil {
		log.Printf("  Building request: ❌ %v", err)
		return false
	}
	req := s.Request()
	log.Printf("  Building request: ✅ %s %s", req.Method, req.URL)

	ok := true
	for _, target := range snippet.AvailableTargets() {
		clients := []string{""}
		if target.Clients != nil {
			clients = clients[:0]
			for _, c := range target.Clients {
				clients = append(clients, c.Key)
			}
		}

		for _, client := range clients {
			name := target.Key
			if client != "" {
				name += ":" + client
			}
			out, err := s.Convert(target.Key, client)
			if err != nil || strings.TrimSpace(out) == "" {
				log.Printf("  Converting %s: ❌ %v", name, err)
				ok = false
			}
		}
	}

	if ok {
		log.Printf("  Converting every target: ✅")
	}
	return ok
}
