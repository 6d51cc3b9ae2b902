package service

import (
	"context"

	"github.com/apiembed/apiembed/internal/targets"
	"github.com/apiembed/apiembed/pkg/snippet"
)

// EmbedService defines the interface for snippet embedding operations
type EmbedService interface {
	// Generate fetches the source document and converts it for every target
	// selected by targetSpec
	Generate(ctx context.Context, source, targetSpec string) (Output, error)
	// Targets returns the raw target listing
	Targets() []snippet.Target
	// Registry returns the target lookup tables built at startup
	Registry() *targets.Registry
}

// Fetcher loads a source document as structured data
type Fetcher interface {
	Fetch(ctx context.Context, url string) (any, error)
}

// Result is the generated output of one target. Snippet is set for
// clientless targets, Clients for targets with clients.
type Result struct {
	Snippet string            `json:"snippet,omitempty"`
	Clients map[string]string `json:"clients,omitempty"`
}

// Output maps target keys to their generated snippets, keyed like the
// selection it was produced from.
type Output map[string]Result

// Len returns the number of generated snippets.
func (o Output) Len() int {
	n := 0
	for _, r := range o {
		if r.Clients != nil {
			n += len(r.Clients)
		} else {
			n++
		}
	}
	return n
}
