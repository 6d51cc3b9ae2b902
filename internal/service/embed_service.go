package service

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strings"

	"github.com/apiembed/apiembed/internal/apierror"
	"github.com/apiembed/apiembed/internal/targets"
	"github.com/apiembed/apiembed/pkg/snippet"
)

// embedServiceImpl implements the EmbedService interface
type embedServiceImpl struct {
	registry *targets.Registry
	fetcher  Fetcher
	debug    bool
}

// Option configures the embed service
type Option func(*embedServiceImpl)

// WithDebug enables request-path logging
func WithDebug(debug bool) Option {
	return func(s *embedServiceImpl) {
		s.debug = debug
	}
}

// NewEmbedService creates a new embed service over an immutable registry
//
//nolint:ireturn // Factory function intentionally returns interface for dependency injection
func NewEmbedService(registry *targets.Registry, fetcher Fetcher, opts ...Option) EmbedService {
	s := &embedServiceImpl{
		registry: registry,
		fetcher:  fetcher,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Generate runs fetch, parse, select and convert for one request
func (s *embedServiceImpl) Generate(ctx context.Context, source, targetSpec string) (Output, error) {
	decoded, err := url.PathUnescape(source)
	if err != nil || strings.TrimSpace(decoded) == "" {
		return nil, apierror.InvalidInput("Invalid input")
	}
	if strings.TrimSpace(targetSpec) == "" {
		targetSpec = targets.All
	}

	s.debugf("received request for source: %s & targets: %s", decoded, targetSpec)

	doc, err := s.fetcher.Fetch(ctx, decoded)
	if err != nil {
		s.debugf("failed to load source %s: %v", decoded, err)
		if apierror.IsKind(err, apierror.KindSourceUnreachable) || apierror.IsKind(err, apierror.KindInvalidSource) {
			return nil, err
		}
		return nil, apierror.SourceUnreachable(err)
	}

	snip, err := snippet.New(doc)
	if err != nil {
		s.debugf("failed to generate snippet object: %v", err)
		return nil, apierror.InvalidDescription(err)
	}

	selection := targets.Select(targetSpec, s.registry.Availability())

	output, err := convert(snip, selection)
	if err != nil {
		return nil, apierror.Internal(err)
	}

	if len(output) == 0 {
		s.debugf("no matching targets found")
		return nil, apierror.InvalidTargets()
	}

	return output, nil
}

// Targets returns the raw target listing
func (s *embedServiceImpl) Targets() []snippet.Target {
	return s.registry.Listing()
}

// Registry returns the target lookup tables
func (s *embedServiceImpl) Registry() *targets.Registry {
	return s.registry
}

func (s *embedServiceImpl) debugf(format string, args ...any) {
	if s.debug {
		log.Printf("apiembed: "+format, args...)
	}
}

func convert(snip *snippet.Snippet, selection targets.Selection) (Output, error) {
	output := make(Output, len(selection))
	for target, entry := range selection {
		if !entry.HasClients() {
			code, err := snip.Convert(target, "")
			if err != nil {
				return nil, fmt.Errorf("converting %s: %w", target, err)
			}
			output[target] = Result{Snippet: code}
			continue
		}

		clients := make(map[string]string, len(entry.Clients))
		for _, client := range selection.Clients(target) {
			code, err := snip.Convert(target, client)
			if err != nil {
				return nil, fmt.Errorf("converting %s:%s: %w", target, client, err)
			}
			clients[client] = code
		}
		output[target] = Result{Clients: clients}
	}
	return output, nil
}
