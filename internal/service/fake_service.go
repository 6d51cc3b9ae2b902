package service

import (
	"context"
	"fmt"

	"github.com/apiembed/apiembed/internal/apierror"
	"github.com/apiembed/apiembed/internal/targets"
	"github.com/apiembed/apiembed/pkg/snippet"
)

// Source URLs served by the fake service
const (
	FakeHARSource     = "https://example.com/har.json"
	FakeOpenAPISource = "https://example.com/openapi.json"
)

// staticFetcher serves pre-populated documents keyed by URL
type staticFetcher map[string]any

func (f staticFetcher) Fetch(_ context.Context, url string) (any, error) {
	doc, ok := f[url]
	if !ok {
		return nil, apierror.SourceUnreachable(fmt.Errorf("fetching %s: received status 404", url))
	}
	return doc, nil
}

// NewFakeEmbedService creates an embed service over the full snippet target
// listing that resolves sources from memory instead of the network
func NewFakeEmbedService() EmbedService {
	registry, err := targets.NewRegistry(snippet.AvailableTargets())
	if err != nil {
		panic(err)
	}

	docs := staticFetcher{
		FakeHARSource: map[string]any{
			"method": "POST",
			"url":    "https://api.example.com/users",
			"headers": []any{
				map[string]any{"name": "accept", "value": "application/json"},
			},
			"postData": map[string]any{
				"mimeType": "application/json",
				"text":     `{"name":"Ada"}`,
			},
		},
		FakeOpenAPISource: map[string]any{
			"openapi": "3.0.3",
			"info":    map[string]any{"title": "Status", "version": "1.0.0"},
			"servers": []any{map[string]any{"url": "https://status.example.com"}},
			"paths": map[string]any{
				"/status": map[string]any{
					"get": map[string]any{
						"responses": map[string]any{"200": map[string]any{"description": "ok"}},
					},
				},
			},
		},
	}

	return NewEmbedService(registry, docs)
}
