package v0_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	v0 "github.com/apiembed/apiembed/internal/api/handlers/v0"
	"github.com/apiembed/apiembed/internal/service"
	"github.com/apiembed/apiembed/internal/source"
	"github.com/apiembed/apiembed/internal/targets"
	"github.com/apiembed/apiembed/internal/view"
	"github.com/apiembed/apiembed/pkg/snippet"
)

const documentationLink = `please review the <a href="/" target="_top">documentation</a> and try again`

func newEmbedMux(t *testing.T, embed service.EmbedService) *http.ServeMux {
	t.Helper()

	renderer, err := view.New(view.Options{})
	require.NoError(t, err)

	mux := http.NewServeMux()
	api := humago.New(mux, huma.DefaultConfig("Test API", "1.0.0"))
	v0.RegisterEmbedEndpoint(api, embed, renderer, nil)
	return mux
}

func embedURL(src, targetSpec string) string {
	q := url.Values{}
	if src != "" {
		q.Set("source", src)
	}
	if targetSpec != "" {
		q.Set("targets", targetSpec)
	}
	return "/?" + q.Encode()
}

func TestEmbedEndpoint(t *testing.T) {
	testCases := []struct {
		name        string
		url         string
		contains    []string
		notContains []string
	}{
		{
			name:     "renders selected client",
			url:      embedURL(service.FakeHARSource, "shell:curl"),
			contains: []string{`data-target="shell"`, "curl --request POST", `<strong>cURL</strong>`},
			notContains: []string{
				`data-target="node"`,
				"httpie",
			},
		},
		{
			name:     "defaults to all targets",
			url:      embedURL(service.FakeOpenAPISource, ""),
			contains: []string{`data-target="shell"`, `data-target="node"`, `data-target="go"`, `data-target="http"`, "GET /status HTTP/1.1"},
		},
		{
			name:     "missing source",
			url:      "/",
			contains: []string{"Invalid input", documentationLink},
		},
		{
			name:     "unreachable source",
			url:      embedURL("https://example.com/missing.json", ""),
			contains: []string{"Could not load JSON source", documentationLink},
		},
		{
			name:     "invalid targets",
			url:      embedURL(service.FakeHARSource, "nonexistent_target"),
			contains: []string{"Invalid Targets", documentationLink},
		},
	}

	mux := newEmbedMux(t, service.NewFakeEmbedService())

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tc.url, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			// errors never change the status code
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))

			body := w.Body.String()
			for _, s := range tc.contains {
				assert.Contains(t, body, s)
			}
			for _, s := range tc.notContains {
				assert.NotContains(t, body, s)
			}
		})
	}
}

func TestEmbedEndpoint_SourceNotFound(t *testing.T) {
	upstream := httptest.NewServer(http.NotFoundHandler())
	defer upstream.Close()

	registry, err := targets.NewRegistry(snippet.AvailableTargets())
	require.NoError(t, err)
	mux := newEmbedMux(t, service.NewEmbedService(registry, source.NewFetcher(nil)))

	req := httptest.NewRequest(http.MethodGet, embedURL(upstream.URL+"/spec.json", "all"), nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Could not load JSON source")
}

func TestEmbedEndpoint_UnknownPath(t *testing.T) {
	mux := newEmbedMux(t, service.NewFakeEmbedService())

	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
