package source_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apiembed/apiembed/internal/apierror"
	"github.com/apiembed/apiembed/internal/source"
)

func TestFetch(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		contentType string
		body        string
		wantKind    apierror.Kind
		wantErr     bool
		check       func(t *testing.T, doc any)
	}{
		{
			name:        "json object",
			status:      http.StatusOK,
			contentType: "application/json",
			body:        `{"method": "GET", "url": "http://example.com", "headersSize": 10}`,
			check: func(t *testing.T, doc any) {
				m, ok := doc.(map[string]any)
				require.True(t, ok)
				assert.Equal(t, "GET", m["method"])
				assert.Equal(t, json.Number("10"), m["headersSize"])
			},
		},
		{
			name:        "json without content type",
			status:      http.StatusOK,
			contentType: "text/plain",
			body:        `{"url": "http://example.com"}`,
			check: func(t *testing.T, doc any) {
				assert.Equal(t, "http://example.com", doc.(map[string]any)["url"])
			},
		},
		{
			name:        "yaml document",
			status:      http.StatusOK,
			contentType: "application/yaml; charset=utf-8",
			body:        "openapi: 3.0.0\ninfo:\n  title: Pets\n  version: '1'\npaths: {}\n",
			check: func(t *testing.T, doc any) {
				assert.Equal(t, "3.0.0", doc.(map[string]any)["openapi"])
			},
		},
		{
			name:        "yaml with unquoted response codes",
			status:      http.StatusOK,
			contentType: "application/yaml",
			body:        "openapi: 3.0.3\npaths:\n  /s:\n    get:\n      responses:\n        200:\n          description: ok\n",
			check: func(t *testing.T, doc any) {
				_, err := json.Marshal(doc)
				require.NoError(t, err)

				get := doc.(map[string]any)["paths"].(map[string]any)["/s"].(map[string]any)["get"].(map[string]any)
				assert.Contains(t, get["responses"], "200")
			},
		},
		{
			name:        "created status is accepted",
			status:      http.StatusCreated,
			contentType: "application/json",
			body:        `{}`,
			check: func(t *testing.T, doc any) {
				assert.Equal(t, map[string]any{}, doc)
			},
		},
		{
			name:     "not found",
			status:   http.StatusNotFound,
			body:     `{"error": "missing"}`,
			wantErr:  true,
			wantKind: apierror.KindSourceUnreachable,
		},
		{
			name:     "server error",
			status:   http.StatusInternalServerError,
			wantErr:  true,
			wantKind: apierror.KindSourceUnreachable,
		},
		{
			name:        "invalid json",
			status:      http.StatusOK,
			contentType: "application/json",
			body:        `<html>not json</html>`,
			wantErr:     true,
			wantKind:    apierror.KindInvalidSource,
		},
		{
			name:        "trailing data",
			status:      http.StatusOK,
			contentType: "application/json",
			body:        `{} {}`,
			wantErr:     true,
			wantKind:    apierror.KindInvalidSource,
		},
		{
			name:        "invalid yaml",
			status:      http.StatusOK,
			contentType: "text/yaml",
			body:        "key: [unclosed",
			wantErr:     true,
			wantKind:    apierror.KindInvalidSource,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "application/json", r.Header.Get("Accept"))
				assert.Contains(t, r.Header.Get("User-Agent"), "apiembed")
				if tt.contentType != "" {
					w.Header().Set("Content-Type", tt.contentType)
				}
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			doc, err := source.NewFetcher(nil).Fetch(context.Background(), srv.URL)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apierror.IsKind(err, tt.wantKind), "got %v", err)
				assert.Nil(t, doc)
				return
			}
			require.NoError(t, err)
			tt.check(t, doc)
		})
	}
}

func TestFetch_SizeLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"padding": "` + strings.Repeat("x", 256) + `"}`))
	}))
	defer srv.Close()

	f := source.NewFetcher(&source.Config{Timeout: time.Second, MaxBytes: 64})
	_, err := f.Fetch(context.Background(), srv.URL)
	require.Error(t, err)
	assert.True(t, apierror.IsKind(err, apierror.KindInvalidSource))
	assert.Contains(t, err.Error(), "exceeds 64 bytes")
}

func TestFetch_UnsupportedURL(t *testing.T) {
	f := source.NewFetcher(nil)

	for _, raw := range []string{"ftp://example.com/spec.json", "not a url", "/relative/path", "http://"} {
		_, err := f.Fetch(context.Background(), raw)
		require.Error(t, err, raw)
		assert.True(t, apierror.IsKind(err, apierror.KindSourceUnreachable), raw)
	}
}

func TestFetch_ContextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := source.NewFetcher(nil).Fetch(ctx, srv.URL)
	require.Error(t, err)
	assert.True(t, apierror.IsKind(err, apierror.KindSourceUnreachable))
}

func TestFetch_WithHTTPClient(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok": true}`))
	}))
	defer srv.Close()

	f := source.NewFetcher(nil, source.WithHTTPClient(srv.Client()))
	doc, err := f.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"ok": true}, doc)
}

func TestDecode(t *testing.T) {
	doc, err := source.Decode([]byte("a: 1\nb: [x, y]\n"), "application/vnd.oai.openapi+yaml")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": 1, "b": []any{"x", "y"}}, doc)

	doc, err = source.Decode([]byte("responses:\n  200: ok\n  default: [{404: missing}]\n"), "text/yaml")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"responses": map[string]any{
			"200":     "ok",
			"default": []any{map[string]any{"404": "missing"}},
		},
	}, doc)
	_, err = json.Marshal(doc)
	require.NoError(t, err)

	_, err = source.Decode([]byte(""), "application/x-yaml")
	assert.Error(t, err)

	_, err = source.Decode([]byte("a: 1"), "application/json")
	assert.Error(t, err)
}
