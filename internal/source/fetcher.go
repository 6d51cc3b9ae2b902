// Package source fetches remote API description documents and decodes them
// into structured data.
package source

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/apiembed/apiembed/internal/apierror"
)

const userAgent = "apiembed/1.0 (+https://github.com/apiembed/apiembed)"

// Config configures a Fetcher.
type Config struct {
	Timeout  time.Duration
	MaxBytes int64
}

// DefaultConfig returns the fetcher defaults.
func DefaultConfig() *Config {
	return &Config{
		Timeout:  10 * time.Second,
		MaxBytes: 5 << 20,
	}
}

// Fetcher retrieves source documents over HTTP.
type Fetcher struct {
	client   *http.Client
	maxBytes int64
}

// Option configures a Fetcher
type Option func(*Fetcher)

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(client *http.Client) Option {
	return func(f *Fetcher) {
		f.client = client
	}
}

// NewFetcher creates a fetcher with secure transport defaults.
func NewFetcher(cfg *Config, opts ...Option) *Fetcher {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	f := &Fetcher{
		client: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
				TLSClientConfig: &tls.Config{
					MinVersion: tls.VersionTLS12,
				},
				ResponseHeaderTimeout: cfg.Timeout,
				IdleConnTimeout:       30 * time.Second,
			},
		},
		maxBytes: cfg.MaxBytes,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// Fetch loads the document at rawURL. Transport failures and non-2xx
// responses are source-unreachable errors; undecodable bodies are
// invalid-source errors.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (any, error) {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, apierror.SourceUnreachable(fmt.Errorf("unsupported source URL %q", rawURL))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, apierror.SourceUnreachable(fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, apierror.SourceUnreachable(fmt.Errorf("failed to fetch %s: %w", rawURL, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, apierror.SourceUnreachable(fmt.Errorf("fetching %s: received status %d", rawURL, resp.StatusCode))
	}

	body, err := f.readBody(resp.Body)
	if err != nil {
		return nil, err
	}

	doc, err := Decode(body, resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, apierror.InvalidSourceFormat(err)
	}
	return doc, nil
}

func (f *Fetcher) readBody(r io.Reader) ([]byte, error) {
	if f.maxBytes <= 0 {
		body, err := io.ReadAll(r)
		if err != nil {
			return nil, apierror.SourceUnreachable(fmt.Errorf("failed to read response body: %w", err))
		}
		return body, nil
	}

	body, err := io.ReadAll(io.LimitReader(r, f.maxBytes+1))
	if err != nil {
		return nil, apierror.SourceUnreachable(fmt.Errorf("failed to read response body: %w", err))
	}
	if int64(len(body)) > f.maxBytes {
		return nil, apierror.InvalidSourceFormat(fmt.Errorf("source exceeds %d bytes", f.maxBytes))
	}
	return body, nil
}

// Decode parses body as YAML when contentType declares YAML and as JSON
// otherwise.
func Decode(body []byte, contentType string) (any, error) {
	if isYAML(contentType) {
		return decodeYAML(body)
	}
	return decodeJSON(body)
}

func decodeJSON(body []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	if dec.More() {
		return nil, errors.New("failed to parse JSON: trailing data after document")
	}
	return doc, nil
}

func decodeYAML(body []byte) (any, error) {
	var doc any
	if err := yaml.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if doc == nil {
		return nil, errors.New("failed to parse YAML: empty document")
	}
	return stringKeys(doc), nil
}

// stringKeys rewrites mappings with non-string keys, such as unquoted
// response codes, into string-keyed maps so the tree encodes as JSON.
func stringKeys(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, val := range t {
			t[k] = stringKeys(val)
		}
		return t
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = stringKeys(val)
		}
		return out
	case []any:
		for i, val := range t {
			t[i] = stringKeys(val)
		}
		return t
	default:
		return v
	}
}

func isYAML(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	switch mediaType {
	case "application/yaml", "application/x-yaml", "text/yaml", "text/x-yaml":
		return true
	}
	return strings.HasSuffix(mediaType, "+yaml")
}
