// Package snippet converts a described HTTP request into ready-to-use code
// for a range of languages and HTTP client libraries.
//
// A Snippet is built from a HAR request object, a HAR log (the first entry is
// used) or an OpenAPI 2.0/3.x document (the first operation is used):
//
//	s, err := snippet.New(doc)
//	if err != nil {
//	    return err
//	}
//	code, err := s.Convert("shell", "curl")
package snippet

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// MultipartBoundary is the boundary used when rendering multipart bodies.
const MultipartBoundary = "---011000010111000001101001"

// Snippet holds a normalized request ready for conversion.
type Snippet struct {
	request Request

	method      string
	httpVersion string
	url         *url.URL // without query string
	query       []NameValue
	headers     []NameValue
	mimeType    string
	body        string
	params      []Param
}

// New builds a Snippet from a decoded source document.
func New(doc any) (*Snippet, error) {
	if doc == nil {
		return nil, errors.New("source document is empty")
	}

	raw, data, err := normalizeDocument(doc)
	if err != nil {
		return nil, err
	}

	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, errors.New("source document must be a JSON object")
	}

	var req Request
	switch {
	case isOpenAPI(obj):
		req, err = requestFromOpenAPI(data)
	case obj["log"] != nil:
		req, err = requestFromLog(obj["log"])
	default:
		req, err = decodeRequest(obj)
	}
	if err != nil {
		return nil, err
	}

	return prepare(req)
}

// Request returns a copy of the request the snippet was built from.
func (s *Snippet) Request() Request {
	return s.request
}

// Convert renders the request for the given target and client. An empty
// client selects the target's default client.
func (s *Snippet) Convert(target, client string) (string, error) {
	def, ok := lookupTarget(target)
	if !ok {
		return "", fmt.Errorf("unknown target %q", target)
	}

	gen, err := def.generatorFor(client)
	if err != nil {
		return "", err
	}

	return gen(s), nil
}

func requestFromLog(v any) (Request, error) {
	log, ok := v.(map[string]any)
	if !ok {
		return Request{}, errors.New("invalid HAR log: log must be an object")
	}

	entries, ok := log["entries"].([]any)
	if !ok || len(entries) == 0 {
		return Request{}, errors.New("invalid HAR log: no entries")
	}

	entry, ok := entries[0].(map[string]any)
	if !ok {
		return Request{}, errors.New("invalid HAR log: entry must be an object")
	}

	return decodeRequest(entry["request"])
}

func prepare(req Request) (*Snippet, error) {
	method := strings.ToUpper(strings.TrimSpace(req.Method))
	if method == "" || strings.ContainsAny(method, " \t\r\n") {
		return nil, fmt.Errorf("invalid HTTP method %q", req.Method)
	}

	u, err := url.Parse(strings.TrimSpace(req.URL))
	if err != nil {
		return nil, fmt.Errorf("invalid url %q: %w", req.URL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("url %q must be an absolute http(s) URL", req.URL)
	}

	s := &Snippet{
		request:     req,
		method:      method,
		httpVersion: req.HTTPVersion,
	}
	if s.httpVersion == "" {
		s.httpVersion = "HTTP/1.1"
	}

	s.query = append(parseQuery(u.RawQuery), req.QueryString...)
	u.RawQuery = ""
	u.Fragment = ""
	s.url = u

	s.headers = append(s.headers, req.Headers...)
	if len(req.Cookies) > 0 {
		if _, ok := s.header("cookie"); !ok {
			pairs := make([]string, 0, len(req.Cookies))
			for _, c := range req.Cookies {
				pairs = append(pairs, url.QueryEscape(c.Name)+"="+url.QueryEscape(c.Value))
			}
			s.headers = append(s.headers, NameValue{Name: "cookie", Value: strings.Join(pairs, "; ")})
		}
	}

	if pd := req.PostData; pd != nil {
		s.mimeType = pd.MimeType
		s.body = pd.Text

		switch {
		case strings.HasPrefix(pd.MimeType, "application/x-www-form-urlencoded") && len(pd.Params) > 0:
			s.params = pd.Params
			s.body = encodeForm(pd.Params)
		case strings.HasPrefix(pd.MimeType, "multipart/form-data") && len(pd.Params) > 0:
			s.params = pd.Params
			s.mimeType = "multipart/form-data; boundary=" + MultipartBoundary
			s.body = encodeMultipart(pd.Params)
		}

		if _, ok := s.header("content-type"); !ok && s.mimeType != "" {
			s.headers = append(s.headers, NameValue{Name: "content-type", Value: s.mimeType})
		} else if ok && strings.HasPrefix(pd.MimeType, "multipart/form-data") && len(pd.Params) > 0 {
			s.setHeader("content-type", s.mimeType)
		}
	}

	return s, nil
}

// fullURL returns the request URL including the query string.
func (s *Snippet) fullURL() string {
	if len(s.query) == 0 {
		return s.url.String()
	}
	return s.url.String() + "?" + s.rawQuery()
}

func (s *Snippet) rawQuery() string {
	parts := make([]string, 0, len(s.query))
	for _, q := range s.query {
		parts = append(parts, url.QueryEscape(q.Name)+"="+url.QueryEscape(q.Value))
	}
	return strings.Join(parts, "&")
}

// uri returns the path plus query string as sent on the request line.
func (s *Snippet) uri() string {
	path := s.url.EscapedPath()
	if path == "" {
		path = "/"
	}
	if len(s.query) == 0 {
		return path
	}
	return path + "?" + s.rawQuery()
}

func (s *Snippet) hasBody() bool {
	return s.body != ""
}

// hasJSONBody reports whether the body is well-formed JSON declared as such.
func (s *Snippet) hasJSONBody() bool {
	return s.hasBody() && isJSON(s.mimeType) && json.Valid([]byte(s.body))
}

func (s *Snippet) isMultipart() bool {
	return strings.HasPrefix(s.mimeType, "multipart/form-data") && len(s.params) > 0
}

func (s *Snippet) isForm() bool {
	return strings.HasPrefix(s.mimeType, "application/x-www-form-urlencoded") && len(s.params) > 0
}

func (s *Snippet) header(name string) (string, bool) {
	for _, h := range s.headers {
		if strings.EqualFold(h.Name, name) {
			return h.Value, true
		}
	}
	return "", false
}

func (s *Snippet) setHeader(name, value string) {
	for i, h := range s.headers {
		if strings.EqualFold(h.Name, name) {
			s.headers[i].Value = value
			return
		}
	}
	s.headers = append(s.headers, NameValue{Name: name, Value: value})
}

// headersWithout returns the headers minus the named ones.
func (s *Snippet) headersWithout(names ...string) []NameValue {
	out := make([]NameValue, 0, len(s.headers))
next:
	for _, h := range s.headers {
		for _, n := range names {
			if strings.EqualFold(h.Name, n) {
				continue next
			}
		}
		out = append(out, h)
	}
	return out
}

// parseQuery splits a raw query string preserving parameter order.
func parseQuery(raw string) []NameValue {
	if raw == "" {
		return nil
	}

	var out []NameValue
	for _, part := range strings.Split(raw, "&") {
		if part == "" {
			continue
		}
		name, value, _ := strings.Cut(part, "=")
		if n, err := url.QueryUnescape(name); err == nil {
			name = n
		}
		if v, err := url.QueryUnescape(value); err == nil {
			value = v
		}
		out = append(out, NameValue{Name: name, Value: value})
	}
	return out
}

func encodeForm(params []Param) string {
	parts := make([]string, 0, len(params))
	for _, p := range params {
		parts = append(parts, url.QueryEscape(p.Name)+"="+url.QueryEscape(p.Value))
	}
	return strings.Join(parts, "&")
}

func encodeMultipart(params []Param) string {
	var b strings.Builder
	for _, p := range params {
		b.WriteString("--" + MultipartBoundary + "\r\n")
		b.WriteString(`Content-Disposition: form-data; name="` + p.Name + `"`)
		if p.FileName != "" {
			b.WriteString(`; filename="` + p.FileName + `"`)
		}
		b.WriteString("\r\n")
		if p.ContentType != "" {
			b.WriteString("Content-Type: " + p.ContentType + "\r\n")
		}
		b.WriteString("\r\n")
		b.WriteString(p.Value)
		b.WriteString("\r\n")
	}
	b.WriteString("--" + MultipartBoundary + "--\r\n")
	return b.String()
}

// queryMap groups query parameters by name, keeping the first-seen order of names.
func (s *Snippet) queryMap() ([]string, map[string][]string) {
	var order []string
	values := make(map[string][]string)
	for _, q := range s.query {
		if _, ok := values[q.Name]; !ok {
			order = append(order, q.Name)
		}
		values[q.Name] = append(values[q.Name], q.Value)
	}
	return order, values
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
