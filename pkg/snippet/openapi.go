package snippet

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/erraggy/oastools/parser"
)

// defaultServerURL is used when an OpenAPI document declares no absolute server.
const defaultServerURL = "http://localhost"

// operationOrder decides which operation of a path is picked first.
var operationOrder = []string{"get", "post", "put", "patch", "delete", "head", "options", "trace"}

func isOpenAPI(obj map[string]any) bool {
	_, oas3 := obj["openapi"]
	_, oas2 := obj["swagger"]
	return oas3 || oas2
}

// requestFromOpenAPI builds a request for the first operation of an OpenAPI
// document. External references are never resolved.
func requestFromOpenAPI(data []byte) (Request, error) {
	result, err := parser.ParseWithOptions(
		parser.WithBytes(data),
		parser.WithResolveRefs(false),
	)
	if err != nil {
		return Request{}, fmt.Errorf("invalid OpenAPI document: %w", err)
	}
	if len(result.Errors) > 0 {
		return Request{}, fmt.Errorf("invalid OpenAPI document: %w", errors.Join(result.Errors...))
	}

	var (
		base  string
		paths parser.Paths
	)
	switch {
	case result.IsOAS3():
		doc, _ := result.OAS3Document()
		base = oas3BaseURL(doc.Servers)
		paths = doc.Paths
	case result.IsOAS2():
		doc, _ := result.OAS2Document()
		base = oas2BaseURL(doc)
		paths = doc.Paths
	default:
		return Request{}, fmt.Errorf("unsupported OpenAPI version %q", result.Version)
	}

	path, method, item, op := firstOperation(paths, result.OASVersion)
	if op == nil {
		return Request{}, errors.New("invalid OpenAPI document: no operations defined")
	}

	if result.IsOAS3() {
		if servers := op.Servers; len(servers) > 0 {
			base = oas3BaseURL(servers)
		} else if servers := item.Servers; len(servers) > 0 {
			base = oas3BaseURL(servers)
		}
	}

	req := Request{Method: strings.ToUpper(method)}

	for _, p := range mergeParameters(item.Parameters, op.Parameters) {
		value, ok := parameterValue(p)
		switch p.In {
		case parser.ParamInPath:
			if !ok {
				continue
			}
			path = strings.ReplaceAll(path, "{"+p.Name+"}", url.PathEscape(value))
		case parser.ParamInQuery:
			if ok || p.Required {
				req.QueryString = append(req.QueryString, NameValue{Name: p.Name, Value: value})
			}
		case parser.ParamInHeader:
			if ok || p.Required {
				req.Headers = append(req.Headers, NameValue{Name: p.Name, Value: value})
			}
		case parser.ParamInCookie:
			if ok || p.Required {
				req.Cookies = append(req.Cookies, NameValue{Name: p.Name, Value: value})
			}
		case parser.ParamInBody:
			if p.Schema != nil && p.Schema.Example != nil {
				req.PostData = &PostData{MimeType: "application/json", Text: exampleText(p.Schema.Example)}
			}
		case parser.ParamInFormData:
			if req.PostData == nil {
				req.PostData = &PostData{MimeType: "application/x-www-form-urlencoded"}
			}
			req.PostData.Params = append(req.PostData.Params, Param{Name: p.Name, Value: value})
		}
	}

	if op.RequestBody != nil && len(op.RequestBody.Content) > 0 {
		req.PostData = requestBodyData(op.RequestBody.Content)
	}

	req.URL = strings.TrimSuffix(base, "/") + path
	return req, nil
}

func firstOperation(paths parser.Paths, version parser.OASVersion) (string, string, *parser.PathItem, *parser.Operation) {
	keys := make([]string, 0, len(paths))
	for k := range paths {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, path := range keys {
		item := paths[path]
		if item == nil {
			continue
		}
		ops := parser.GetOperations(item, version)
		for _, method := range operationOrder {
			if op := ops[method]; op != nil {
				return path, method, item, op
			}
		}
	}
	return "", "", nil, nil
}

func oas3BaseURL(servers []*parser.Server) string {
	for _, s := range servers {
		if s == nil {
			continue
		}
		raw := s.URL
		for name, v := range s.Variables {
			raw = strings.ReplaceAll(raw, "{"+name+"}", v.Default)
		}
		if u, err := url.Parse(raw); err == nil && u.IsAbs() && u.Host != "" {
			return raw
		}
		if strings.HasPrefix(raw, "/") {
			return defaultServerURL + raw
		}
	}
	return defaultServerURL
}

func oas2BaseURL(doc *parser.OAS2Document) string {
	if doc.Host == "" {
		return defaultServerURL + doc.BasePath
	}
	scheme := "https"
	if len(doc.Schemes) > 0 {
		scheme = doc.Schemes[0]
		for _, s := range doc.Schemes {
			if s == "https" {
				scheme = s
				break
			}
		}
	}
	return scheme + "://" + doc.Host + doc.BasePath
}

// mergeParameters combines path-level and operation-level parameters; an
// operation parameter overrides a path parameter with the same name and location.
func mergeParameters(pathParams, opParams []*parser.Parameter) []*parser.Parameter {
	var out []*parser.Parameter
	index := make(map[string]int)
	for _, list := range [][]*parser.Parameter{pathParams, opParams} {
		for _, p := range list {
			if p == nil || p.Ref != "" || p.Name == "" {
				continue
			}
			key := p.In + ":" + p.Name
			if i, ok := index[key]; ok {
				out[i] = p
				continue
			}
			index[key] = len(out)
			out = append(out, p)
		}
	}
	return out
}

// parameterValue picks an example value for a parameter.
func parameterValue(p *parser.Parameter) (string, bool) {
	candidates := []any{p.Example}
	for _, k := range sortedKeys(p.Examples) {
		if ex := p.Examples[k]; ex != nil {
			candidates = append(candidates, ex.Value)
		}
	}
	if p.Schema != nil {
		candidates = append(candidates, p.Schema.Example, p.Schema.Default)
		if len(p.Schema.Examples) > 0 {
			candidates = append(candidates, p.Schema.Examples[0])
		}
	}
	candidates = append(candidates, p.Default)

	for _, c := range candidates {
		if c != nil {
			return scalarText(c), true
		}
	}
	return "", false
}

func requestBodyData(content map[string]*parser.MediaType) *PostData {
	mime := "application/json"
	if _, ok := content[mime]; !ok {
		mime = sortedKeys(content)[0]
	}

	pd := &PostData{MimeType: mime}
	media := content[mime]
	if media == nil {
		return pd
	}

	var example any
	switch {
	case media.Example != nil:
		example = media.Example
	case len(media.Examples) > 0:
		for _, k := range sortedKeys(media.Examples) {
			if ex := media.Examples[k]; ex != nil && ex.Value != nil {
				example = ex.Value
				break
			}
		}
	case media.Schema != nil && media.Schema.Example != nil:
		example = media.Schema.Example
	}
	if example != nil {
		pd.Text = exampleText(example)
	}
	return pd
}

func scalarText(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case map[string]any, []any:
		return exampleText(t)
	default:
		return fmt.Sprint(t)
	}
}

func exampleText(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(data)
}
