package snippet

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// NameValue is a HAR name/value record used for headers, query strings and cookies.
type NameValue struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Param is a single posted form field.
type Param struct {
	Name        string `json:"name"`
	Value       string `json:"value,omitempty"`
	FileName    string `json:"fileName,omitempty"`
	ContentType string `json:"contentType,omitempty"`
}

// PostData describes the body of a request.
type PostData struct {
	MimeType string  `json:"mimeType"`
	Text     string  `json:"text,omitempty"`
	Params   []Param `json:"params,omitempty"`
}

// Request is the HAR request object snippets are generated from.
type Request struct {
	Method      string      `json:"method"`
	URL         string      `json:"url"`
	HTTPVersion string      `json:"httpVersion,omitempty"`
	Headers     []NameValue `json:"headers,omitempty"`
	QueryString []NameValue `json:"queryString,omitempty"`
	Cookies     []NameValue `json:"cookies,omitempty"`
	PostData    *PostData   `json:"postData,omitempty"`
}

const harSchemaURL = "https://apiembed.dev/schemas/har-request.schema.json"

//go:embed har-request.schema.json
var harSchemaData []byte

var (
	harSchema     *jsonschema.Schema
	harSchemaOnce sync.Once
	harSchemaErr  error
)

func compileHARSchema() (*jsonschema.Schema, error) {
	harSchemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft7

		if err := compiler.AddResource(harSchemaURL, bytes.NewReader(harSchemaData)); err != nil {
			harSchemaErr = fmt.Errorf("add HAR schema resource: %w", err)
			return
		}

		harSchema, harSchemaErr = compiler.Compile(harSchemaURL)
		if harSchemaErr != nil {
			harSchemaErr = fmt.Errorf("compile HAR schema: %w", harSchemaErr)
		}
	})

	return harSchema, harSchemaErr
}

// decodeRequest validates a generic JSON value against the HAR request
// schema and decodes it into a Request.
func decodeRequest(v any) (Request, error) {
	schema, err := compileHARSchema()
	if err != nil {
		return Request{}, err
	}

	if err := schema.Validate(v); err != nil {
		return Request{}, fmt.Errorf("invalid HAR request: %w", err)
	}

	data, err := json.Marshal(v)
	if err != nil {
		return Request{}, fmt.Errorf("failed to encode HAR request: %w", err)
	}

	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return Request{}, fmt.Errorf("failed to decode HAR request: %w", err)
	}

	return req, nil
}

// normalizeDocument round-trips a structured value through encoding/json so
// that values decoded by other codecs (YAML, hand-built maps) have the same
// shape as ones produced by json.Unmarshal.
func normalizeDocument(doc any) (any, []byte, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, nil, fmt.Errorf("source is not representable as JSON: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var out any
	if err := dec.Decode(&out); err != nil {
		return nil, nil, fmt.Errorf("source is not representable as JSON: %w", err)
	}

	return out, data, nil
}
