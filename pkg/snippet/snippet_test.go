package snippet_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apiembed/apiembed/pkg/snippet"
)

const postRequest = `{
	"method": "POST",
	"url": "https://api.example.com/users?page=2",
	"httpVersion": "HTTP/1.1",
	"queryString": [{"name": "limit", "value": "10"}],
	"headers": [{"name": "accept", "value": "application/json"}],
	"cookies": [{"name": "session", "value": "abc"}],
	"postData": {"mimeType": "application/json", "text": "{\"name\":\"Ada\"}"}
}`

func decode(t *testing.T, raw string) any {
	t.Helper()
	var v any
	require.NoError(t, json.Unmarshal([]byte(raw), &v))
	return v
}

func TestNew(t *testing.T) {
	tests := []struct {
		name        string
		doc         string
		wantErr     string
		wantMethod  string
		wantURL     string
	}{
		{
			name:       "HAR request",
			doc:        postRequest,
			wantMethod: "POST",
			wantURL:    "https://api.example.com/users?page=2",
		},
		{
			name:       "HAR log uses first entry",
			doc:        `{"log": {"entries": [{"request": {"method": "get", "url": "http://example.com/a"}}, {"request": {"method": "DELETE", "url": "http://example.com/b"}}]}}`,
			wantMethod: "get",
			wantURL:    "http://example.com/a",
		},
		{
			name:    "missing url",
			doc:     `{"method": "GET"}`,
			wantErr: "invalid HAR request",
		},
		{
			name:    "wrong header shape",
			doc:     `{"method": "GET", "url": "http://example.com", "headers": [{"name": "a"}]}`,
			wantErr: "invalid HAR request",
		},
		{
			name:    "relative url",
			doc:     `{"method": "GET", "url": "/users"}`,
			wantErr: "must be an absolute http(s) URL",
		},
		{
			name:    "empty HAR log",
			doc:     `{"log": {"entries": []}}`,
			wantErr: "no entries",
		},
		{
			name:    "not an object",
			doc:     `["GET", "http://example.com"]`,
			wantErr: "must be a JSON object",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := snippet.New(decode(t, tt.doc))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.Nil(t, s)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantMethod, s.Request().Method)
			assert.Equal(t, tt.wantURL, s.Request().URL)
		})
	}
}

func TestNew_NilDocument(t *testing.T) {
	_, err := snippet.New(nil)
	require.Error(t, err)
}

func TestNew_AcceptsNonJSONNumbers(t *testing.T) {
	doc := map[string]any{
		"method":      "PUT",
		"url":         "https://example.com/items/1",
		"headersSize": 12,
	}

	s, err := snippet.New(doc)
	require.NoError(t, err)

	out, err := s.Convert("shell", "curl")
	require.NoError(t, err)
	assert.Contains(t, out, "--request PUT")
}

func TestConvert_EveryTarget(t *testing.T) {
	s, err := snippet.New(decode(t, postRequest))
	require.NoError(t, err)

	for _, target := range snippet.AvailableTargets() {
		if len(target.Clients) == 0 {
			out, err := s.Convert(target.Key, "")
			require.NoError(t, err, target.Key)
			assert.NotEmpty(t, out, target.Key)
			continue
		}
		for _, client := range target.Clients {
			out, err := s.Convert(target.Key, client.Key)
			require.NoError(t, err, "%s:%s", target.Key, client.Key)
			assert.NotEmpty(t, out, "%s:%s", target.Key, client.Key)
			assert.Contains(t, out, "api.example.com", "%s:%s", target.Key, client.Key)
		}
	}
}

func TestConvert_DefaultClient(t *testing.T) {
	s, err := snippet.New(decode(t, postRequest))
	require.NoError(t, err)

	withDefault, err := s.Convert("shell", "")
	require.NoError(t, err)
	explicit, err := s.Convert("shell", "curl")
	require.NoError(t, err)

	assert.Equal(t, explicit, withDefault)
}

func TestConvert_Unknown(t *testing.T) {
	s, err := snippet.New(decode(t, postRequest))
	require.NoError(t, err)

	_, err = s.Convert("cobol", "")
	assert.ErrorContains(t, err, `unknown target "cobol"`)

	_, err = s.Convert("shell", "powershell")
	assert.ErrorContains(t, err, `unknown client "powershell" for target "shell"`)
}

func TestConvert_Curl(t *testing.T) {
	s, err := snippet.New(decode(t, postRequest))
	require.NoError(t, err)

	out, err := s.Convert("shell", "curl")
	require.NoError(t, err)

	expected := strings.Join([]string{
		`curl --request POST \`,
		`  --url 'https://api.example.com/users?page=2&limit=10' \`,
		`  --header 'accept: application/json' \`,
		`  --header 'cookie: session=abc' \`,
		`  --header 'content-type: application/json' \`,
		`  --data '{"name":"Ada"}'`,
	}, "\n")
	assert.Equal(t, expected, out)
}

func TestConvert_RawHTTP(t *testing.T) {
	s, err := snippet.New(decode(t, `{"method": "GET", "url": "http://example.com:8080/ping", "headers": [{"name": "x-trace", "value": "1"}]}`))
	require.NoError(t, err)

	out, err := s.Convert("http", "")
	require.NoError(t, err)

	assert.Equal(t, "GET /ping HTTP/1.1\r\nHost: example.com:8080\r\nX-Trace: 1\r\n\r\n", out)
}

func TestConvert_FormParams(t *testing.T) {
	s, err := snippet.New(decode(t, `{
		"method": "POST",
		"url": "http://example.com/login",
		"postData": {
			"mimeType": "application/x-www-form-urlencoded",
			"params": [{"name": "user", "value": "ada"}, {"name": "pass", "value": "l0velace"}]
		}
	}`))
	require.NoError(t, err)

	out, err := s.Convert("http", "")
	require.NoError(t, err)
	assert.Contains(t, out, "Content-Type: application/x-www-form-urlencoded\r\n")
	assert.True(t, strings.HasSuffix(out, "\r\n\r\nuser=ada&pass=l0velace"))

	curl, err := s.Convert("shell", "curl")
	require.NoError(t, err)
	assert.Contains(t, curl, "--data user=ada")
	assert.Contains(t, curl, "--data pass=l0velace")
}

func TestConvert_Multipart(t *testing.T) {
	s, err := snippet.New(decode(t, `{
		"method": "POST",
		"url": "http://example.com/upload",
		"postData": {
			"mimeType": "multipart/form-data",
			"params": [{"name": "file", "fileName": "hello.txt", "contentType": "text/plain", "value": "hi"}]
		}
	}`))
	require.NoError(t, err)

	raw, err := s.Convert("http", "")
	require.NoError(t, err)
	assert.Contains(t, raw, "Content-Type: multipart/form-data; boundary="+snippet.MultipartBoundary)
	assert.Contains(t, raw, `Content-Disposition: form-data; name="file"; filename="hello.txt"`)

	curl, err := s.Convert("shell", "curl")
	require.NoError(t, err)
	assert.Contains(t, curl, "--form file=@hello.txt")
	assert.NotContains(t, curl, "content-type")
}

func TestConvert_ShellQuoting(t *testing.T) {
	s, err := snippet.New(decode(t, `{"method": "POST", "url": "http://example.com", "postData": {"mimeType": "text/plain", "text": "it's"}}`))
	require.NoError(t, err)

	out, err := s.Convert("shell", "curl")
	require.NoError(t, err)
	assert.Contains(t, out, `--data 'it'\''s'`)
}

func TestConvert_RubyCustomMethod(t *testing.T) {
	s, err := snippet.New(decode(t, `{"method": "PROPFIND", "url": "https://example.com/dav"}`))
	require.NoError(t, err)

	out, err := s.Convert("ruby", "native")
	require.NoError(t, err)
	assert.Contains(t, out, "class Net::HTTP::CustomPropfind < Net::HTTPRequest")
	assert.Contains(t, out, "request = Net::HTTP::CustomPropfind.new(url)")
	assert.Contains(t, out, "http.use_ssl = true")
}

func TestConvert_GoPayload(t *testing.T) {
	s, err := snippet.New(decode(t, postRequest))
	require.NoError(t, err)

	out, err := s.Convert("go", "")
	require.NoError(t, err)
	assert.Contains(t, out, "payload := strings.NewReader(`{\"name\":\"Ada\"}`)")
	assert.Contains(t, out, `req.Header.Add("accept", "application/json")`)
}

func TestAvailableTargets_ReturnsCopies(t *testing.T) {
	first := snippet.AvailableTargets()
	require.NotEmpty(t, first)

	for i := range first {
		first[i].Key = "mutated"
		for j := range first[i].Clients {
			first[i].Clients[j].Key = "mutated"
		}
	}

	for _, target := range snippet.AvailableTargets() {
		assert.NotEqual(t, "mutated", target.Key)
		for _, client := range target.Clients {
			assert.NotEqual(t, "mutated", client.Key)
		}
	}
}

func TestAvailableTargets_Shape(t *testing.T) {
	keys := map[string]int{}
	for _, target := range snippet.AvailableTargets() {
		keys[target.Key] = len(target.Clients)
		if len(target.Clients) > 0 {
			assert.NotEmpty(t, target.Default, target.Key)
		}
	}

	assert.Equal(t, 3, keys["shell"])
	assert.Equal(t, 4, keys["node"])
	assert.Equal(t, 0, keys["go"])
	assert.Equal(t, 0, keys["http"])
}

func TestConvert_RubyEscapesInterpolation(t *testing.T) {
	s, err := snippet.New(decode(t, `{
		"method": "GET",
		"url": "https://example.com/",
		"headers": [{"name": "x-token", "value": "a#{b}c#@ivar#$global"}]
	}`))
	require.NoError(t, err)

	out, err := s.Convert("ruby", "native")
	require.NoError(t, err)
	assert.Contains(t, out, `request["x-token"] = "a\#{b}c\#@ivar\#$global"`)
}
