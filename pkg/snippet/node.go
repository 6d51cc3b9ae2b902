package snippet

import "strings"

// jsBody returns the JavaScript expression for the request body.
func jsBody(s *Snippet) string {
	if s.hasJSONBody() {
		return "JSON.stringify(" + s.body + ")"
	}
	return jsonString(s.body)
}

func nodeNative(s *Snippet) string {
	b := newCodeBuilder("  ")

	module := "http"
	if s.url.Scheme == "https" {
		module = "https"
	}
	port := "null"
	if p := s.url.Port(); p != "" {
		port = p
	}

	b.push(0, "const http = require(%s);", jsonString(module))
	b.blank()
	b.push(0, "const options = {")
	b.push(1, "\"method\": %s,", jsonString(s.method))
	b.push(1, "\"hostname\": %s,", jsonString(s.url.Hostname()))
	b.push(1, "\"port\": %s,", port)
	b.push(1, "\"path\": %s,", jsonString(s.uri()))
	b.push(1, "\"headers\": {")
	for _, l := range objectLines(s.headers, ": ", jsonString) {
		b.push(2, "%s", l)
	}
	b.push(1, "}")
	b.push(0, "};")
	b.blank()
	b.push(0, "const req = http.request(options, function (res) {")
	b.push(1, "const chunks = [];")
	b.blank()
	b.push(1, "res.on(\"data\", function (chunk) {")
	b.push(2, "chunks.push(chunk);")
	b.push(1, "});")
	b.blank()
	b.push(1, "res.on(\"end\", function () {")
	b.push(2, "const body = Buffer.concat(chunks);")
	b.push(2, "console.log(body.toString());")
	b.push(1, "});")
	b.push(0, "});")
	b.blank()
	if s.hasBody() {
		b.push(0, "req.write(%s);", jsBody(s))
	}
	b.push(0, "req.end();")

	return b.String()
}

func nodeRequest(s *Snippet) string {
	b := newCodeBuilder("  ")
	b.push(0, "const request = require(\"request\");")
	b.blank()

	var fields []string
	fields = append(fields, "method: "+jsonString(s.method))
	fields = append(fields, "url: "+jsonString(s.url.String()))
	if len(s.query) > 0 {
		fields = append(fields, "qs: "+jsQueryObject(s))
	}
	headers := s.headers
	if s.isForm() || s.isMultipart() {
		headers = s.headersWithout("content-type")
	}
	if len(headers) > 0 {
		fields = append(fields, "headers: "+inlineObject(headers, ": ", jsonString))
	}
	switch {
	case s.isForm():
		fields = append(fields, "form: "+inlineParams(s.params))
	case s.isMultipart():
		fields = append(fields, "formData: "+inlineParams(s.params))
	case s.hasJSONBody():
		fields = append(fields, "body: "+s.body, "json: true")
	case s.hasBody():
		fields = append(fields, "body: "+jsonString(s.body))
	}

	b.push(0, "const options = {")
	for i, f := range fields {
		if i < len(fields)-1 {
			f += ","
		}
		b.push(1, "%s", f)
	}
	b.push(0, "};")
	b.blank()
	b.push(0, "request(options, function (error, response, body) {")
	b.push(1, "if (error) throw new Error(error);")
	b.blank()
	b.push(1, "console.log(body);")
	b.push(0, "});")

	return b.String()
}

func nodeUnirest(s *Snippet) string {
	b := newCodeBuilder("  ")
	b.push(0, "const unirest = require(\"unirest\");")
	b.blank()
	b.push(0, "const req = unirest(%s, %s);", jsonString(s.method), jsonString(s.url.String()))
	b.blank()
	if len(s.query) > 0 {
		b.push(0, "req.query(%s);", jsQueryObject(s))
		b.blank()
	}
	headers := s.headers
	if s.isForm() || s.isMultipart() {
		headers = s.headersWithout("content-type")
	}
	if len(headers) > 0 {
		b.push(0, "req.headers(%s);", inlineObject(headers, ": ", jsonString))
		b.blank()
	}
	switch {
	case s.isForm():
		b.push(0, "req.form(%s);", inlineParams(s.params))
		b.blank()
	case s.isMultipart():
		b.push(0, "req.multipart([")
		for i, p := range s.params {
			line := "{" + jsonString("body") + ": " + jsonString(p.Value) + "}"
			if i < len(s.params)-1 {
				line += ","
			}
			b.push(1, "%s", line)
		}
		b.push(0, "]);")
		b.blank()
	case s.hasJSONBody():
		b.push(0, "req.type(\"json\");")
		b.push(0, "req.send(%s);", s.body)
		b.blank()
	case s.hasBody():
		b.push(0, "req.send(%s);", jsonString(s.body))
		b.blank()
	}
	b.push(0, "req.end(function (res) {")
	b.push(1, "if (res.error) throw new Error(res.error);")
	b.blank()
	b.push(1, "console.log(res.body);")
	b.push(0, "});")

	return b.String()
}

func nodeFetch(s *Snippet) string {
	b := newCodeBuilder("  ")
	b.push(0, "const fetch = require(\"node-fetch\");")
	b.blank()
	b.push(0, "const url = %s;", jsonString(s.fullURL()))
	b.push(0, "const options = %s;", fetchOptions(s))
	b.blank()
	b.push(0, "fetch(url, options)")
	b.push(1, ".then(res => res.json())")
	b.push(1, ".then(json => console.log(json))")
	b.push(1, ".catch(err => console.error(\"error:\" + err));")

	return b.String()
}

// fetchOptions renders the options argument shared by both fetch clients.
func fetchOptions(s *Snippet) string {
	fields := []string{"method: " + jsonString(s.method)}
	if len(s.headers) > 0 {
		fields = append(fields, "headers: "+inlineObject(s.headers, ": ", jsonString))
	}
	if s.hasBody() {
		fields = append(fields, "body: "+jsBody(s))
	}
	return "{" + strings.Join(fields, ", ") + "}"
}

func jsQueryObject(s *Snippet) string {
	names, values := s.queryMap()
	parts := make([]string, 0, len(names))
	for _, n := range names {
		v := values[n]
		if len(v) == 1 {
			parts = append(parts, jsonString(n)+": "+jsonString(v[0]))
			continue
		}
		quoted := make([]string, 0, len(v))
		for _, item := range v {
			quoted = append(quoted, jsonString(item))
		}
		parts = append(parts, jsonString(n)+": ["+strings.Join(quoted, ", ")+"]")
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func inlineParams(params []Param) string {
	pairs := make([]NameValue, 0, len(params))
	for _, p := range params {
		pairs = append(pairs, NameValue{Name: p.Name, Value: p.Value})
	}
	return inlineObject(pairs, ": ", jsonString)
}
