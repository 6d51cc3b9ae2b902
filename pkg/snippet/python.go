package snippet

import "strings"

func pythonHTTPClient(s *Snippet) string {
	b := newCodeBuilder("    ")
	b.push(0, "import http.client")
	b.blank()

	conn := "HTTPConnection"
	if s.url.Scheme == "https" {
		conn = "HTTPSConnection"
	}
	b.push(0, "conn = http.client.%s(%s)", conn, jsonString(s.url.Host))
	b.blank()

	payload := ""
	if s.hasBody() {
		b.push(0, "payload = %s", jsonString(s.body))
		b.blank()
		payload = ", payload"
	}

	headers := ""
	if len(s.headers) > 0 {
		b.push(0, "headers = {")
		for _, l := range objectLines(s.headers, ": ", jsonString) {
			b.push(1, "%s", l)
		}
		b.push(1, "}")
		b.blank()
		headers = ", headers"
		if payload == "" {
			payload = ", None"
		}
	}

	b.push(0, "conn.request(%s, %s%s%s)", jsonString(s.method), jsonString(s.uri()), payload, headers)
	b.blank()
	b.push(0, "res = conn.getresponse()")
	b.push(0, "data = res.read()")
	b.blank()
	b.push(0, "print(data.decode(\"utf-8\"))")

	return b.String()
}

func pythonRequests(s *Snippet) string {
	b := newCodeBuilder("    ")
	b.push(0, "import requests")
	b.blank()
	b.push(0, "url = %s", jsonString(s.url.String()))
	b.blank()

	args := []string{jsonString(s.method), "url"}

	if len(s.query) > 0 {
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
		b.push(0, "querystring = {%s}", strings.Join(parts, ", "))
		b.blank()
	}

	headers := s.headers
	switch {
	case s.isMultipart():
		headers = s.headersWithout("content-type")
		b.push(0, "files = %s", inlineParams(s.params))
		args = append(args, "files=files")
	case s.hasBody():
		b.push(0, "payload = %s", jsonString(s.body))
		args = append(args, "data=payload")
	}

	if len(headers) > 0 {
		b.push(0, "headers = %s", inlineObject(headers, ": ", jsonString))
		args = append(args, "headers=headers")
	}
	if s.hasBody() || len(headers) > 0 {
		b.blank()
	}
	if len(s.query) > 0 {
		args = append(args, "params=querystring")
	}

	b.push(0, "response = requests.request(%s)", strings.Join(args, ", "))
	b.blank()
	b.push(0, "print(response.text)")

	return b.String()
}
