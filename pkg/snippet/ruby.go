package snippet

import (
	"net/http"
	"strings"
)

var rubyMethods = map[string]string{
	http.MethodGet:     "Get",
	http.MethodPost:    "Post",
	http.MethodPut:     "Put",
	http.MethodPatch:   "Patch",
	http.MethodDelete:  "Delete",
	http.MethodHead:    "Head",
	http.MethodOptions: "Options",
	http.MethodTrace:   "Trace",
}

func rubyNative(s *Snippet) string {
	b := newCodeBuilder("  ")
	b.push(0, "require 'uri'")
	b.push(0, "require 'net/http'")
	b.blank()

	class, ok := rubyMethods[s.method]
	if !ok {
		class = "Custom" + strings.ToUpper(s.method[:1]) + strings.ToLower(s.method[1:])
		b.push(0, "class Net::HTTP::%s < Net::HTTPRequest", class)
		b.push(1, "METHOD = %s", rubyString(s.method))
		b.push(1, "REQUEST_HAS_BODY = %t", s.hasBody())
		b.push(1, "RESPONSE_HAS_BODY = true")
		b.push(0, "end")
		b.blank()
	}

	b.push(0, "url = URI(%s)", rubyString(s.fullURL()))
	b.blank()
	b.push(0, "http = Net::HTTP.new(url.host, url.port)")
	if s.url.Scheme == "https" {
		b.push(0, "http.use_ssl = true")
	}
	b.blank()
	b.push(0, "request = Net::HTTP::%s.new(url)", class)
	for _, h := range s.headers {
		b.push(0, "request[%s] = %s", rubyString(h.Name), rubyString(h.Value))
	}
	if s.hasBody() {
		b.push(0, "request.body = %s", rubyString(s.body))
	}
	b.blank()
	b.push(0, "response = http.request(request)")
	b.push(0, "puts response.read_body")

	return b.String()
}
