package snippet

import (
	"net/textproto"
	"strconv"
	"strings"
)

// rawHTTP renders the request as an HTTP/1.x message.
func rawHTTP(s *Snippet) string {
	var b strings.Builder
	b.WriteString(s.method + " " + s.uri() + " " + s.httpVersion + "\r\n")

	if _, ok := s.header("host"); !ok {
		b.WriteString("Host: " + s.url.Host + "\r\n")
	}
	for _, h := range s.headers {
		b.WriteString(textproto.CanonicalMIMEHeaderKey(h.Name) + ": " + h.Value + "\r\n")
	}
	if s.hasBody() {
		if _, ok := s.header("content-length"); !ok {
			b.WriteString("Content-Length: " + strconv.Itoa(len(s.body)) + "\r\n")
		}
	}
	b.WriteString("\r\n")
	b.WriteString(s.body)

	return b.String()
}
