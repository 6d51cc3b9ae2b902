package snippet

import (
	"strconv"
	"strings"
)

func goNative(s *Snippet) string {
	b := newCodeBuilder("\t")
	b.push(0, "package main")
	b.blank()
	b.push(0, "import (")
	b.push(1, "\"fmt\"")
	b.push(1, "\"io\"")
	b.push(1, "\"net/http\"")
	if s.hasBody() {
		b.push(1, "\"strings\"")
	}
	b.push(0, ")")
	b.blank()
	b.push(0, "func main() {")
	b.push(1, "url := %s", goString(s.fullURL()))
	b.blank()

	body := "nil"
	if s.hasBody() {
		b.push(1, "payload := strings.NewReader(%s)", goString(s.body))
		b.blank()
		body = "payload"
	}

	b.push(1, "req, err := http.NewRequest(%s, url, %s)", strconv.Quote(s.method), body)
	b.push(1, "if err != nil {")
	b.push(2, "panic(err)")
	b.push(1, "}")
	if len(s.headers) > 0 {
		b.blank()
		for _, h := range s.headers {
			b.push(1, "req.Header.Add(%s, %s)", strconv.Quote(h.Name), strconv.Quote(h.Value))
		}
	}
	b.blank()
	b.push(1, "res, err := http.DefaultClient.Do(req)")
	b.push(1, "if err != nil {")
	b.push(2, "panic(err)")
	b.push(1, "}")
	b.push(1, "defer res.Body.Close()")
	b.blank()
	b.push(1, "body, err := io.ReadAll(res.Body)")
	b.push(1, "if err != nil {")
	b.push(2, "panic(err)")
	b.push(1, "}")
	b.blank()
	b.push(1, "fmt.Println(res.Status)")
	b.push(1, "fmt.Println(string(body))")
	b.push(0, "}")

	return b.String()
}

// goString prefers a raw string literal when the value allows it.
func goString(s string) string {
	if strings.ContainsAny(s, "\n\"") && !strings.Contains(s, "`") && !strings.Contains(s, "\r") {
		return "`" + s + "`"
	}
	return strconv.Quote(s)
}
