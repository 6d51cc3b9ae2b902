package snippet

import "strings"

func shellCurl(s *Snippet) string {
	b := newCodeBuilder("  ")
	b.push(0, "curl --request %s", s.method)
	b.push(1, "--url %s", shellQuote(s.fullURL()))

	headers := s.headers
	if s.isMultipart() {
		// curl computes the boundary itself
		headers = s.headersWithout("content-type")
	}
	for _, h := range headers {
		b.push(1, "--header %s", shellQuote(h.Name+": "+h.Value))
	}

	switch {
	case s.isMultipart():
		for _, p := range s.params {
			if p.FileName != "" {
				b.push(1, "--form %s", shellQuote(p.Name+"=@"+p.FileName))
			} else {
				b.push(1, "--form %s", shellQuote(p.Name+"="+p.Value))
			}
		}
	case s.isForm():
		for _, p := range s.params {
			b.push(1, "--data %s", shellQuote(p.Name+"="+p.Value))
		}
	case s.hasBody():
		b.push(1, "--data %s", shellQuote(s.body))
	}

	return joinContinued(b.lines)
}

func shellHTTPie(s *Snippet) string {
	b := newCodeBuilder("  ")
	raw := s.hasBody() && !s.isForm() && !s.isMultipart()
	level := 0
	if raw {
		b.push(0, "echo %s |", shellQuote(s.body))
		level = 1
	}

	flags := ""
	switch {
	case s.isMultipart():
		flags = " --multipart"
	case s.isForm():
		flags = " --form"
	}
	b.push(level, "http%s %s %s", flags, s.method, shellQuote(s.fullURL()))

	headers := s.headers
	if s.isForm() || s.isMultipart() {
		headers = s.headersWithout("content-type")
	}
	for _, h := range headers {
		b.push(level+1, "%s", shellQuote(h.Name+":"+h.Value))
	}

	if s.isForm() || s.isMultipart() {
		for _, p := range s.params {
			if p.FileName != "" {
				b.push(level+1, "%s", shellQuote(p.Name+"@"+p.FileName))
			} else {
				b.push(level+1, "%s", shellQuote(p.Name+"="+p.Value))
			}
		}
	}

	return joinContinued(b.lines)
}

func shellWget(s *Snippet) string {
	b := newCodeBuilder("  ")
	b.push(0, "wget --quiet")
	b.push(1, "--method %s", s.method)
	for _, h := range s.headers {
		b.push(1, "--header %s", shellQuote(h.Name+": "+h.Value))
	}
	if s.hasBody() {
		b.push(1, "--body-data %s", shellQuote(s.body))
	}
	b.push(1, "--output-document")
	b.push(1, "- %s", shellQuote(s.fullURL()))

	return joinContinued(b.lines)
}

// joinContinued joins shell lines with backslash continuations. Lines that
// already end in a pipe are not continued.
func joinContinued(lines []string) string {
	var out strings.Builder
	for i, l := range lines {
		out.WriteString(l)
		if i < len(lines)-1 {
			if !strings.HasSuffix(l, "|") {
				out.WriteString(" \\")
			}
			out.WriteString("\n")
		}
	}
	return out.String()
}
