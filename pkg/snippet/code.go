package snippet

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// codeBuilder accumulates indented source lines.
type codeBuilder struct {
	indent string
	lines  []string
}

func newCodeBuilder(indent string) *codeBuilder {
	return &codeBuilder{indent: indent}
}

// push appends a line at the given indentation level. The line is only
// treated as a format string when args are supplied.
func (b *codeBuilder) push(level int, line string, args ...any) {
	if len(args) > 0 {
		line = fmt.Sprintf(line, args...)
	}
	b.lines = append(b.lines, strings.Repeat(b.indent, level)+line)
}

func (b *codeBuilder) blank() {
	b.lines = append(b.lines, "")
}

func (b *codeBuilder) String() string {
	return strings.Join(b.lines, "\n")
}

var shellSafe = regexp.MustCompile(`^[A-Za-z0-9_\-.,:/@=+%]+$`)

// shellQuote quotes s for a POSIX shell.
func shellQuote(s string) string {
	if shellSafe.MatchString(s) {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// jsonString renders s as a double-quoted JSON string literal without HTML
// escaping. The result is also a valid JavaScript and Python literal.
func jsonString(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return strconv.Quote(s)
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

var rubyInterpolation = strings.NewReplacer("#{", `\#{`, "#@", `\#@`, "#$", `\#$`)

// rubyString renders s as a Ruby double-quoted literal with interpolation
// sequences escaped.
func rubyString(s string) string {
	return rubyInterpolation.Replace(jsonString(s))
}

// phpString renders s as a PHP single-quoted literal.
func phpString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `'`, `\'`)
	return "'" + s + "'"
}

// objectLines renders name/value pairs as the body lines of an object
// literal, e.g. `"a": "b",`, using quote for keys and values.
func objectLines(pairs []NameValue, sep string, quote func(string) string) []string {
	lines := make([]string, 0, len(pairs))
	for i, p := range pairs {
		line := quote(p.Name) + sep + quote(p.Value)
		if i < len(pairs)-1 {
			line += ","
		}
		lines = append(lines, line)
	}
	return lines
}

// inlineObject renders name/value pairs as a single-line object literal.
func inlineObject(pairs []NameValue, sep string, quote func(string) string) string {
	parts := make([]string, 0, len(pairs))
	for _, p := range pairs {
		parts = append(parts, quote(p.Name)+sep+quote(p.Value))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// isJSON reports whether the mime type describes a JSON payload.
func isJSON(mimeType string) bool {
	mt, _, _ := strings.Cut(mimeType, ";")
	mt = strings.TrimSpace(strings.ToLower(mt))
	return mt == "application/json" || strings.HasSuffix(mt, "+json")
}
