// Package view renders the HTML pages served by apiembed.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"os"

	"github.com/apiembed/apiembed/internal/apierror"
	"github.com/apiembed/apiembed/internal/service"
	"github.com/apiembed/apiembed/internal/targets"
)

//go:embed templates/*.html
var embedded embed.FS

//go:embed static/favicon.ico
var favicon []byte

const pattern = "*.html"

// Favicon returns the bundled favicon.
func Favicon() []byte {
	return favicon
}

// Options configures a Renderer.
type Options struct {
	// Dir loads templates from disk instead of the embedded copies.
	Dir string
	// NoCache re-parses the templates on every render.
	NoCache bool
}

// Renderer executes the "main" and "error" views.
type Renderer struct {
	fsys    fs.FS
	noCache bool
	cached  *template.Template
}

// New parses the templates once. Parse errors are returned even in no-cache
// mode so that a broken template directory fails at startup.
func New(opts Options) (*Renderer, error) {
	fsys, err := templateFS(opts.Dir)
	if err != nil {
		return nil, err
	}

	tmpl, err := parse(fsys)
	if err != nil {
		return nil, err
	}

	r := &Renderer{fsys: fsys, noCache: opts.NoCache}
	if !opts.NoCache {
		r.cached = tmpl
	}
	return r, nil
}

func templateFS(dir string) (fs.FS, error) {
	if dir == "" {
		return fs.Sub(embedded, "templates")
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("template directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("template directory: %s is not a directory", dir)
	}
	return os.DirFS(dir), nil
}

func parse(fsys fs.FS) (*template.Template, error) {
	tmpl, err := template.New("views").ParseFS(fsys, pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	for _, name := range []string{"main", "error"} {
		if tmpl.Lookup(name) == nil {
			return nil, fmt.Errorf("failed to parse templates: view %q is not defined", name)
		}
	}
	return tmpl, nil
}

func (r *Renderer) templates() (*template.Template, error) {
	if r.noCache {
		return parse(r.fsys)
	}
	return r.cached, nil
}

// render buffers the output so a failing template never writes a partial page.
func (r *Renderer) render(w io.Writer, name string, data any) error {
	tmpl, err := r.templates()
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("failed to render %s: %w", name, err)
	}
	_, err = buf.WriteTo(w)
	return err
}

// Main renders the success page.
func (r *Renderer) Main(w io.Writer, page MainPage) error {
	return r.render(w, "main", page)
}

// Error renders the error page.
func (r *Renderer) Error(w io.Writer, page ErrorPage) error {
	return r.render(w, "error", page)
}

// MainPage is the data of the "main" view.
type MainPage struct {
	Sections []Section
}

// Section holds the snippets of one target.
type Section struct {
	Key      string
	Title    string
	Extname  string
	Snippets []Snippet
}

// Snippet is one generated code sample. Key is empty for clientless targets.
type Snippet struct {
	Key      string
	Title    string
	Link     string
	Language string
	Code     string
}

// NewMainPage lays out output in the registry's listing order, with titles
// and links from the registry's named table.
func NewMainPage(output service.Output, registry *targets.Registry) MainPage {
	var page MainPage
	for _, key := range registry.Keys() {
		result, ok := output[key]
		if !ok {
			continue
		}
		named, ok := registry.Named(key)
		if !ok {
			continue
		}

		section := Section{Key: named.Key, Title: named.Title, Extname: named.Extname}
		if result.Clients == nil {
			section.Snippets = append(section.Snippets, Snippet{Language: named.Key, Code: result.Snippet})
		} else {
			for _, clientKey := range named.ClientKeys {
				code, ok := result.Clients[clientKey]
				if !ok {
					continue
				}
				client := named.Clients[clientKey]
				section.Snippets = append(section.Snippets, Snippet{
					Key:      client.Key,
					Title:    client.Title,
					Link:     client.Link,
					Language: named.Key,
					Code:     code,
				})
			}
		}
		page.Sections = append(page.Sections, section)
	}
	return page
}

// ErrorPage is the data of the "error" view.
type ErrorPage struct {
	Code          int
	Message       string
	Documentation bool
}

// NewErrorPage classifies err for display. Client errors point at the
// documentation.
func NewErrorPage(err error) ErrorPage {
	e := apierror.As(err)
	return ErrorPage{
		Code:          e.Code,
		Message:       e.Message,
		Documentation: e.IsClientError(),
	}
}
