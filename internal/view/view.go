// Package view renders the server-side HTML pages.
//
// Every page template under templates/pages and templates/errors is parsed
// together with the shared layout, so each page name maps to its own
// template set.  Pages receive a Page value; the layout reads Title and
// Flashes, the page body reads Data.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

//go:embed templates
var templateFS embed.FS

// Page is the value handed to every template.
type Page struct {
	Title   string
	Flashes []string
	Data    any
}

// Renderer implements echo.Renderer over the embedded templates.
type Renderer struct {
	pages map[string]*template.Template
}

// Display formats accepted by the datetime template function.
const (
	FormatFull   = "Monday January, 2, 2006 at 3:04PM"
	FormatMedium = "Mon 01, 02, 2006 3:04PM"
)

// FormatDateTime renders t as "full" or "medium" (the default).
func FormatDateTime(t time.Time, format string) string {
	if format == "full" {
		return t.Format(FormatFull)
	}
	return t.Format(FormatMedium)
}

var funcs = template.FuncMap{
	"datetime": FormatDateTime,
	"join":     func(s []string) string { return strings.Join(s, ", ") },
	"dict":     dict,
}

// dict builds a map from alternating key/value arguments so a partial can
// take several named values.
func dict(kv ...any) (map[string]any, error) {
	if len(kv)%2 != 0 {
		return nil, fmt.Errorf("dict: odd number of arguments")
	}
	m := make(map[string]any, len(kv)/2)
	for i := 0; i < len(kv); i += 2 {
		k, ok := kv[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict: key %v is not a string", kv[i])
		}
		m[k] = kv[i+1]
	}
	return m, nil
}

// New parses the embedded templates.
func New() (*Renderer, error) {
	r := &Renderer{pages: map[string]*template.Template{}}
	for _, dir := range []string{"pages", "errors"} {
		files, err := fs.Glob(templateFS, "templates/"+dir+"/*.html")
		if err != nil {
			return nil, err
		}
		for _, f := range files {
			name := dir + "/" + strings.TrimSuffix(path.Base(f), ".html")
			t, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS, "templates/layouts/*.html", f)
			if err != nil {
				return nil, fmt.Errorf("parse %s: %w", name, err)
			}
			r.pages[name] = t
		}
	}
	return r, nil
}

// Render writes the named page ("pages/venues", "errors/404", ...).
func (r *Renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("view: unknown template %q", name)
	}
	return t.ExecuteTemplate(w, "layout", data)
}

// Has reports whether a page named name exists.
func (r *Renderer) Has(name string) bool {
	_, ok := r.pages[name]
	return ok
}

var _ echo.Renderer = (*Renderer)(nil)
