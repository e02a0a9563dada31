package base

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/a-h/templ"
)

//go:embed templates/*.html
var templatesFS embed.FS

var templates = template.Must(template.New("base").ParseFS(templatesFS, "templates/*.html"))

// FromTemplate renders the named template of t with data as a templ component.
func FromTemplate(t *template.Template, name string, data any) templ.Component {
	tmpl := t.Lookup(name)
	if tmpl == nil {
		return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
			return fmt.Errorf("template %q not found", name)
		})
	}
	return templ.FromGoHTML(tmpl, data)
}

// HTML renders c into a value that html/template embeds without escaping. A nil component
// renders as empty.
func HTML(ctx context.Context, c templ.Component) (template.HTML, error) {
	if c == nil {
		return "", nil
	}
	return templ.ToGoHTML(ctx, c)
}
