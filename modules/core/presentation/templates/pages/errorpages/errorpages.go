package errorpages

import (
	"context"
	"embed"
	"html/template"
	"io"
	"net/http"

	"github.com/a-h/templ"

	"github.com/comfortcurators/portal/components/base"
	"github.com/comfortcurators/portal/modules/core/presentation/templates/layouts"
	"github.com/comfortcurators/portal/pkg/composables"
	"github.com/comfortcurators/portal/pkg/intl"
)

//go:embed templates/*.html
var templatesFS embed.FS

var templates = template.Must(template.New("errorpages").ParseFS(templatesFS, "templates/*.html"))

type data struct {
	Status      int
	Title       string
	Text        string
	HomeHref    string
	HomeLabel   string
	ButtonClass string
}

func page(status int, key string) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		home := "/"
		if _, err := composables.UseIdentity(ctx); err == nil {
			home = "/app"
		}
		return base.FromTemplate(templates, "error", data{
			Status:      status,
			Title:       intl.T(ctx, "Errors."+key+".Title"),
			Text:        intl.T(ctx, "Errors."+key+".Text"),
			HomeHref:    home,
			HomeLabel:   intl.T(ctx, "Errors.Home"),
			ButtonClass: base.ButtonClass(base.ButtonPrimary, base.ButtonSizeNormal),
		}).Render(ctx, w)
	})
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return layouts.Base(layouts.HeadProps{Title: intl.T(ctx, "Errors."+key+".Title")}, body).Render(ctx, w)
	})
}

func NotFound() templ.Component {
	return page(http.StatusNotFound, "NotFound")
}

func MethodNotAllowed() templ.Component {
	return page(http.StatusMethodNotAllowed, "MethodNotAllowed")
}
