package login

import (
	"context"
	"embed"
	"html/template"
	"io"

	"github.com/a-h/templ"
	icons "github.com/iota-uz/icons/phosphor"

	"github.com/comfortcurators/portal/components/base"
	"github.com/comfortcurators/portal/modules/core/presentation/templates/layouts"
	"github.com/comfortcurators/portal/pkg/composables"
	"github.com/comfortcurators/portal/pkg/intl"
)

//go:embed templates/*.html
var templatesFS embed.FS

var templates = template.Must(template.New("login").ParseFS(templatesFS, "templates/*.html"))

const InputClass = "flex h-10 w-full rounded-md border border-input bg-background px-3 py-2 text-sm focus-visible:outline-none focus-visible:ring-2"

type Props struct {
	Email  string
	Next   string
	Flash  *layouts.Flash
	Errors map[string]string
}

type texts struct {
	Title     string
	Subtitle  string
	Email     string
	Password  string
	Submit    string
	NoAccount string
	SignUp    string
}

type data struct {
	T           texts
	Email       string
	Next        string
	Errors      map[string]string
	CSRFToken   string
	Logo        template.HTML
	InputClass  string
	SubmitClass string
}

func Index(p *Props) templ.Component {
	form := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		logo, err := base.HTML(ctx, icons.Buildings(icons.Props{Size: "24"}))
		if err != nil {
			return err
		}
		errs := p.Errors
		if errs == nil {
			errs = map[string]string{}
		}
		return base.FromTemplate(templates, "login", data{
			T: texts{
				Title:     intl.T(ctx, "Login.Title"),
				Subtitle:  intl.T(ctx, "Login.Subtitle"),
				Email:     intl.T(ctx, "Login.Email"),
				Password:  intl.T(ctx, "Login.Password"),
				Submit:    intl.T(ctx, "Login.Submit"),
				NoAccount: intl.T(ctx, "Login.NoAccount"),
				SignUp:    intl.T(ctx, "Login.SignUp"),
			},
			Email:       p.Email,
			Next:        p.Next,
			Errors:      errs,
			CSRFToken:   composables.UseCSRFToken(ctx),
			Logo:        logo,
			InputClass:  InputClass,
			SubmitClass: base.ButtonClass(base.ButtonPrimary, base.ButtonSizeNormal, "w-full"),
		}).Render(ctx, w)
	})
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return layouts.Auth(layouts.AuthProps{
			Title: intl.T(ctx, "Login.Meta.Title"),
			Flash: p.Flash,
		}, form).Render(ctx, w)
	})
}
