package signup

import (
	"context"
	"embed"
	"html/template"
	"io"

	"github.com/a-h/templ"
	icons "github.com/iota-uz/icons/phosphor"

	"github.com/comfortcurators/portal/components/base"
	"github.com/comfortcurators/portal/modules/core/presentation/templates/layouts"
	"github.com/comfortcurators/portal/modules/core/presentation/templates/pages/login"
	"github.com/comfortcurators/portal/pkg/composables"
	"github.com/comfortcurators/portal/pkg/intl"
)

//go:embed templates/*.html
var templatesFS embed.FS

var templates = template.Must(template.New("signup").ParseFS(templatesFS, "templates/*.html"))

type Props struct {
	FullName string
	Email    string
	Flash    *layouts.Flash
	Errors   map[string]string
}

type texts struct {
	Title        string
	Subtitle     string
	FullName     string
	Email        string
	Password     string
	PasswordHint string
	Submit       string
	HaveAccount  string
	SignIn       string
}

type data struct {
	T           texts
	FullName    string
	Email       string
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
		return base.FromTemplate(templates, "signup", data{
			T: texts{
				Title:        intl.T(ctx, "SignUp.Title"),
				Subtitle:     intl.T(ctx, "SignUp.Subtitle"),
				FullName:     intl.T(ctx, "SignUp.FullName"),
				Email:        intl.T(ctx, "SignUp.Email"),
				Password:     intl.T(ctx, "SignUp.Password"),
				PasswordHint: intl.T(ctx, "SignUp.PasswordHint"),
				Submit:       intl.T(ctx, "SignUp.Submit"),
				HaveAccount:  intl.T(ctx, "SignUp.HaveAccount"),
				SignIn:       intl.T(ctx, "SignUp.SignIn"),
			},
			FullName:    p.FullName,
			Email:       p.Email,
			Errors:      errs,
			CSRFToken:   composables.UseCSRFToken(ctx),
			Logo:        logo,
			InputClass:  login.InputClass,
			SubmitClass: base.ButtonClass(base.ButtonPrimary, base.ButtonSizeNormal, "w-full"),
		}).Render(ctx, w)
	})
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return layouts.Auth(layouts.AuthProps{
			Title: intl.T(ctx, "SignUp.Meta.Title"),
			Flash: p.Flash,
		}, form).Render(ctx, w)
	})
}
