package layouts

import (
	"context"
	"embed"
	"html/template"
	"io"
	"net/url"

	"github.com/a-h/templ"
	icons "github.com/iota-uz/icons/phosphor"

	"github.com/comfortcurators/portal/components/base"
	spotlightui "github.com/comfortcurators/portal/components/spotlight"
	"github.com/comfortcurators/portal/internal/assets"
	"github.com/comfortcurators/portal/pkg/application"
	"github.com/comfortcurators/portal/pkg/composables"
	"github.com/comfortcurators/portal/pkg/intl"
	"github.com/comfortcurators/portal/pkg/types"
)

//go:embed templates/*.html
var templatesFS embed.FS

var templates = template.Must(template.New("layouts").ParseFS(templatesFS, "templates/*.html"))

type HeadProps struct {
	Title       string
	Description string
	// Extra is rendered inside <head> before the application script.
	Extra templ.Component
}

type headData struct {
	Title         string
	Description   string
	CSRFToken     string
	StylesheetURL string
	ScriptURL     string
	Extra         template.HTML
}

type baseData struct {
	Lang string
	Head headData
	Body template.HTML
}

// Base is the HTML document around body.
func Base(head HeadProps, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		extra, err := base.HTML(ctx, head.Extra)
		if err != nil {
			return err
		}
		bodyHTML, err := base.HTML(ctx, body)
		if err != nil {
			return err
		}
		return base.FromTemplate(templates, "base", baseData{
			Lang: intl.UseLocale(ctx).String(),
			Head: headData{
				Title:         head.Title,
				Description:   head.Description,
				CSRFToken:     composables.UseCSRFToken(ctx),
				StylesheetURL: assets.StylesheetURL(),
				ScriptURL:     assets.ScriptURL(),
				Extra:         extra,
			},
			Body: bodyHTML,
		}).Render(ctx, w)
	})
}

type Flash struct {
	Kind    string
	Message string
}

type AuthProps struct {
	Title string
	Flash *Flash
}

type authData struct {
	Flash      *Flash
	Content    template.HTML
	BrandTitle string
	BrandText  string
}

// Auth is the split sign-in layout: the form on the left, branding on the right.
func Auth(p AuthProps, content templ.Component) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		contentHTML, err := base.HTML(ctx, content)
		if err != nil {
			return err
		}
		return base.FromTemplate(templates, "auth", authData{
			Flash:      p.Flash,
			Content:    contentHTML,
			BrandTitle: intl.T(ctx, "Auth.Brand.Title"),
			BrandText:  intl.T(ctx, "Auth.Brand.Text"),
		}).Render(ctx, w)
	})
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return Base(HeadProps{
			Title:       p.Title,
			Description: intl.T(ctx, "Auth.Meta.Summary"),
		}, body).Render(ctx, w)
	})
}

type AuthenticatedProps struct {
	Title string
	// FullBleed drops the content padding, used by the map.
	FullBleed bool
	Head      templ.Component
}

type navItemData struct {
	Name   string
	Href   string
	Icon   template.HTML
	Active bool
}

type orgData struct {
	ID      string
	Name    string
	Href    string
	Current bool
}

type shellData struct {
	HomeHref      string
	NavLabel      string
	Nav           []navItemData
	Orgs          []orgData
	CurrentOrg    string
	SearchLabel   string
	HeaderLabel   string
	MenuLabel     string
	Email         string
	Initials      string
	SettingsHref  string
	SettingsLabel string
	LogoutLabel   string
	CSRFToken     string
	FullBleed     bool
	Content       template.HTML
	Palette       template.HTML

	LogoIcon     template.HTML
	OrgIcon      template.HTML
	CaretIcon    template.HTML
	SearchIcon   template.HTML
	SettingsIcon template.HTML
	LogoutIcon   template.HTML
}

// WithOrg appends the selected organization to href so navigation keeps the selection.
func WithOrg(ctx context.Context, href string) string {
	org := composables.UseOrgQuery(ctx)
	if org == "" {
		return href
	}
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	q := u.Query()
	q.Set("org", org)
	u.RawQuery = q.Encode()
	return u.String()
}

func iconHTML(ctx context.Context, c templ.Component) template.HTML {
	h, err := base.HTML(ctx, c)
	if err != nil {
		return ""
	}
	return h
}

func navItems(ctx context.Context, items []types.NavigationItem, path string) []navItemData {
	out := make([]navItemData, 0, len(items))
	for _, item := range items {
		out = append(out, navItemData{
			Name:   item.Name,
			Href:   WithOrg(ctx, item.Href),
			Icon:   iconHTML(ctx, item.Icon),
			Active: item.IsActive(path),
		})
	}
	return out
}

func palette(ctx context.Context, tabID string) templ.Component {
	app, err := application.UseApp(ctx)
	var results templ.Component
	if err == nil {
		results = app.Spotlight().Results("")
	}
	return spotlightui.Dialog(spotlightui.DialogProps{
		TabID:       tabID,
		Placeholder: intl.T(ctx, "Spotlight.Placeholder"),
		SearchURL:   "/app/spotlight/search",
		Results:     results,
	})
}

// Authenticated is the application shell around content: navigation, organization switcher,
// search trigger, user menu and the command palette of the page's tab.
func Authenticated(p AuthenticatedProps, content templ.Component) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		u, err := composables.UseIdentity(ctx)
		if err != nil {
			return err
		}
		oc, _ := composables.UseOrgContext(ctx)
		shell, _ := composables.UseShell(ctx)
		pageCtx, _ := composables.UsePageCtx(ctx)
		path := pageCtx.Path()

		contentHTML, err := base.HTML(ctx, content)
		if err != nil {
			return err
		}
		paletteHTML, err := base.HTML(ctx, palette(ctx, shell.TabID))
		if err != nil {
			return err
		}

		data := shellData{
			HomeHref:      WithOrg(ctx, "/app/map"),
			NavLabel:      intl.T(ctx, "Shell.Navigation"),
			Nav:           navItems(ctx, composables.UseNavItems(ctx), path),
			SearchLabel:   intl.T(ctx, "Shell.Search"),
			HeaderLabel:   oc.HeaderLabel(u.Email()),
			MenuLabel:     oc.MenuLabel(intl.T(ctx, "Shell.Account")),
			Email:         u.Email(),
			Initials:      oc.Initials(u.Email()),
			SettingsHref:  WithOrg(ctx, "/app/settings"),
			SettingsLabel: intl.T(ctx, "NavigationLinks.Settings"),
			LogoutLabel:   intl.T(ctx, "Shell.Logout"),
			CSRFToken:     composables.UseCSRFToken(ctx),
			FullBleed:     p.FullBleed,
			Content:       contentHTML,
			Palette:       paletteHTML,
			LogoIcon:      iconHTML(ctx, icons.Buildings(icons.Props{Size: "22"})),
			OrgIcon:       iconHTML(ctx, icons.Buildings(icons.Props{Size: "16"})),
			CaretIcon:     iconHTML(ctx, icons.CaretDown(icons.Props{Size: "14"})),
			SearchIcon:    iconHTML(ctx, icons.MagnifyingGlass(icons.Props{Size: "16"})),
			SettingsIcon:  iconHTML(ctx, icons.Gear(icons.Props{Size: "16"})),
			LogoutIcon:    iconHTML(ctx, icons.SignOut(icons.Props{Size: "16"})),
		}
		for _, o := range oc.Organizations {
			current := shell.SelectedOrg != nil && shell.SelectedOrg.ID() == o.ID()
			if current {
				data.CurrentOrg = o.Name()
			}
			data.Orgs = append(data.Orgs, orgData{
				ID:      o.ID().String(),
				Name:    o.Name(),
				Href:    "/app?" + url.Values{"org": {o.ID().String()}}.Encode(),
				Current: current,
			})
		}
		return base.FromTemplate(templates, "shell", data).Render(ctx, w)
	})
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return Base(HeadProps{Title: p.Title, Extra: p.Head}, body).Render(ctx, w)
	})
}
