package landing

import (
	"context"
	"embed"
	"html/template"
	"io"
	"strconv"
	"time"

	"github.com/a-h/templ"
	"github.com/iota-uz/go-i18n/v2/i18n"
	icons "github.com/iota-uz/icons/phosphor"

	"github.com/comfortcurators/portal/components/base"
	"github.com/comfortcurators/portal/modules/core/presentation/templates/layouts"
	"github.com/comfortcurators/portal/pkg/intl"
)

//go:embed templates/*.html
var templatesFS embed.FS

var templates = template.Must(template.New("landing").ParseFS(templatesFS, "templates/*.html"))

type Props struct {
	SignedIn bool
}

type texts struct {
	OpenApp         string
	LogIn           string
	GetStarted      string
	HeroTitle       string
	HeroTitleSecond string
	HeroText        string
	StartTrial      string
	SignIn          string
	FeaturesTitle   string
	CTATitle        string
	CTAText         string
	CTAButton       string
	Copyright       string
}

type data struct {
	T                  texts
	SignedIn           bool
	Features           []template.HTML
	LogoIcon           template.HTML
	FooterIcon         template.HTML
	ArrowIcon          template.HTML
	PrimaryButton      string
	GhostButton        string
	PrimaryButtonLarge string
	OutlineButtonLarge string
}

func t(ctx context.Context, id string) string {
	return intl.T(ctx, "Landing."+id)
}

func copyright(ctx context.Context) string {
	l, ok := intl.UseLocalizer(ctx)
	if !ok {
		return ""
	}
	s, err := l.Localize(&i18n.LocalizeConfig{
		MessageID:    "Landing.Copyright",
		TemplateData: map[string]string{"Year": strconv.Itoa(time.Now().Year())},
	})
	if err != nil {
		return ""
	}
	return s
}

func Index(p Props) templ.Component {
	content := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		d := data{
			SignedIn: p.SignedIn,
			T: texts{
				OpenApp:         t(ctx, "OpenApp"),
				LogIn:           t(ctx, "LogIn"),
				GetStarted:      t(ctx, "GetStarted"),
				HeroTitle:       t(ctx, "Hero.Title"),
				HeroTitleSecond: t(ctx, "Hero.TitleSecond"),
				HeroText:        t(ctx, "Hero.Text"),
				StartTrial:      t(ctx, "Hero.StartTrial"),
				SignIn:          t(ctx, "Hero.SignIn"),
				FeaturesTitle:   t(ctx, "Features.Title"),
				CTATitle:        t(ctx, "CTA.Title"),
				CTAText:         t(ctx, "CTA.Text"),
				CTAButton:       t(ctx, "CTA.Button"),
				Copyright:       copyright(ctx),
			},
			PrimaryButton:      base.ButtonClass(base.ButtonPrimary, base.ButtonSizeNormal),
			GhostButton:        base.ButtonClass(base.ButtonGhost, base.ButtonSizeNormal),
			PrimaryButtonLarge: base.ButtonClass(base.ButtonPrimary, base.ButtonSizeLarge, "gap-2"),
			OutlineButtonLarge: base.ButtonClass(base.ButtonOutline, base.ButtonSizeLarge),
		}
		var err error
		if d.LogoIcon, err = base.HTML(ctx, icons.Buildings(icons.Props{Size: "24"})); err != nil {
			return err
		}
		if d.FooterIcon, err = base.HTML(ctx, icons.Buildings(icons.Props{Size: "20"})); err != nil {
			return err
		}
		if d.ArrowIcon, err = base.HTML(ctx, icons.ArrowRight(icons.Props{Size: "16"})); err != nil {
			return err
		}
		features := []base.CardProps{
			{Icon: icons.MapTrifold(icons.Props{Size: "32"}), Title: t(ctx, "Features.Map.Title"), Description: t(ctx, "Features.Map.Text")},
			{Icon: icons.Ticket(icons.Props{Size: "32"}), Title: t(ctx, "Features.Ticketing.Title"), Description: t(ctx, "Features.Ticketing.Text")},
			{Icon: icons.Package(icons.Props{Size: "32"}), Title: t(ctx, "Features.Inventory.Title"), Description: t(ctx, "Features.Inventory.Text")},
		}
		for _, f := range features {
			h, err := base.HTML(ctx, base.Card(f))
			if err != nil {
				return err
			}
			d.Features = append(d.Features, h)
		}
		return base.FromTemplate(templates, "landing", d).Render(ctx, w)
	})
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return layouts.Base(layouts.HeadProps{
			Description: t(ctx, "Meta.Summary"),
		}, content).Render(ctx, w)
	})
}
