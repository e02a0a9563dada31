package settings

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/comfortcurators/portal/components/base"
	"github.com/comfortcurators/portal/modules/core/presentation/templates/layouts"
	"github.com/comfortcurators/portal/pkg/intl"
)

var panels = []string{"Organization", "Billing", "Compliance"}

func content() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := base.PageHeader(base.PageHeaderProps{
			Title:       intl.T(ctx, "Settings.Title"),
			Description: intl.T(ctx, "Settings.Subtitle"),
		}).Render(ctx, w); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `<div class="max-w-2xl space-y-6" data-settings-panels>`); err != nil {
			return err
		}
		for _, panel := range panels {
			if err := base.Card(base.CardProps{
				Title:       intl.T(ctx, "Settings."+panel+".Title"),
				Description: intl.T(ctx, "Settings."+panel+".Text"),
			}).Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</div>`)
		return err
	})
}

func Index() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return layouts.Authenticated(layouts.AuthenticatedProps{
			Title: intl.T(ctx, "Settings.Title"),
		}, content()).Render(ctx, w)
	})
}
