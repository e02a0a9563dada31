// Package comingsoon renders in-shell placeholders for destinations that exist in navigation
// but have no page yet.
package comingsoon

import (
	"context"
	"io"

	"github.com/a-h/templ"
	icons "github.com/iota-uz/icons/phosphor"

	"github.com/comfortcurators/portal/components/base"
	"github.com/comfortcurators/portal/modules/core/presentation/templates/layouts"
	"github.com/comfortcurators/portal/pkg/intl"
)

type Props struct {
	// TitleKey is the message id of the page title.
	TitleKey string
}

func Index(p Props) templ.Component {
	content := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		title := intl.T(ctx, p.TitleKey)
		if err := base.PageHeader(base.PageHeaderProps{
			Title:       title,
			Description: intl.T(ctx, "ComingSoon.Subtitle"),
		}).Render(ctx, w); err != nil {
			return err
		}
		return base.EmptyState(base.EmptyStateProps{
			Icon:  icons.Hourglass(icons.Props{Size: "48"}),
			Title: intl.T(ctx, "ComingSoon.Title"),
			Hint:  intl.T(ctx, "ComingSoon.Hint"),
		}).Render(ctx, w)
	})
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return layouts.Authenticated(layouts.AuthenticatedProps{
			Title: intl.T(ctx, p.TitleKey),
		}, content).Render(ctx, w)
	})
}
