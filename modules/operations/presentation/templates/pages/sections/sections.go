// Package sections renders the operational section pages. Each one is a header and an empty
// state until its records exist.
package sections

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/comfortcurators/portal/components/base"
	"github.com/comfortcurators/portal/modules/core/presentation/templates/layouts"
	"github.com/comfortcurators/portal/pkg/intl"
)

type Section struct {
	// Key is the message namespace under "Sections", e.g. "Tickets".
	Key  string
	Icon templ.Component
}

func (s Section) t(ctx context.Context, suffix string) string {
	return intl.T(ctx, "Sections."+s.Key+"."+suffix)
}

func content(s Section) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := base.PageHeader(base.PageHeaderProps{
			Title:       s.t(ctx, "Title"),
			Description: s.t(ctx, "Subtitle"),
		}).Render(ctx, w); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `<div data-section="`+s.Key+`">`); err != nil {
			return err
		}
		if err := base.EmptyState(base.EmptyStateProps{
			Icon:  s.Icon,
			Title: s.t(ctx, "Empty.Title"),
			Hint:  s.t(ctx, "Empty.Hint"),
		}).Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</div>`)
		return err
	})
}

func Index(s Section) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return layouts.Authenticated(layouts.AuthenticatedProps{
			Title: s.t(ctx, "Title"),
		}, content(s)).Render(ctx, w)
	})
}
