package base

import (
	"context"
	"html/template"
	"io"

	"github.com/a-h/templ"
)

type EmptyStateProps struct {
	Icon   templ.Component
	Title  string
	Hint   string
	Action templ.Component
}

type emptyStateData struct {
	Icon   template.HTML
	Title  string
	Hint   string
	Action template.HTML
}

func EmptyState(p EmptyStateProps) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		icon, err := HTML(ctx, p.Icon)
		if err != nil {
			return err
		}
		action, err := HTML(ctx, p.Action)
		if err != nil {
			return err
		}
		return FromTemplate(templates, "empty_state", emptyStateData{
			Icon:   icon,
			Title:  p.Title,
			Hint:   p.Hint,
			Action: action,
		}).Render(ctx, w)
	})
}

type CardProps struct {
	Icon        templ.Component
	Title       string
	Description string
}

type cardData struct {
	Icon        template.HTML
	Title       string
	Description string
}

func Card(p CardProps) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		icon, err := HTML(ctx, p.Icon)
		if err != nil {
			return err
		}
		return FromTemplate(templates, "card", cardData{
			Icon:        icon,
			Title:       p.Title,
			Description: p.Description,
		}).Render(ctx, w)
	})
}

type PageHeaderProps struct {
	Title       string
	Description string
}

func PageHeader(p PageHeaderProps) templ.Component {
	return FromTemplate(templates, "page_header", p)
}
