package spotlight

import (
	"context"
	"embed"
	"html/template"
	"io"

	"github.com/a-h/templ"

	"github.com/comfortcurators/portal/components/base"
)

//go:embed templates/*.html
var templatesFS embed.FS

var templates = template.Must(template.New("spotlight").ParseFS(templatesFS, "templates/*.html"))

type linkItemData struct {
	Label string
	Href  string
	Icon  template.HTML
}

// LinkItem is one selectable palette row. Selecting it posts href to the palette select endpoint.
func LinkItem(label, href string, icon templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		iconHTML, err := base.HTML(ctx, icon)
		if err != nil {
			return err
		}
		return base.FromTemplate(templates, "link_item", linkItemData{
			Label: label,
			Href:  href,
			Icon:  iconHTML,
		}).Render(ctx, w)
	})
}

type GroupProps struct {
	Heading string
	Items   []templ.Component
}

type groupData struct {
	Heading string
	Items   []template.HTML
}

type ResultsProps struct {
	Groups    []GroupProps
	EmptyText string
}

type resultsData struct {
	Groups    []groupData
	EmptyText string
}

// Results renders the grouped search results, or EmptyText when no group has items.
func Results(p ResultsProps) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		data := resultsData{EmptyText: p.EmptyText}
		for _, g := range p.Groups {
			if len(g.Items) == 0 {
				continue
			}
			gd := groupData{Heading: g.Heading}
			for _, it := range g.Items {
				h, err := base.HTML(ctx, it)
				if err != nil {
					return err
				}
				gd.Items = append(gd.Items, h)
			}
			data.Groups = append(data.Groups, gd)
		}
		return base.FromTemplate(templates, "results", data).Render(ctx, w)
	})
}

type DialogProps struct {
	TabID       string
	Placeholder string
	SearchURL   string
	Open        bool
	Results     templ.Component
}

type dialogData struct {
	TabID       string
	Placeholder string
	SearchURL   string
	Open        bool
	Results     template.HTML
}

// Dialog is the command palette overlay. It is rendered hidden unless Open.
func Dialog(p DialogProps) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		results, err := base.HTML(ctx, p.Results)
		if err != nil {
			return err
		}
		return base.FromTemplate(templates, "dialog", dialogData{
			TabID:       p.TabID,
			Placeholder: p.Placeholder,
			SearchURL:   p.SearchURL,
			Open:        p.Open,
			Results:     results,
		}).Render(ctx, w)
	})
}
