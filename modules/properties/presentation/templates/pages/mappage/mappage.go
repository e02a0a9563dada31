// Package mappage renders the full-bleed property map with its add-property control, the empty
// state overlay and the property detail panel.
package mappage

import (
	"context"
	"embed"
	"html/template"
	"io"

	"github.com/a-h/templ"
	icons "github.com/iota-uz/icons/phosphor"

	"github.com/comfortcurators/portal/components/base"
	"github.com/comfortcurators/portal/modules/core/presentation/templates/layouts"
	"github.com/comfortcurators/portal/modules/properties/domain/mapview"
	"github.com/comfortcurators/portal/pkg/intl"
)

//go:embed templates/*.html
var templatesFS embed.FS

var templates = template.Must(template.New("mappage").ParseFS(templatesFS, "templates/*.html"))

const (
	maplibreStylesheet = "https://unpkg.com/maplibre-gl@4.7.1/dist/maplibre-gl.css"
	maplibreScript     = "https://unpkg.com/maplibre-gl@4.7.1/dist/maplibre-gl.js"
)

type Tiles struct {
	URLTemplate string
	Attribution string
	Size        int
	MinZoom     float64
	MaxZoom     float64
}

type Props struct {
	ViewID string
	View   *mapview.View
	Tiles  Tiles
	// Empty shows the "no properties yet" overlay.
	Empty bool
}

type headData struct {
	StylesheetURL string
	ScriptURL     string
}

type mapData struct {
	ViewID      string
	TileURL     string
	TileSize    int
	Attribution string
	Lng         float64
	Lat         float64
	Zoom        float64
	MinZoom     float64
	MaxZoom     float64
	Adding      bool
	Selected    *mapview.PropertySummary
	Empty       bool

	AddLabel         string
	AddingLabel      string
	AddClass         string
	LocateLabel      string
	LocateClass      string
	EmptyTitle       string
	EmptyAction      string
	EmptyActionClass string
	CloseLabel       string
	CloseClass       string

	PlusIcon   template.HTML
	LocateIcon template.HTML
	EmptyIcon  template.HTML
	CloseIcon  template.HTML
}

// AddModeLabel is the caption of the add-property control for the given mode.
func AddModeLabel(ctx context.Context, adding bool) string {
	if adding {
		return intl.T(ctx, "MapView.ClickToAdd")
	}
	return intl.T(ctx, "MapView.AddProperty")
}

func icon(ctx context.Context, c templ.Component) template.HTML {
	h, err := base.HTML(ctx, c)
	if err != nil {
		return ""
	}
	return h
}

func content(p Props) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		cam := p.View.Camera()
		return base.FromTemplate(templates, "map", mapData{
			ViewID:      p.ViewID,
			TileURL:     p.Tiles.URLTemplate,
			TileSize:    p.Tiles.Size,
			Attribution: p.Tiles.Attribution,
			Lng:         cam.Center.Lng,
			Lat:         cam.Center.Lat,
			Zoom:        cam.Zoom,
			MinZoom:     p.Tiles.MinZoom,
			MaxZoom:     p.Tiles.MaxZoom,
			Adding:      p.View.Adding(),
			Selected:    p.View.Selected(),
			Empty:       p.Empty,

			AddLabel:         AddModeLabel(ctx, false),
			AddingLabel:      AddModeLabel(ctx, true),
			AddClass:         base.ButtonClass(base.ButtonPrimary, base.ButtonSizeNormal, "shadow-md"),
			LocateLabel:      intl.T(ctx, "MapView.Locate"),
			LocateClass:      base.ButtonClass(base.ButtonOutline, base.ButtonSizeIcon, "shadow-md"),
			EmptyTitle:       intl.T(ctx, "MapView.Empty.Title"),
			EmptyAction:      intl.T(ctx, "MapView.Empty.Action"),
			EmptyActionClass: base.ButtonClass(base.ButtonPrimary, base.ButtonSizeSmall, "mt-4"),
			CloseLabel:       intl.T(ctx, "MapView.Detail.Close"),
			CloseClass:       base.ButtonClass(base.ButtonGhost, base.ButtonSizeIcon, "h-8 w-8"),

			PlusIcon:   icon(ctx, icons.Plus(icons.Props{Size: "16"})),
			LocateIcon: icon(ctx, icons.Crosshair(icons.Props{Size: "18"})),
			EmptyIcon:  icon(ctx, icons.MapPin(icons.Props{Size: "32"})),
			CloseIcon:  icon(ctx, icons.X(icons.Props{Size: "16"})),
		}).Render(ctx, w)
	})
}

func Index(p Props) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return layouts.Authenticated(layouts.AuthenticatedProps{
			Title:     intl.T(ctx, "MapView.Meta.Title"),
			FullBleed: true,
			Head: base.FromTemplate(templates, "head", headData{
				StylesheetURL: maplibreStylesheet,
				ScriptURL:     maplibreScript,
			}),
		}, content(p)).Render(ctx, w)
	})
}
