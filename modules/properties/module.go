package properties

import (
	"context"
	"embed"
	"time"

	"github.com/comfortcurators/portal/modules/properties/domain/mapview"
	"github.com/comfortcurators/portal/modules/properties/handlers"
	"github.com/comfortcurators/portal/modules/properties/presentation/controllers"
	"github.com/comfortcurators/portal/modules/properties/presentation/templates/pages/mappage"
	"github.com/comfortcurators/portal/modules/properties/services"
	"github.com/comfortcurators/portal/pkg/application"
	"github.com/comfortcurators/portal/pkg/configuration"
	"github.com/comfortcurators/portal/pkg/spotlight"
	"github.com/comfortcurators/portal/pkg/viewstate"
)

//go:embed presentation/locales/*.json
var LocaleFiles embed.FS

type ModuleOptions struct {
	Map        configuration.MapOptions
	UIStateTTL time.Duration
}

func OptionsFromConfig(conf *configuration.Configuration) *ModuleOptions {
	return &ModuleOptions{
		Map:        conf.Map,
		UIStateTTL: conf.UIStateTTL,
	}
}

func NewModule(opts *ModuleOptions) application.Module {
	return &Module{
		options: opts,
	}
}

type Module struct {
	options *ModuleOptions
}

func (m *Module) Register(app application.Application) error {
	opts := m.options
	if opts == nil {
		opts = OptionsFromConfig(configuration.Use())
	}
	app.RegisterLocaleFiles(&LocaleFiles)

	views := services.NewViewRegistry(opts.UIStateTTL)
	app.RegisterServices(
		services.NewMapViewService(views, mapview.Options{
			Camera: mapview.Camera{
				Center: mapview.Coordinate{Lng: opts.Map.DefaultLng, Lat: opts.Map.DefaultLat},
				Zoom:   opts.Map.DefaultZoom,
			},
			LocateZoom: opts.Map.LocateZoom,
		}, app.EventPublisher()),
	)
	app.RegisterWorkers(func(ctx context.Context) {
		views.Run(ctx, viewstate.SweepInterval(opts.UIStateTTL))
	})
	handlers.RegisterPinHandler(app.EventPublisher(), app.Logger())

	app.Spotlight().Add(spotlight.GroupQuickActions, AddPropertyCommand)
	app.RegisterControllers(
		controllers.NewMapController(app, mappage.Tiles{
			URLTemplate: opts.Map.TileURLTemplate,
			Attribution: opts.Map.Attribution,
			Size:        opts.Map.TileSize,
			MinZoom:     opts.Map.MinZoom,
			MaxZoom:     opts.Map.MaxZoom,
		}),
	)
	return nil
}

func (m *Module) Name() string {
	return "properties"
}
