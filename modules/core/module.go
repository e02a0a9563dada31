package core

import (
	"context"
	"embed"
	"time"

	"github.com/gorilla/mux"

	"github.com/comfortcurators/portal/internal/assets"
	"github.com/comfortcurators/portal/modules/core/infrastructure/persistence"
	"github.com/comfortcurators/portal/modules/core/infrastructure/persistence/memory"
	"github.com/comfortcurators/portal/modules/core/infrastructure/persistence/schema"
	"github.com/comfortcurators/portal/modules/core/presentation/controllers"
	"github.com/comfortcurators/portal/modules/core/seed"
	"github.com/comfortcurators/portal/modules/core/services"
	"github.com/comfortcurators/portal/pkg/application"
	"github.com/comfortcurators/portal/pkg/configuration"
	"github.com/comfortcurators/portal/pkg/middleware"
	"github.com/comfortcurators/portal/pkg/spotlight"
	"github.com/comfortcurators/portal/pkg/viewstate"
)

//go:embed presentation/locales/*.json
var LocaleFiles embed.FS

type ModuleOptions struct {
	Auth       services.AuthOptions
	UIStateTTL time.Duration
	// AuthLimit guards the sign-in and sign-up posts.
	AuthLimit mux.MiddlewareFunc
}

// OptionsFromConfig derives the module options from the process configuration.
func OptionsFromConfig(conf *configuration.Configuration) (*ModuleOptions, error) {
	store, err := middleware.NewStore(conf.RateLimit)
	if err != nil {
		return nil, err
	}
	perMinute := 0
	if conf.RateLimit.Enabled {
		perMinute = conf.RateLimit.AuthPerIP
	}
	return &ModuleOptions{
		Auth: services.AuthOptions{
			SessionDuration: conf.SessionDuration,
			Cookie: services.CookieOptions{
				Name:   conf.SidCookieKey,
				Domain: conf.Domain,
				Secure: conf.Scheme() == "https",
			},
		},
		UIStateTTL: conf.UIStateTTL,
		AuthLimit: middleware.RateLimit(middleware.RateLimitConfig{
			RequestsPerPeriod: perMinute,
			Period:            time.Minute,
			Store:             store,
			RealIPHeader:      conf.RealIPHeader,
			Prefix:            "auth",
		}),
	}, nil
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
		var err error
		if opts, err = OptionsFromConfig(configuration.Use()); err != nil {
			return err
		}
	}
	app.Migrations().RegisterSchema(schema.FS)
	app.RegisterLocaleFiles(&LocaleFiles)

	repos := persistence.NewRepositories()
	if app.DB() == nil {
		repos = memory.NewRepositories()
	}

	sessionService := services.NewSessionService(repos.Sessions, app.EventPublisher())
	tabs := services.NewTabRegistry(opts.UIStateTTL)
	app.RegisterServices(
		repos,
		sessionService,
		services.NewAuthService(repos.Identities, repos.Profiles, sessionService, opts.Auth, app.Logger()),
		services.NewOrgContextService(repos.Organizations, repos.Profiles),
		services.NewShellService(tabs, app.Spotlight()),
	)
	app.RegisterWorkers(func(ctx context.Context) {
		tabs.Run(ctx, viewstate.SweepInterval(opts.UIStateTTL))
	})

	app.RegisterNavItems(NavItems...)
	app.Spotlight().Add(spotlight.GroupNavigation, NavigationCommands()...)
	app.RegisterHashFsAssets(assets.FS)
	app.Seeder().Register(seed.DemoData)

	authLimit := opts.AuthLimit
	if authLimit == nil {
		authLimit = middleware.RateLimit(middleware.RateLimitConfig{})
	}
	app.RegisterControllers(
		controllers.NewHealthController(app),
		controllers.NewLandingController(app),
		controllers.NewLoginController(app, authLimit),
		controllers.NewSignUpController(app, authLimit),
		controllers.NewLogoutController(app),
		controllers.NewAppController(app),
		controllers.NewShellController(app),
		controllers.NewSpotlightController(app),
	)
	return nil
}

func (m *Module) Name() string {
	return "core"
}
