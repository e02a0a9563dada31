package itf

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/comfortcurators/portal/modules"
	"github.com/comfortcurators/portal/modules/core"
	"github.com/comfortcurators/portal/modules/core/domain/entities/identity"
	"github.com/comfortcurators/portal/modules/core/infrastructure/persistence"
	"github.com/comfortcurators/portal/modules/core/services"
	"github.com/comfortcurators/portal/modules/properties"
	"github.com/comfortcurators/portal/pkg/application"
	"github.com/comfortcurators/portal/pkg/composables"
	"github.com/comfortcurators/portal/pkg/configuration"
	"github.com/comfortcurators/portal/pkg/eventbus"
)

const (
	DemoEmail    = "demo@comfortcurators.in"
	NewHostEmail = "newhost@comfortcurators.in"
	DemoPassword = "curator123"

	SessionCookie = "sid"
)

// CoreOptions are the core module options used by test applications.
func CoreOptions() *core.ModuleOptions {
	return &core.ModuleOptions{
		Auth: services.AuthOptions{
			SessionDuration: time.Hour,
			Cookie:          services.CookieOptions{Name: SessionCookie},
		},
		UIStateTTL: time.Minute,
	}
}

// PropertiesOptions are the properties module options used by test applications.
func PropertiesOptions() *properties.ModuleOptions {
	return &properties.ModuleOptions{
		Map: configuration.MapOptions{
			TileURLTemplate: "https://tiles.test/{z}/{x}/{y}.png",
			Attribution:     "test tiles",
			TileSize:        256,
			DefaultLng:      78.9629,
			DefaultLat:      20.5937,
			DefaultZoom:     5,
			LocateZoom:      14,
			MinZoom:         0,
			MaxZoom:         22,
		},
		UIStateTTL: time.Minute,
	}
}

// Modules returns every built-in module configured for tests.
func Modules() []application.Module {
	return modules.BuiltInModules(CoreOptions(), PropertiesOptions())
}

// TestContext provides a fluent API for building test contexts
type TestContext struct {
	ctx     context.Context
	modules []application.Module
	email   string
	noSeed  bool
}

// NewTestContext creates a new TestContext builder
func NewTestContext() *TestContext {
	return &TestContext{
		ctx:     context.Background(),
		modules: []application.Module{},
	}
}

// WithModules adds modules to the test context
func (tc *TestContext) WithModules(modules ...application.Module) *TestContext {
	tc.modules = append(tc.modules, modules...)
	return tc
}

// WithUser puts the seeded identity with this email into the built context.
func (tc *TestContext) WithUser(email string) *TestContext {
	tc.email = email
	return tc
}

// WithoutSeed skips the demo fixture.
func (tc *TestContext) WithoutSeed() *TestContext {
	tc.noSeed = true
	return tc
}

// Build creates an in-memory application with all dependencies
func (tc *TestContext) Build(tb testing.TB) *TestEnvironment {
	tb.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	app := application.New(&application.ApplicationOptions{
		EventBus: eventbus.NewEventPublisher(logger),
		Logger:   logger,
	})
	mods := tc.modules
	if len(mods) == 0 {
		mods = Modules()
	}
	if err := modules.Load(app, mods...); err != nil {
		tb.Fatal(err)
	}
	if !tc.noSeed {
		if err := app.Seeder().Seed(tc.ctx, app); err != nil {
			tb.Fatal(err)
		}
	}

	ctx := application.WithApp(tc.ctx, app)
	ctx = composables.WithParams(ctx, DefaultParams())
	ctx = composables.WithLogger(ctx, logrus.NewEntry(logger))

	var user *identity.Identity
	if tc.email != "" {
		repos := app.Service(persistence.Repositories{}).(*persistence.Repositories)
		u, err := repos.Identities.GetByEmail(ctx, tc.email)
		if err != nil {
			tb.Fatal(err)
		}
		user = u
		ctx = composables.WithIdentity(ctx, u)
	}

	return &TestEnvironment{
		Ctx:    ctx,
		App:    app,
		User:   user,
		Logger: logger,
	}
}

func DefaultParams() *composables.Params {
	return &composables.Params{
		IP:            "127.0.0.1",
		UserAgent:     "itf",
		Authenticated: true,
	}
}

// TestEnvironment contains all test dependencies
type TestEnvironment struct {
	Ctx    context.Context
	App    application.Application
	User   *identity.Identity
	Logger *logrus.Logger
}

// Service retrieves a service from the application
func (te *TestEnvironment) Service(service interface{}) interface{} {
	return te.App.Service(service)
}

// GetService is a generic helper that retrieves and casts a service
func GetService[T any](te *TestEnvironment) *T {
	var zero T
	return te.App.Service(zero).(*T)
}

// Repositories returns the backing stores of the core module.
func (te *TestEnvironment) Repositories() *persistence.Repositories {
	return GetService[persistence.Repositories](te)
}

// AssertNoError fails the test if err is not nil
func (te *TestEnvironment) AssertNoError(tb testing.TB, err error) {
	tb.Helper()
	if err != nil {
		tb.Fatal(err)
	}
}
