package application

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"reflect"

	"github.com/BurntSushi/toml"
	"github.com/benbjohnson/hashfs"
	"github.com/gorilla/mux"
	"github.com/iota-uz/go-i18n/v2/i18n"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"

	"github.com/comfortcurators/portal/pkg/eventbus"
	"github.com/comfortcurators/portal/pkg/spotlight"
	"github.com/comfortcurators/portal/pkg/types"
)

// translate localizes item names. A name without a message keeps its key so a missing
// translation shows up on the page instead of failing the render.
func translate(localizer *i18n.Localizer, items []types.NavigationItem) []types.NavigationItem {
	translated := make([]types.NavigationItem, len(items))
	for i, item := range items {
		name, err := localizer.Localize(&i18n.LocalizeConfig{MessageID: item.Name})
		if err != nil {
			name = item.Name
		}
		item.Name = name
		item.Children = translate(localizer, item.Children)
		translated[i] = item
	}
	return translated
}

// ---- Seeder implementation ----

func NewSeeder(logger *logrus.Logger) Seeder {
	return &seeder{logger: logger}
}

type seeder struct {
	logger    *logrus.Logger
	seedFuncs []SeedFunc
}

func (s *seeder) Seed(ctx context.Context, app Application) error {
	for i, seedFunc := range s.seedFuncs {
		s.logger.Infof("Running seed %d/%d", i+1, len(s.seedFuncs))
		if err := seedFunc(ctx, app); err != nil {
			return err
		}
	}
	return nil
}

func (s *seeder) Register(seedFuncs ...SeedFunc) {
	s.seedFuncs = append(s.seedFuncs, seedFuncs...)
}

// ---- Application implementation ----

type ApplicationOptions struct {
	// Pool is nil for the in-memory backend.
	Pool               *pgxpool.Pool
	EventBus           eventbus.EventBus
	Logger             *logrus.Logger
	Bundle             *i18n.Bundle
	SupportedLanguages []string
}

func LoadBundle() *i18n.Bundle {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)
	return bundle
}

func New(opts *ApplicationOptions) Application {
	supportedLanguages := opts.SupportedLanguages
	if len(supportedLanguages) == 0 {
		supportedLanguages = []string{"en"}
	}
	bundle := opts.Bundle
	if bundle == nil {
		bundle = LoadBundle()
	}
	logger := opts.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &application{
		pool:               opts.Pool,
		logger:             logger,
		eventPublisher:     opts.EventBus,
		controllers:        make(map[string]Controller),
		services:           make(map[reflect.Type]interface{}),
		spotlight:          spotlight.New(),
		bundle:             bundle,
		migrations:         NewMigrationManager(opts.Pool, logger),
		seeder:             NewSeeder(logger),
		supportedLanguages: supportedLanguages,
	}
}

type application struct {
	pool               *pgxpool.Pool
	logger             *logrus.Logger
	eventPublisher     eventbus.EventBus
	services           map[reflect.Type]interface{}
	controllers        map[string]Controller
	controllerOrder    []string
	middleware         []mux.MiddlewareFunc
	hashFsAssets       []*hashfs.FS
	bundle             *i18n.Bundle
	spotlight          *spotlight.Palette
	migrations         MigrationManager
	seeder             Seeder
	navItems           []types.NavigationItem
	workers            []Worker
	supportedLanguages []string
}

func (app *application) Spotlight() *spotlight.Palette {
	return app.spotlight
}

func (app *application) NavItems(localizer *i18n.Localizer) []types.NavigationItem {
	return translate(localizer, app.navItems)
}

func (app *application) RegisterNavItems(items ...types.NavigationItem) {
	app.navItems = append(app.navItems, items...)
}

func (app *application) Middleware() []mux.MiddlewareFunc {
	return app.middleware
}

func (app *application) DB() *pgxpool.Pool {
	return app.pool
}

func (app *application) Logger() *logrus.Logger {
	return app.logger
}

func (app *application) EventPublisher() eventbus.EventBus {
	return app.eventPublisher
}

// Controllers returns controllers in registration order; route matching depends on it.
func (app *application) Controllers() []Controller {
	controllers := make([]Controller, 0, len(app.controllerOrder))
	for _, key := range app.controllerOrder {
		controllers = append(controllers, app.controllers[key])
	}
	return controllers
}

func (app *application) HashFsAssets() []*hashfs.FS {
	return app.hashFsAssets
}

func (app *application) Migrations() MigrationManager {
	return app.migrations
}

func (app *application) Seeder() Seeder {
	return app.seeder
}

func (app *application) RegisterControllers(controllers ...Controller) {
	for _, c := range controllers {
		if _, exists := app.controllers[c.Key()]; !exists {
			app.controllerOrder = append(app.controllerOrder, c.Key())
		}
		app.controllers[c.Key()] = c
	}
}

func (app *application) RegisterMiddleware(middleware ...mux.MiddlewareFunc) {
	app.middleware = append(app.middleware, middleware...)
}

func (app *application) RegisterHashFsAssets(assets ...*hashfs.FS) {
	app.hashFsAssets = append(app.hashFsAssets, assets...)
}

// RegisterLocaleFiles parses every message file of the given trees. A broken locale file is a
// programming error and panics at boot.
func (app *application) RegisterLocaleFiles(locales ...fs.FS) {
	for _, localeFs := range locales {
		err := fs.WalkDir(localeFs, ".", func(path string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return err
			}
			data, err := fs.ReadFile(localeFs, path)
			if err != nil {
				return err
			}
			_, err = app.bundle.ParseMessageFileBytes(data, filepath.Base(path))
			return err
		})
		if err != nil {
			panic(fmt.Errorf("register locale files: %w", err))
		}
	}
}

func (app *application) RegisterWorkers(workers ...Worker) {
	app.workers = append(app.workers, workers...)
}

// RunWorkers starts every registered worker in its own goroutine and blocks until all return.
func (app *application) RunWorkers(ctx context.Context) {
	var g errgroup.Group
	for _, w := range app.workers {
		g.Go(func() error {
			w(ctx)
			return nil
		})
	}
	_ = g.Wait()
}

// RegisterServices registers a new service in the application by its type
func (app *application) RegisterServices(services ...interface{}) {
	for _, service := range services {
		serviceType := reflect.TypeOf(service).Elem()
		app.services[serviceType] = service
	}
}

// Service retrieves a service by its type
func (app *application) Service(service interface{}) interface{} {
	serviceType := reflect.TypeOf(service)
	svc, exists := app.services[serviceType]
	if !exists {
		panic(fmt.Sprintf("service %s not found", serviceType.Name()))
	}
	return svc
}

func (app *application) Bundle() *i18n.Bundle {
	return app.bundle
}

func (app *application) GetSupportedLanguages() []string {
	return app.supportedLanguages
}
