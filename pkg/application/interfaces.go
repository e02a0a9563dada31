package application

import (
	"context"
	"io/fs"

	"github.com/benbjohnson/hashfs"
	"github.com/gorilla/mux"
	"github.com/iota-uz/go-i18n/v2/i18n"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/comfortcurators/portal/pkg/eventbus"
	"github.com/comfortcurators/portal/pkg/spotlight"
	"github.com/comfortcurators/portal/pkg/types"
)

type Controller interface {
	Register(r *mux.Router)
	Key() string
}

type Module interface {
	Register(app Application) error
	Name() string
}

type SeedFunc func(ctx context.Context, app Application) error

type Seeder interface {
	Seed(ctx context.Context, app Application) error
	Register(seedFuncs ...SeedFunc)
}

// Worker runs until ctx is done.
type Worker func(ctx context.Context)

type MigrationManager interface {
	RegisterSchema(schemas ...fs.FS)
	Run(ctx context.Context) error
	Rollback(ctx context.Context) error
	Status(ctx context.Context) error
}

// Application with a dynamically extendable service registry
type Application interface {
	// DB is nil when the application runs on the in-memory backend.
	DB() *pgxpool.Pool
	Logger() *logrus.Logger
	EventPublisher() eventbus.EventBus
	Controllers() []Controller
	Middleware() []mux.MiddlewareFunc
	HashFsAssets() []*hashfs.FS
	Migrations() MigrationManager
	NavItems(localizer *i18n.Localizer) []types.NavigationItem
	Spotlight() *spotlight.Palette
	Seeder() Seeder
	Bundle() *i18n.Bundle
	GetSupportedLanguages() []string
	RegisterNavItems(items ...types.NavigationItem)
	RegisterControllers(controllers ...Controller)
	RegisterHashFsAssets(assets ...*hashfs.FS)
	RegisterLocaleFiles(locales ...fs.FS)
	RegisterMiddleware(middleware ...mux.MiddlewareFunc)
	RegisterWorkers(workers ...Worker)
	RunWorkers(ctx context.Context)
	Service(service interface{}) interface{}
	RegisterServices(services ...interface{})
}
