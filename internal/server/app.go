package server

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/comfortcurators/portal/modules"
	"github.com/comfortcurators/portal/modules/core"
	"github.com/comfortcurators/portal/modules/properties"
	"github.com/comfortcurators/portal/pkg/application"
	"github.com/comfortcurators/portal/pkg/configuration"
	"github.com/comfortcurators/portal/pkg/eventbus"
)

// NewApplication builds the application with every built-in module loaded. A nil pool selects
// the memory backend.
func NewApplication(conf *configuration.Configuration, pool *pgxpool.Pool, logger *logrus.Logger) (application.Application, error) {
	app := application.New(&application.ApplicationOptions{
		Pool:     pool,
		Bundle:   application.LoadBundle(),
		EventBus: eventbus.NewEventPublisher(logger),
		Logger:   logger,
	})
	coreOpts, err := core.OptionsFromConfig(conf)
	if err != nil {
		return nil, err
	}
	if err := modules.Load(app, modules.BuiltInModules(coreOpts, properties.OptionsFromConfig(conf))...); err != nil {
		return nil, err
	}
	return app, nil
}
