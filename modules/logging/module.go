package logging

import (
	"github.com/comfortcurators/portal/modules/logging/domain/entities/authenticationlog"
	"github.com/comfortcurators/portal/modules/logging/handlers"
	"github.com/comfortcurators/portal/modules/logging/infrastructure/persistence"
	"github.com/comfortcurators/portal/modules/logging/infrastructure/persistence/memory"
	"github.com/comfortcurators/portal/modules/logging/infrastructure/persistence/schema"
	"github.com/comfortcurators/portal/modules/logging/services"
	"github.com/comfortcurators/portal/pkg/application"
)

func NewModule() application.Module {
	return &Module{}
}

type Module struct {
}

func (m *Module) Register(app application.Application) error {
	app.Migrations().RegisterSchema(schema.FS)

	var repo authenticationlog.Repository = persistence.NewAuthenticationLogRepository()
	if app.DB() == nil {
		repo = memory.NewAuthenticationLogRepository()
	}
	logsService := services.NewLogsService(repo)
	app.RegisterServices(logsService)
	handlers.RegisterSessionEventHandlers(
		app.EventPublisher(),
		handlers.NewSessionEventsHandler(app.DB(), logsService, app.Logger()),
	)
	return nil
}

func (m *Module) Name() string {
	return "logging"
}
