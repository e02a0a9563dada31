package operations

import (
	"embed"

	"github.com/comfortcurators/portal/modules/operations/presentation/controllers"
	"github.com/comfortcurators/portal/pkg/application"
	"github.com/comfortcurators/portal/pkg/spotlight"
)

//go:embed presentation/locales/*.json
var LocaleFiles embed.FS

func NewModule() application.Module {
	return &Module{}
}

type Module struct {
}

func (m *Module) Register(app application.Application) error {
	app.RegisterLocaleFiles(&LocaleFiles)
	app.Spotlight().Add(spotlight.GroupQuickActions, CreateTicketCommand)
	app.RegisterControllers(
		controllers.NewSectionsController(app),
	)
	return nil
}

func (m *Module) Name() string {
	return "operations"
}
