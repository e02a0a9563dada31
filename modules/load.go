package modules

import (
	"github.com/comfortcurators/portal/modules/core"
	"github.com/comfortcurators/portal/modules/logging"
	"github.com/comfortcurators/portal/modules/operations"
	"github.com/comfortcurators/portal/modules/properties"
	"github.com/comfortcurators/portal/pkg/application"
)

// BuiltInModules returns the portal modules in registration order. The order fixes the order of
// the palette's quick actions and of route matching.
func BuiltInModules(coreOpts *core.ModuleOptions, propertiesOpts *properties.ModuleOptions) []application.Module {
	return []application.Module{
		core.NewModule(coreOpts),
		properties.NewModule(propertiesOpts),
		operations.NewModule(),
		logging.NewModule(),
	}
}

func Load(app application.Application, modules ...application.Module) error {
	return application.LoadModules(app, modules...)
}
