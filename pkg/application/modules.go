package application

func LoadModules(app Application, modules ...Module) error {
	for _, module := range modules {
		if err := module.Register(app); err != nil {
			return err
		}
		app.Logger().Infof("Module %s registered", module.Name())
	}
	return nil
}
