package controllers

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/gorilla/mux"
	icons "github.com/iota-uz/icons/phosphor"

	"github.com/comfortcurators/portal/modules/operations/presentation/templates/pages/sections"
	"github.com/comfortcurators/portal/pkg/application"
	"github.com/comfortcurators/portal/pkg/middleware"
)

var Sections = map[string]sections.Section{
	"/tickets":  {Key: "Tickets", Icon: icons.Ticket(icons.Props{Size: "48"})},
	"/bundles":  {Key: "Bundles", Icon: icons.Stack(icons.Props{Size: "48"})},
	"/packages": {Key: "Packages", Icon: icons.Package(icons.Props{Size: "48"})},
}

func NewSectionsController(app application.Application) application.Controller {
	return &SectionsController{app: app}
}

// SectionsController serves the tickets, bundles and packages pages.
type SectionsController struct {
	app application.Application
}

func (c *SectionsController) Key() string {
	return "/app/operations"
}

func (c *SectionsController) Register(r *mux.Router) {
	router := r.PathPrefix("/app").Subrouter()
	router.Use(middleware.ProtectedPage(c.app)...)
	for path, section := range Sections {
		router.Handle(path, templ.Handler(sections.Index(section))).Methods(http.MethodGet)
	}
}
