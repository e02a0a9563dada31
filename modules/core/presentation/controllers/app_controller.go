package controllers

import (
	"net/http"
	"net/url"

	"github.com/a-h/templ"
	"github.com/gorilla/mux"

	"github.com/comfortcurators/portal/modules/core/presentation/templates/pages/comingsoon"
	"github.com/comfortcurators/portal/modules/core/presentation/templates/pages/settings"
	"github.com/comfortcurators/portal/pkg/application"
	"github.com/comfortcurators/portal/pkg/middleware"
)

const MapPath = "/app/map"

// ComingSoonPages maps quick action destinations without a page yet to their title message ids.
var ComingSoonPages = map[string]string{
	"/app/property/new": "ComingSoon.Pages.AddProperty",
	"/app/tickets/new":  "ComingSoon.Pages.CreateTicket",
}

func NewAppController(app application.Application) application.Controller {
	return &AppController{app: app}
}

// AppController serves the protected root, the settings page and placeholder destinations.
type AppController struct {
	app application.Application
}

func (c *AppController) Key() string {
	return "/app"
}

func (c *AppController) Register(r *mux.Router) {
	root := r.PathPrefix("/app").Subrouter()
	root.Use(middleware.ProtectedAPI(c.app)...)
	root.HandleFunc("", c.Root).Methods(http.MethodGet)
	root.HandleFunc("/", c.Root).Methods(http.MethodGet)

	pages := r.PathPrefix("/app").Subrouter()
	pages.Use(middleware.ProtectedPage(c.app)...)
	pages.Handle("/settings", templ.Handler(settings.Index())).Methods(http.MethodGet)
	for path, titleKey := range ComingSoonPages {
		pages.Handle(path[len("/app"):], templ.Handler(comingsoon.Index(comingsoon.Props{TitleKey: titleKey}))).Methods(http.MethodGet)
	}
}

// Root sends the user to the map, keeping the selected organization.
func (c *AppController) Root(w http.ResponseWriter, r *http.Request) {
	target := MapPath
	if org := r.URL.Query().Get("org"); org != "" {
		target += "?" + url.Values{"org": {org}}.Encode()
	}
	http.Redirect(w, r, target, http.StatusFound)
}
