package controllers

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/gorilla/mux"

	"github.com/comfortcurators/portal/modules/core/presentation/templates/pages/landing"
	"github.com/comfortcurators/portal/pkg/application"
	"github.com/comfortcurators/portal/pkg/composables"
	"github.com/comfortcurators/portal/pkg/middleware"
)

func NewLandingController(app application.Application) application.Controller {
	return &LandingController{app: app}
}

type LandingController struct {
	app application.Application
}

func (c *LandingController) Key() string {
	return "/"
}

func (c *LandingController) Register(r *mux.Router) {
	router := r.PathPrefix("/").Subrouter()
	router.Use(middleware.PublicPage(c.app)...)
	router.HandleFunc("/", c.Index).Methods(http.MethodGet)
}

func (c *LandingController) Index(w http.ResponseWriter, r *http.Request) {
	templ.Handler(landing.Index(landing.Props{
		SignedIn: composables.UseAuthenticated(r.Context()),
	})).ServeHTTP(w, r)
}
