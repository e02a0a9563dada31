package controllers

import (
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/gorilla/mux"

	"github.com/comfortcurators/portal/pkg/application"
	"github.com/comfortcurators/portal/pkg/middleware"
)

func NewSpotlightController(app application.Application) application.Controller {
	return &SpotlightController{app: app}
}

type SpotlightController struct {
	app application.Application
}

func (c *SpotlightController) Key() string {
	return "/app/spotlight"
}

func (c *SpotlightController) Register(r *mux.Router) {
	router := r.PathPrefix("/app/spotlight").Subrouter()
	router.Use(middleware.ProtectedAPI(c.app)...)
	router.HandleFunc("/search", c.Search).Methods(http.MethodGet)
}

// Search renders the palette results matching q as an HTML fragment.
func (c *SpotlightController) Search(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	templ.Handler(c.app.Spotlight().Results(q)).ServeHTTP(w, r)
}
