package controllers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/comfortcurators/portal/pkg/application"
	"github.com/comfortcurators/portal/pkg/httpapi"
)

func NewHealthController(app application.Application) application.Controller {
	return &HealthController{app: app}
}

type HealthController struct {
	app application.Application
}

func (c *HealthController) Key() string {
	return "/health"
}

func (c *HealthController) Register(r *mux.Router) {
	r.HandleFunc("/health", c.Health).Methods(http.MethodGet, http.MethodHead)
}

// Health reports liveness and, on the database backend, that the pool answers.
func (c *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	if pool := c.app.DB(); pool != nil {
		if err := pool.Ping(r.Context()); err != nil {
			_ = httpapi.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
