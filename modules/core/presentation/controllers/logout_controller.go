package controllers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/comfortcurators/portal/modules/core/services"
	"github.com/comfortcurators/portal/pkg/application"
	"github.com/comfortcurators/portal/pkg/composables"
	"github.com/comfortcurators/portal/pkg/middleware"
)

func NewLogoutController(app application.Application) application.Controller {
	return &LogoutController{
		app:         app,
		authService: app.Service(services.AuthService{}).(*services.AuthService),
	}
}

type LogoutController struct {
	app         application.Application
	authService *services.AuthService
}

func (c *LogoutController) Key() string {
	return "/logout"
}

func (c *LogoutController) Register(r *mux.Router) {
	router := r.PathPrefix("/logout").Subrouter()
	router.Use(middleware.Authorize(c.authService, c.authService.CookieName()), middleware.NoStore())
	router.HandleFunc("", c.Logout).Methods(http.MethodPost)
}

// Logout ends the session and asks the browser to drop cached pages so nothing of the
// signed-in state survives.
func (c *LogoutController) Logout(w http.ResponseWriter, r *http.Request) {
	if sess, err := composables.UseSession(r.Context()); err == nil {
		if err := c.authService.Logout(r.Context(), sess.Token()); err != nil {
			composables.UseLogger(r.Context()).WithError(err).Error("failed to delete session")
		}
	}
	http.SetCookie(w, c.authService.ExpiredCookie())
	w.Header().Set("Clear-Site-Data", `"cache"`)
	http.Redirect(w, r, "/login", http.StatusFound)
}
