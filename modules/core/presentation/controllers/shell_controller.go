package controllers

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/comfortcurators/portal/modules/core/services"
	"github.com/comfortcurators/portal/pkg/application"
	"github.com/comfortcurators/portal/pkg/composables"
	"github.com/comfortcurators/portal/pkg/httpapi"
	"github.com/comfortcurators/portal/pkg/middleware"
)

type paletteResponse struct {
	Open     bool   `json:"open"`
	Navigate string `json:"navigate,omitempty"`
}

type shortcutResponse struct {
	Consumed bool `json:"consumed"`
	Open     bool `json:"open"`
}

func NewShellController(app application.Application) application.Controller {
	return &ShellController{
		app:          app,
		shellService: app.Service(services.ShellService{}).(*services.ShellService),
	}
}

// ShellController serves the per-tab UI state of the application shell.
type ShellController struct {
	app          application.Application
	shellService *services.ShellService
}

func (c *ShellController) Key() string {
	return "/app/shell"
}

func (c *ShellController) Register(r *mux.Router) {
	router := r.PathPrefix("/app/shell/{tab}").Subrouter()
	router.Use(middleware.ProtectedAPI(c.app)...)
	router.HandleFunc("/palette/toggle", c.TogglePalette).Methods(http.MethodPost)
	router.HandleFunc("/palette/close", c.ClosePalette).Methods(http.MethodPost)
	router.HandleFunc("/palette/select", c.Select).Methods(http.MethodPost)
	router.HandleFunc("/shortcut", c.Shortcut).Methods(http.MethodPost)
	router.HandleFunc("/release", c.Release).Methods(http.MethodPost)
}

func (c *ShellController) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, services.ErrTabNotFound):
		_ = httpapi.WriteError(w, http.StatusNotFound, httpapi.CodeTabNotFound, "tab not found", map[string]string{"tab": mux.Vars(r)["tab"]})
	case errors.Is(err, services.ErrUnknownCommand):
		_ = httpapi.WriteError(w, http.StatusBadRequest, httpapi.CodeUnknownCommand, "unknown palette command", nil)
	default:
		composables.UseLogger(r.Context()).WithError(err).Error("shell state update failed")
		_ = httpapi.WriteInternal(w)
	}
}

func (c *ShellController) TogglePalette(w http.ResponseWriter, r *http.Request) {
	open, err := c.shellService.TogglePalette(r.Context(), mux.Vars(r)["tab"])
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, paletteResponse{Open: open})
}

func (c *ShellController) ClosePalette(w http.ResponseWriter, r *http.Request) {
	if err := c.shellService.ClosePalette(r.Context(), mux.Vars(r)["tab"]); err != nil {
		c.writeError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, paletteResponse{Open: false})
}

func (c *ShellController) Shortcut(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, httpapi.CodeInvalidRequest, err.Error(), nil)
		return
	}
	meta, _ := strconv.ParseBool(r.PostFormValue("meta"))
	ctrl, _ := strconv.ParseBool(r.PostFormValue("ctrl"))
	consumed, open, err := c.shellService.Shortcut(r.Context(), mux.Vars(r)["tab"], r.PostFormValue("key"), meta, ctrl)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, shortcutResponse{Consumed: consumed, Open: open})
}

// Select closes the palette and answers with the destination, keeping the tab's organization.
func (c *ShellController) Select(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, httpapi.CodeInvalidRequest, err.Error(), nil)
		return
	}
	tabID := mux.Vars(r)["tab"]
	dest, err := c.shellService.Select(r.Context(), tabID, r.PostFormValue("href"))
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	if tab, err := c.shellService.Get(r.Context(), tabID); err == nil && tab.SelectedOrgID != uuid.Nil {
		dest = withOrgParam(dest, tab.SelectedOrgID)
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, paletteResponse{Open: false, Navigate: dest})
}

func (c *ShellController) Release(w http.ResponseWriter, r *http.Request) {
	c.shellService.Release(r.Context(), mux.Vars(r)["tab"])
	httpapi.WriteNoContent(w)
}

func withOrgParam(href string, orgID uuid.UUID) string {
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	q := u.Query()
	q.Set("org", orgID.String())
	u.RawQuery = q.Encode()
	return u.String()
}
