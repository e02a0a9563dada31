package controllers

import (
	"net/http"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/comfortcurators/portal/modules/properties/domain/mapview"
	"github.com/comfortcurators/portal/modules/properties/presentation/templates/pages/mappage"
	"github.com/comfortcurators/portal/modules/properties/services"
	"github.com/comfortcurators/portal/pkg/application"
	"github.com/comfortcurators/portal/pkg/composables"
	"github.com/comfortcurators/portal/pkg/httpapi"
	"github.com/comfortcurators/portal/pkg/middleware"
)

type addModeResponse struct {
	Adding bool   `json:"adding"`
	Label  string `json:"label"`
}

type clickResponse struct {
	Captured bool   `json:"captured"`
	Adding   bool   `json:"adding"`
	Label    string `json:"label"`
}

type cameraResponse struct {
	Lng  float64 `json:"lng"`
	Lat  float64 `json:"lat"`
	Zoom float64 `json:"zoom"`
}

type locateResponse struct {
	Moved  bool           `json:"moved"`
	Camera cameraResponse `json:"camera"`
}

type selectionResponse struct {
	Open bool `json:"open"`
}

type coordinateRequest struct {
	Lng *float64 `json:"lng"`
	Lat *float64 `json:"lat"`
}

func (c coordinateRequest) Coordinate() (mapview.Coordinate, bool) {
	if c.Lng == nil || c.Lat == nil {
		return mapview.Coordinate{}, false
	}
	return mapview.Coordinate{Lng: *c.Lng, Lat: *c.Lat}, true
}

type locateRequest struct {
	coordinateRequest
	Error string `json:"error"`
}

func NewMapController(app application.Application, tiles mappage.Tiles) application.Controller {
	return &MapController{
		app:     app,
		tiles:   tiles,
		service: app.Service(services.MapViewService{}).(*services.MapViewService),
	}
}

// MapController renders the map page and serves the interaction endpoints of its view.
type MapController struct {
	app     application.Application
	tiles   mappage.Tiles
	service *services.MapViewService
}

func (c *MapController) Key() string {
	return "/app/map"
}

func (c *MapController) Register(r *mux.Router) {
	views := r.PathPrefix("/app/map/views/{view}").Subrouter()
	views.Use(middleware.ProtectedAPI(c.app)...)
	views.HandleFunc("/add-mode", c.ToggleAddMode).Methods(http.MethodPost)
	views.HandleFunc("/add-mode/enable", c.EnableAddMode).Methods(http.MethodPost)
	views.HandleFunc("/clicks", c.Click).Methods(http.MethodPost)
	views.HandleFunc("/locate", c.Locate).Methods(http.MethodPost)
	views.HandleFunc("/selection/close", c.CloseSelection).Methods(http.MethodPost)
	views.HandleFunc("/release", c.Release).Methods(http.MethodPost)

	page := r.PathPrefix("/app/map").Subrouter()
	page.Use(middleware.ProtectedPage(c.app)...)
	page.HandleFunc("", c.Map).Methods(http.MethodGet)
}

// Map opens a view for this render and draws the page around it.
func (c *MapController) Map(w http.ResponseWriter, r *http.Request) {
	orgID := uuid.Nil
	if shell, ok := composables.UseShell(r.Context()); ok && shell.SelectedOrg != nil {
		orgID = shell.SelectedOrg.ID()
	}
	id := c.service.Open(r.Context(), orgID)
	view, err := c.service.Get(r.Context(), id)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	// TODO: count the organization's properties once property creation lands.
	props := mappage.Props{
		ViewID: id,
		View:   view,
		Tiles:  c.tiles,
		Empty:  true,
	}
	if err := mappage.Index(props).Render(r.Context(), w); err != nil {
		composables.UseLogger(r.Context()).WithError(err).Error("failed to render map")
		c.service.Release(r.Context(), id)
	}
}

func (c *MapController) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, services.ErrViewNotFound):
		_ = httpapi.WriteError(w, http.StatusNotFound, httpapi.CodeViewNotFound, "map view not found", map[string]string{"view": mux.Vars(r)["view"]})
	case errors.Is(err, mapview.ErrInvalidCoordinate):
		_ = httpapi.WriteError(w, http.StatusBadRequest, httpapi.CodeInvalidCoordinate, err.Error(), nil)
	default:
		composables.UseLogger(r.Context()).WithError(err).Error("map view update failed")
		_ = httpapi.WriteInternal(w)
	}
}

func (c *MapController) ToggleAddMode(w http.ResponseWriter, r *http.Request) {
	adding, err := c.service.ToggleAddMode(r.Context(), mux.Vars(r)["view"])
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, addModeResponse{Adding: adding, Label: mappage.AddModeLabel(r.Context(), adding)})
}

func (c *MapController) EnableAddMode(w http.ResponseWriter, r *http.Request) {
	adding, err := c.service.EnableAddMode(r.Context(), mux.Vars(r)["view"])
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, addModeResponse{Adding: adding, Label: mappage.AddModeLabel(r.Context(), adding)})
}

func (c *MapController) Click(w http.ResponseWriter, r *http.Request) {
	var req coordinateRequest
	if !httpapi.DecodeJSON(w, r, &req) {
		return
	}
	coord, ok := req.Coordinate()
	if !ok {
		_ = httpapi.WriteError(w, http.StatusBadRequest, httpapi.CodeInvalidCoordinate, "lng and lat are required", nil)
		return
	}
	captured, adding, err := c.service.Click(r.Context(), mux.Vars(r)["view"], coord)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, clickResponse{Captured: captured, Adding: adding, Label: mappage.AddModeLabel(r.Context(), adding)})
}

// Locate receives the outcome of the browser geolocation request: a coordinate or an error.
func (c *MapController) Locate(w http.ResponseWriter, r *http.Request) {
	var req locateRequest
	if !httpapi.DecodeJSON(w, r, &req) {
		return
	}
	viewID := mux.Vars(r)["view"]
	coord, ok := req.Coordinate()
	if req.Error != "" || !ok {
		reason := req.Error
		if reason == "" {
			reason = "position unavailable"
		}
		cam, err := c.service.LocateFailed(r.Context(), viewID, reason)
		if err != nil {
			c.writeError(w, r, err)
			return
		}
		_ = httpapi.WriteJSON(w, http.StatusOK, locateResponse{Moved: false, Camera: toCamera(cam)})
		return
	}
	cam, err := c.service.LocateSucceeded(r.Context(), viewID, coord)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, locateResponse{Moved: true, Camera: toCamera(cam)})
}

func (c *MapController) CloseSelection(w http.ResponseWriter, r *http.Request) {
	if err := c.service.CloseSelection(r.Context(), mux.Vars(r)["view"]); err != nil {
		c.writeError(w, r, err)
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, selectionResponse{Open: false})
}

func (c *MapController) Release(w http.ResponseWriter, r *http.Request) {
	c.service.Release(r.Context(), mux.Vars(r)["view"])
	httpapi.WriteNoContent(w)
}

func toCamera(cam mapview.Camera) cameraResponse {
	return cameraResponse{Lng: cam.Center.Lng, Lat: cam.Center.Lat, Zoom: cam.Zoom}
}
