package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	"github.com/comfortcurators/portal/pkg/application"
)

type routesController struct {
	key      string
	register func(r *mux.Router)
}

func (c routesController) Key() string            { return c.key }
func (c routesController) Register(r *mux.Router) { c.register(r) }

func ok(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) }

func newTestServer() *HTTPServer {
	api := routesController{key: "/app/shell", register: func(r *mux.Router) {
		router := r.PathPrefix("/app/shell/{tab}").Subrouter()
		router.HandleFunc("/palette/toggle", ok).Methods(http.MethodPost)
	}}
	pages := routesController{key: "/app", register: func(r *mux.Router) {
		router := r.PathPrefix("/app").Subrouter()
		router.HandleFunc("", ok).Methods(http.MethodGet)
	}}
	landing := routesController{key: "/", register: func(r *mux.Router) {
		router := r.PathPrefix("/").Subrouter()
		router.HandleFunc("/", ok).Methods(http.MethodGet)
	}}
	login := routesController{key: "/login", register: func(r *mux.Router) {
		getRouter := r.PathPrefix("/login").Subrouter()
		getRouter.HandleFunc("", ok).Methods(http.MethodGet)
		setRouter := r.PathPrefix("/login").Subrouter()
		setRouter.HandleFunc("", ok).Methods(http.MethodPost)
	}}

	status := func(code int) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(code) })
	}
	stamp := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Add("X-Stamp", "1")
			next.ServeHTTP(w, r)
		})
	}
	return &HTTPServer{
		Controllers:             []application.Controller{api, pages, landing, login},
		Middlewares:             []mux.MiddlewareFunc{stamp},
		NotFoundHandler:         status(http.StatusNotFound),
		MethodNotAllowedHandler: status(http.StatusMethodNotAllowed),
	}
}

func TestHTTPServer_Router_MethodMismatch(t *testing.T) {
	router := newTestServer().Router()

	record := func(method, path string) *httptest.ResponseRecorder {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(method, path, nil))
		return rr
	}
	serve := func(method, path string) int {
		return record(method, path).Code
	}

	t.Run("internal API behind later prefix subrouters", func(t *testing.T) {
		rr := record(http.MethodGet, "/app/shell/tab-1/palette/toggle")
		require.Equal(t, http.StatusMethodNotAllowed, rr.Code)
		require.Len(t, rr.Header().Values("X-Stamp"), 1)
		require.Equal(t, http.StatusOK, serve(http.MethodPost, "/app/shell/tab-1/palette/toggle"))
	})

	t.Run("unknown routes pass the middleware chain once", func(t *testing.T) {
		rr := record(http.MethodGet, "/nowhere")
		require.Equal(t, http.StatusNotFound, rr.Code)
		require.Len(t, rr.Header().Values("X-Stamp"), 1)
	})

	t.Run("unknown internal API path", func(t *testing.T) {
		require.Equal(t, http.StatusNotFound, serve(http.MethodPost, "/app/shell/tab-1/unknown"))
	})

	t.Run("split page subrouters keep both methods", func(t *testing.T) {
		require.Equal(t, http.StatusOK, serve(http.MethodGet, "/login"))
		require.Equal(t, http.StatusOK, serve(http.MethodPost, "/login"))
	})

	t.Run("pages", func(t *testing.T) {
		require.Equal(t, http.StatusOK, serve(http.MethodGet, "/app"))
		require.Equal(t, http.StatusOK, serve(http.MethodGet, "/"))
	})
}
