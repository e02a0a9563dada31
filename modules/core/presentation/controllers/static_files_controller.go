package controllers

import (
	"net/http"

	"github.com/benbjohnson/hashfs"
	"github.com/gorilla/mux"

	"github.com/comfortcurators/portal/pkg/application"
)

type StaticFilesController struct {
	fsInstances []*hashfs.FS
}

func (s *StaticFilesController) Key() string {
	return "/assets"
}

// Register serves every asset filesystem under /assets. Hashed names get immutable caching
// from hashfs; the first filesystem holding a file wins.
func (s *StaticFilesController) Register(r *mux.Router) {
	handlers := make([]http.Handler, 0, len(s.fsInstances))
	for _, fsys := range s.fsInstances {
		handlers = append(handlers, hashfs.FileServer(fsys))
	}
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for i, fsys := range s.fsInstances {
			name, _ := fsys.ParseName(r.URL.Path[len("/assets/"):])
			if _, err := fsys.Open(name); err != nil {
				continue
			}
			http.StripPrefix("/assets", handlers[i]).ServeHTTP(w, r)
			return
		}
		http.NotFound(w, r)
	})
	r.PathPrefix("/assets/").Handler(handler).Methods(http.MethodGet, http.MethodHead)
}

func NewStaticFilesController(fsInstances []*hashfs.FS) application.Controller {
	return &StaticFilesController{
		fsInstances: fsInstances,
	}
}
