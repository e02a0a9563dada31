package server

import (
	"context"
	"net/http"
	"time"

	"github.com/NYTimes/gziphandler"
	"github.com/gorilla/mux"

	"github.com/comfortcurators/portal/pkg/application"
	"github.com/comfortcurators/portal/pkg/routing"
)

func NewHTTPServer(
	app application.Application,
	notFoundHandler, methodNotAllowedHandler http.Handler,
) *HTTPServer {
	return &HTTPServer{
		Controllers:             app.Controllers(),
		Middlewares:             app.Middleware(),
		NotFoundHandler:         notFoundHandler,
		MethodNotAllowedHandler: methodNotAllowedHandler,
	}
}

type HTTPServer struct {
	Controllers             []application.Controller
	Middlewares             []mux.MiddlewareFunc
	NotFoundHandler         http.Handler
	MethodNotAllowedHandler http.Handler
	// Classifier picks the subrouters that answer wrong methods themselves. Defaults to the
	// built-in allowlist.
	Classifier *routing.Classifier
}

func (s *HTTPServer) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.Middlewares...)
	for _, controller := range s.Controllers {
		controller.Register(r)
	}

	var notFoundHandler = s.NotFoundHandler
	var notAllowedHandler = s.MethodNotAllowedHandler
	for i := len(s.Middlewares) - 1; i >= 0; i-- {
		notFoundHandler = s.Middlewares[i](notFoundHandler)
		notAllowedHandler = s.Middlewares[i](notAllowedHandler)
	}
	r.NotFoundHandler = notFoundHandler
	r.MethodNotAllowedHandler = notAllowedHandler
	if s.MethodNotAllowedHandler != nil {
		s.claimMethodMismatches(r, s.MethodNotAllowedHandler)
	}
	return r
}

// claimMethodMismatches sets the 405 handler on internal API subrouters. Without it mux drops the
// method mismatch as soon as a later prefix such as "/" or "/app" matches, and the request ends up
// as 404. The handler is left bare: the enclosing prefix route clears the mismatch once the
// subrouter claims the request, so the root router wraps it in the middleware chain itself.
func (s *HTTPServer) claimMethodMismatches(root *mux.Router, handler http.Handler) {
	classifier := s.Classifier
	if classifier == nil {
		classifier = routing.DefaultClassifier()
	}
	_ = root.Walk(func(route *mux.Route, router *mux.Router, _ []*mux.Route) error {
		if router == root || router.MethodNotAllowedHandler != nil {
			return nil
		}
		tpl, err := route.GetPathTemplate()
		if err != nil {
			return nil
		}
		if classifier.ClassifyPath(tpl) == routing.RouteClassInternalAPI {
			router.MethodNotAllowedHandler = handler
		}
		return nil
	})
}

func (s *HTTPServer) Handler() http.Handler {
	return gziphandler.GzipHandler(s.Router())
}

// Start serves until ctx is done, then drains in-flight requests.
func (s *HTTPServer) Start(ctx context.Context, socketAddress string) error {
	srv := &http.Server{
		Addr:              socketAddress,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
