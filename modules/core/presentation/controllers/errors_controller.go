package controllers

import (
	"net/http"
	"strings"

	"github.com/a-h/templ"

	"github.com/comfortcurators/portal/modules/core/presentation/templates/pages/errorpages"
	"github.com/comfortcurators/portal/pkg/application"
	"github.com/comfortcurators/portal/pkg/httpapi"
	"github.com/comfortcurators/portal/pkg/middleware"
	"github.com/comfortcurators/portal/pkg/routing"
)

func renderError(status int, page templ.Component) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status)
		if err := page.Render(r.Context(), w); err != nil {
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		}
	})
}

// withPublicContext wraps h in the public page chain so error pages are localized and know
// whether the visitor is signed in.
func withPublicContext(app application.Application, h http.Handler) http.Handler {
	chain := middleware.PublicPage(app)
	for i := len(chain) - 1; i >= 0; i-- {
		h = chain[i](h)
	}
	return h
}

// NotFound answers JSON envelopes on API prefixes and the not found page elsewhere.
func NotFound(app application.Application) http.HandlerFunc {
	classifier := routing.DefaultClassifier()
	page := withPublicContext(app, renderError(http.StatusNotFound, errorpages.NotFound()))
	return func(w http.ResponseWriter, r *http.Request) {
		if classifier.WantsJSON(r.URL.Path) {
			meta := map[string]string{"path": r.URL.Path}
			if requestID := requestIDFromResponse(w, r); requestID != "" {
				meta["request_id"] = requestID
			}
			_ = httpapi.WriteError(w, http.StatusNotFound, httpapi.CodeNotFound, "not found", meta)
			return
		}
		page.ServeHTTP(w, r)
	}
}

func MethodNotAllowed(app application.Application) http.HandlerFunc {
	classifier := routing.DefaultClassifier()
	page := withPublicContext(app, renderError(http.StatusMethodNotAllowed, errorpages.MethodNotAllowed()))
	return func(w http.ResponseWriter, r *http.Request) {
		if classifier.WantsJSON(r.URL.Path) {
			meta := map[string]string{
				"method": r.Method,
				"path":   r.URL.Path,
			}
			if requestID := requestIDFromResponse(w, r); requestID != "" {
				meta["request_id"] = requestID
			}
			_ = httpapi.WriteError(w, http.StatusMethodNotAllowed, httpapi.CodeMethodNotAllowed, "method not allowed", meta)
			return
		}
		page.ServeHTTP(w, r)
	}
}

func requestIDFromResponse(w http.ResponseWriter, r *http.Request) string {
	if w != nil {
		if requestID := strings.TrimSpace(w.Header().Get("X-Request-ID")); requestID != "" {
			return requestID
		}
	}
	if r != nil {
		return strings.TrimSpace(r.Header.Get("X-Request-ID"))
	}
	return ""
}
