package middleware

import (
	"context"
	"net/http"

	"github.com/gorilla/csrf"
	"github.com/gorilla/mux"

	"github.com/comfortcurators/portal/pkg/constants"
)

// CSRF protects form posts with a double-submit token when authKey is set. The token is
// exposed to templates through composables.UseCSRFToken.
func CSRF(authKey string, secure bool, trustedOrigins ...string) mux.MiddlewareFunc {
	if authKey == "" {
		return func(next http.Handler) http.Handler {
			return next
		}
	}
	protect := csrf.Protect(
		[]byte(authKey),
		csrf.Secure(secure),
		csrf.Path("/"),
		csrf.SameSite(csrf.SameSiteLaxMode),
		csrf.TrustedOrigins(trustedOrigins),
		csrf.RequestHeader("X-CSRF-Token"),
	)
	return func(next http.Handler) http.Handler {
		protected := protect(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), constants.CSRFFieldKey, csrf.Token(r))
			next.ServeHTTP(w, r.WithContext(ctx))
		}))
		if secure {
			return protected
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			protected.ServeHTTP(w, csrf.PlaintextHTTPRequest(r))
		})
	}
}
