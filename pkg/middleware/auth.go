package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/gorilla/mux"

	"github.com/comfortcurators/portal/modules/core/domain/entities/identity"
	"github.com/comfortcurators/portal/modules/core/domain/entities/session"
	"github.com/comfortcurators/portal/modules/core/domain/value_objects/orgcontext"
	"github.com/comfortcurators/portal/pkg/composables"
	"github.com/comfortcurators/portal/pkg/httpapi"
	"github.com/comfortcurators/portal/pkg/routing"
)

type Authorizer interface {
	Authorize(ctx context.Context, token string) (*identity.Identity, *session.Session, error)
}

type OrgContextLoader interface {
	Load(ctx context.Context, u *identity.Identity) orgcontext.Context
}

// Authorize resolves the session cookie. Requests without a valid session pass through
// unauthenticated; a stale cookie is cleared.
func Authorize(auth Authorizer, cookieName string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(cookieName)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(w, r)
				return
			}

			u, sess, err := auth.Authorize(r.Context(), cookie.Value)
			if err != nil {
				if !errors.Is(err, session.ErrNotFound) {
					composables.UseLogger(r.Context()).WithError(err).Error("failed to authorize session")
				}
				http.SetCookie(w, &http.Cookie{
					Name:     cookieName,
					Value:    "",
					Path:     "/",
					Expires:  time.Unix(0, 0),
					MaxAge:   -1,
					HttpOnly: true,
				})
				next.ServeHTTP(w, r)
				return
			}

			ctx := composables.WithIdentity(r.Context(), u)
			ctx = composables.WithSession(ctx, sess)
			ctx = composables.WithLogger(ctx, composables.UseLogger(ctx).WithField("user_id", u.ID()))
			if params, ok := composables.UseParams(ctx); ok {
				params.Authenticated = true
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// LoginURL is the sign-in page that sends the user back to next afterwards.
func LoginURL(next string) string {
	if next == "" || next == "/" {
		return "/login"
	}
	return "/login?" + url.Values{"next": {next}}.Encode()
}

// RedirectNotAuthenticated guards protected pages. Pages redirect to sign-in, internal API
// calls receive a 401 envelope.
func RedirectNotAuthenticated(classifier *routing.Classifier) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, err := composables.UseIdentity(r.Context()); err == nil {
				next.ServeHTTP(w, r)
				return
			}
			if classifier.WantsJSON(r.URL.Path) {
				_ = httpapi.WriteError(w, http.StatusUnauthorized, httpapi.CodeUnauthenticated, "sign in required", nil)
				return
			}
			http.Redirect(w, r, LoginURL(r.URL.RequestURI()), http.StatusFound)
		})
	}
}

// RedirectAuthenticated sends signed-in users away from the sign-in and sign-up pages.
func RedirectAuthenticated(to string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, err := composables.UseIdentity(r.Context()); err == nil && r.Method == http.MethodGet {
				http.Redirect(w, r, to, http.StatusFound)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ProvideOrgContext loads the organization context of the signed-in user.
func ProvideOrgContext(loader OrgContextLoader) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, err := composables.UseIdentity(r.Context())
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			oc := loader.Load(r.Context(), u)
			next.ServeHTTP(w, r.WithContext(composables.WithOrgContext(r.Context(), oc)))
		})
	}
}

// NoStore keeps authenticated pages out of shared and back-forward caches.
func NoStore() mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", "no-store")
			next.ServeHTTP(w, r)
		})
	}
}
