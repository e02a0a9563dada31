package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/comfortcurators/portal/pkg/composables"
)

type TabMounter interface {
	Mount(ctx context.Context, selectedOrgID uuid.UUID) string
}

// ProvideShell mounts the shell state of a freshly rendered page. The organization comes from
// the "org" query parameter, resolved against the loaded organization context.
func ProvideShell(tabs TabMounter) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requested, err := uuid.Parse(r.URL.Query().Get("org"))
			if err != nil {
				requested = uuid.Nil
			}
			shell := composables.Shell{}
			if oc, err := composables.UseOrgContext(r.Context()); err == nil {
				if org, ok := oc.Selected(requested); ok {
					shell.SelectedOrg = org
				}
			}
			selectedID := uuid.Nil
			if shell.SelectedOrg != nil {
				selectedID = shell.SelectedOrg.ID()
			}
			shell.TabID = tabs.Mount(r.Context(), selectedID)
			next.ServeHTTP(w, r.WithContext(composables.WithShell(r.Context(), shell)))
		})
	}
}
