package middleware

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/comfortcurators/portal/pkg/application"
	"github.com/comfortcurators/portal/pkg/constants"
	"github.com/comfortcurators/portal/pkg/intl"
)

// NavItems translates the registered navigation for the shell.
func NavItems() mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				app, err := application.UseApp(r.Context())
				if err != nil {
					panic(err.Error())
				}
				localizer, ok := intl.UseLocalizer(r.Context())
				if !ok {
					panic("localizer not found in context")
				}
				ctx := context.WithValue(r.Context(), constants.AllNavItems, app.NavItems(localizer))
				next.ServeHTTP(w, r.WithContext(ctx))
			},
		)
	}
}
