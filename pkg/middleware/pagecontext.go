package middleware

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/comfortcurators/portal/pkg/composables"
	"github.com/comfortcurators/portal/pkg/intl"
	"github.com/comfortcurators/portal/pkg/types"
)

// WithPageContext records the request URL and negotiated locale for templates. It must run after
// ProvideLocalizer.
func WithPageContext() mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			localizer, ok := intl.UseLocalizer(r.Context())
			if !ok {
				panic(intl.ErrNoLocalizer)
			}
			ctx := composables.WithPageCtx(r.Context(), &types.PageContext{
				Locale:    intl.UseLocale(r.Context()),
				URL:       r.URL,
				Localizer: localizer,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
