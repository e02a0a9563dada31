package middleware

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/iota-uz/go-i18n/v2/i18n"

	"github.com/comfortcurators/portal/pkg/intl"
)

type Localizable interface {
	Bundle() *i18n.Bundle
	GetSupportedLanguages() []string
}

// ProvideLocalizer negotiates the page language from Accept-Language and stores a localizer for
// it in the request context.
func ProvideLocalizer(app Localizable) mux.MiddlewareFunc {
	bundle := app.Bundle()
	supported := intl.ParseLanguages(app.GetSupportedLanguages())
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			locale := intl.Negotiate(r.Header.Get("Accept-Language"), supported)
			ctx := intl.WithLocalizer(r.Context(), i18n.NewLocalizer(bundle, locale.String()))
			next.ServeHTTP(w, r.WithContext(intl.WithLocale(ctx, locale)))
		})
	}
}
