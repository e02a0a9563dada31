package middleware

import (
	"context"
	"net"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/comfortcurators/portal/pkg/composables"
	"github.com/comfortcurators/portal/pkg/constants"
)

// Provide puts value into the request context under key.
func Provide(key constants.ContextKey, value any) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), key, value)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequestParams exposes the caller address, user agent and writer to services.
func RequestParams(realIPHeader string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip, ok := realIP(r, realIPHeader)
			if !ok {
				ip = "0.0.0.0"
			}
			params := &composables.Params{
				IP:        ip,
				UserAgent: r.UserAgent(),
				Request:   r,
				Writer:    w,
			}
			next.ServeHTTP(w, r.WithContext(composables.WithParams(r.Context(), params)))
		})
	}
}

// realIP is the first address of the configured proxy header, or the peer address.
func realIP(r *http.Request, header string) (string, bool) {
	addr := r.RemoteAddr
	if header != "" {
		if v := r.Header.Get(header); strings.TrimSpace(v) != "" {
			addr, _, _ = strings.Cut(v, ",")
		}
	}
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return "", false
	}
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host, true
	}
	return addr, true
}
