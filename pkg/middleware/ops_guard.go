package middleware

import (
	"crypto/subtle"
	"net/http"
	"net/netip"
	"strings"

	"github.com/gorilla/mux"

	"github.com/comfortcurators/portal/pkg/configuration"
	"github.com/comfortcurators/portal/pkg/routing"
)

// OpsGuard hides ops routes other than /health in production. A caller passes when its address is
// inside OPS_GUARD_CIDRS or it presents OPS_GUARD_TOKEN as X-Ops-Token or a bearer token; everyone
// else gets a plain 404.
func OpsGuard(conf *configuration.Configuration, classifier *routing.Classifier) mux.MiddlewareFunc {
	if conf.GoAppEnvironment != configuration.Production || !conf.OpsGuard.Enabled {
		return func(next http.Handler) http.Handler { return next }
	}
	trusted := trustedNetworks(conf.OpsGuard.CIDRs)
	token := []byte(strings.TrimSpace(conf.OpsGuard.Token))
	header := conf.RealIPHeader

	allowed := func(r *http.Request) bool {
		if ip, ok := realIP(r, header); ok {
			if addr, err := netip.ParseAddr(ip); err == nil {
				for _, p := range trusted {
					if p.Contains(addr) {
						return true
					}
				}
			}
		}
		return len(token) > 0 && subtle.ConstantTimeCompare([]byte(opsToken(r)), token) == 1
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/health" || classifier.ClassifyPath(r.URL.Path) != routing.RouteClassOps || allowed(r) {
				next.ServeHTTP(w, r)
				return
			}
			http.NotFound(w, r)
		})
	}
}

// trustedNetworks parses a comma, semicolon or whitespace separated prefix list, skipping
// malformed entries.
func trustedNetworks(raw string) []netip.Prefix {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ';' || r == ' ' || r == '\n' || r == '\t'
	})
	prefixes := make([]netip.Prefix, 0, len(fields))
	for _, f := range fields {
		if p, err := netip.ParsePrefix(f); err == nil {
			prefixes = append(prefixes, p)
		}
	}
	return prefixes
}

func opsToken(r *http.Request) string {
	if t := strings.TrimSpace(r.Header.Get("X-Ops-Token")); t != "" {
		return t
	}
	auth := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(auth) > len("bearer ") && strings.EqualFold(auth[:len("bearer ")], "bearer ") {
		return strings.TrimSpace(auth[len("bearer "):])
	}
	return ""
}
