package routinggates

import (
	"sort"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	"github.com/comfortcurators/portal/pkg/itf"
	"github.com/comfortcurators/portal/pkg/routing"
)

func serverClassifier(t *testing.T) ([]routing.AllowlistRule, *routing.Classifier) {
	t.Helper()
	rules, err := routing.LoadAllowlist("", "server")
	require.NoError(t, err)
	return rules, routing.NewClassifier(rules)
}

// Endpoints addressing a mounted tab or map view are called by scripts, so their errors
// must be JSON envelopes instead of pages or redirects.
func TestRoutes_InteractionEndpointsAreInternalAPI(t *testing.T) {
	router := itf.HTTP(t).Router()
	_, classifier := serverClassifier(t)

	var offending []string
	for _, p := range collectRoutePaths(t, router) {
		interactive := strings.Contains(p, "{tab}") ||
			strings.Contains(p, "{view}") ||
			routing.HasPathPrefixOnBoundary(p, "/app/spotlight")
		if interactive && classifier.ClassifyPath(p) != routing.RouteClassInternalAPI {
			offending = append(offending, p)
		}
	}
	require.Empty(t, offending, "interaction endpoints outside internal_api prefixes")
}

func TestRoutes_PagesAreNotClassifiedAsAPI(t *testing.T) {
	_, classifier := serverClassifier(t)

	for _, p := range []string{"/", "/app", "/app/map", "/app/tickets", "/app/bundles", "/app/packages", "/app/settings"} {
		require.Equal(t, routing.RouteClassUI, classifier.ClassifyPath(p), p)
	}
	for _, p := range []string{"/login", "/signup", "/logout"} {
		require.Equal(t, routing.RouteClassAuthn, classifier.ClassifyPath(p), p)
	}
}

// Everything outside /app is a deliberate exception and must be listed in the allowlist.
func TestRoutes_TopLevelExceptionsMustBeAllowlisted(t *testing.T) {
	router := itf.HTTP(t).Router()
	rules, _ := serverClassifier(t)

	allowed := map[string]struct{}{"app": {}}
	for _, rule := range rules {
		if segment := firstPathSegment(rule.Prefix); segment != "" {
			allowed[segment] = struct{}{}
		}
	}

	offendingSet := map[string]struct{}{}
	for _, p := range collectRoutePaths(t, router) {
		segment := firstPathSegment(p)
		if segment == "" {
			continue
		}
		if _, ok := allowed[segment]; !ok {
			offendingSet[p] = struct{}{}
		}
	}
	offending := make([]string, 0, len(offendingSet))
	for p := range offendingSet {
		offending = append(offending, p)
	}
	sort.Strings(offending)
	require.Empty(t, offending, "top-level routes missing from the allowlist")
}

func TestRoutes_NoDevOrTestRoutes(t *testing.T) {
	router := itf.HTTP(t).Router()

	for _, p := range collectRoutePaths(t, router) {
		require.False(t, routing.HasPathPrefixOnBoundary(p, "/_dev"), p)
		require.False(t, routing.HasPathPrefixOnBoundary(p, "/__test__"), p)
	}
}

func collectRoutePaths(t *testing.T, router *mux.Router) []string {
	t.Helper()

	var paths []string
	err := router.Walk(func(route *mux.Route, _ *mux.Router, _ []*mux.Route) error {
		if p := routePath(route); strings.TrimSpace(p) != "" {
			paths = append(paths, p)
		}
		return nil
	})
	require.NoError(t, err)

	sort.Strings(paths)
	return paths
}

func routePath(route *mux.Route) string {
	if tmpl, err := route.GetPathTemplate(); err == nil {
		return tmpl
	}
	regexp, err := route.GetPathRegexp()
	if err != nil {
		return ""
	}
	return strings.TrimSuffix(strings.TrimPrefix(regexp, "^"), "$")
}

func firstPathSegment(path string) string {
	path = strings.TrimPrefix(strings.TrimSpace(path), "/")
	segment, _, _ := strings.Cut(path, "/")
	return segment
}
