package routing

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAllowlist_LoadsAndHasCriticalRules(t *testing.T) {
	serverRules, err := LoadAllowlist("", "server")
	require.NoError(t, err)

	requireAllowlistRule(t, serverRules, "/app/map/views", RouteClassInternalAPI)
	requireAllowlistRule(t, serverRules, "/app/shell", RouteClassInternalAPI)
	requireAllowlistRule(t, serverRules, "/login", RouteClassAuthn)
	requireAllowlistRule(t, serverRules, "/health", RouteClassOps)
	requireAllowlistRule(t, serverRules, "/assets", RouteClassStatic)
}

func TestAllowlist_RejectsUnknownClass(t *testing.T) {
	_, err := parseAllowlist([]byte("version: 1\nentrypoints:\n  server:\n    - prefix: /x\n      class: websocket\n"), "server")
	require.Error(t, err)

	_, err = parseAllowlist([]byte("version: 2\nentrypoints: {}\n"), "server")
	require.Error(t, err)
}

func TestClassifier_LongestPrefixWins(t *testing.T) {
	c := NewClassifier([]AllowlistRule{
		{Prefix: "/", Class: RouteClassUI},
		{Prefix: "/app/map/views", Class: RouteClassInternalAPI},
	})

	require.Equal(t, RouteClassInternalAPI, c.ClassifyPath("/app/map/views/abc/clicks"))
	require.Equal(t, RouteClassUI, c.ClassifyPath("/app/map"))
	require.Equal(t, RouteClassUI, c.ClassifyPath("/app/map/viewsx"))
	require.True(t, c.WantsJSON("/app/map/views/1/release"))
	require.False(t, c.WantsJSON("/app/tickets"))
}

func requireAllowlistRule(t *testing.T, rules []AllowlistRule, prefix string, class RouteClass) {
	t.Helper()

	for _, rule := range rules {
		if rule.Prefix == prefix && rule.Class == class {
			return
		}
	}
	t.Fatalf("allowlist missing rule: %q -> %q", prefix, class)
}
