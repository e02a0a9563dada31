package routing

import (
	"slices"
	"strings"
	"sync"
)

// Classifier maps request paths to route classes. The longest matching prefix wins; paths no
// rule covers are UI pages.
type Classifier struct {
	rules []AllowlistRule
}

func NewClassifier(rules []AllowlistRule) *Classifier {
	sorted := make([]AllowlistRule, 0, len(rules))
	for _, rule := range rules {
		if rule.Prefix = strings.TrimSpace(rule.Prefix); rule.Prefix != "" {
			sorted = append(sorted, rule)
		}
	}
	slices.SortStableFunc(sorted, func(a, b AllowlistRule) int {
		return len(b.Prefix) - len(a.Prefix)
	})
	return &Classifier{rules: sorted}
}

func (c *Classifier) ClassifyPath(path string) RouteClass {
	for _, rule := range c.rules {
		if HasPathPrefixOnBoundary(path, rule.Prefix) {
			return rule.Class
		}
	}
	return RouteClassUI
}

// WantsJSON reports whether errors on this path are rendered as JSON envelopes.
func (c *Classifier) WantsJSON(path string) bool {
	class := c.ClassifyPath(path)
	return class == RouteClassInternalAPI || class == RouteClassOps
}

// HasPathPrefixOnBoundary matches whole segments only: /app/map covers /app/map/x but not
// /app/mapx.
func HasPathPrefixOnBoundary(path, prefix string) bool {
	if prefix == "" || !strings.HasPrefix(path, prefix) {
		return false
	}
	return len(path) == len(prefix) || strings.HasSuffix(prefix, "/") || path[len(prefix)] == '/'
}

var defaultClassifier = sync.OnceValue(func() *Classifier {
	rules, err := LoadAllowlist("", defaultEntrypoint)
	if err != nil {
		rules = DefaultRules()
	}
	return NewClassifier(rules)
})

// DefaultClassifier classifies with the server allowlist, or DefaultRules when the file cannot be
// read.
func DefaultClassifier() *Classifier {
	return defaultClassifier()
}
