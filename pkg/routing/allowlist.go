package routing

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/go-faster/errors"
	"gopkg.in/yaml.v3"
)

// RouteClass decides how a path is guarded and how its errors are rendered.
type RouteClass string

const (
	RouteClassUI          RouteClass = "ui"
	RouteClassAuthn       RouteClass = "authn"
	RouteClassInternalAPI RouteClass = "internal_api"
	RouteClassOps         RouteClass = "ops"
	RouteClassStatic      RouteClass = "static"
)

func (c RouteClass) Valid() bool {
	switch c {
	case RouteClassUI, RouteClassAuthn, RouteClassInternalAPI, RouteClassOps, RouteClassStatic:
		return true
	}
	return false
}

const (
	allowlistVersion  = 1
	defaultEntrypoint = "server"
	allowlistRelPath  = "config/routing/allowlist.yaml"
)

var ErrAllowlistNotFound = errors.New("routing allowlist not found")

type AllowlistRule struct {
	Prefix string     `yaml:"prefix"`
	Class  RouteClass `yaml:"class"`
}

type allowlistFile struct {
	Version     int                        `yaml:"version"`
	Entrypoints map[string][]AllowlistRule `yaml:"entrypoints"`
}

// DefaultRules mirror the server entrypoint of the allowlist for binaries deployed without their
// config directory.
func DefaultRules() []AllowlistRule {
	return []AllowlistRule{
		{Prefix: "/", Class: RouteClassUI},
		{Prefix: "/login", Class: RouteClassAuthn},
		{Prefix: "/signup", Class: RouteClassAuthn},
		{Prefix: "/logout", Class: RouteClassAuthn},
		{Prefix: "/app/map/views", Class: RouteClassInternalAPI},
		{Prefix: "/app/shell", Class: RouteClassInternalAPI},
		{Prefix: "/app/spotlight", Class: RouteClassInternalAPI},
		{Prefix: "/api", Class: RouteClassInternalAPI},
		{Prefix: "/assets", Class: RouteClassStatic},
		{Prefix: "/health", Class: RouteClassOps},
		{Prefix: "/debug/prometheus", Class: RouteClassOps},
	}
}

// DefaultAllowlistPath is ROUTING_ALLOWLIST_PATH when set, otherwise the allowlist of the module
// containing the working directory.
func DefaultAllowlistPath() string {
	if p := strings.TrimSpace(os.Getenv("ROUTING_ALLOWLIST_PATH")); p != "" {
		return p
	}
	rel := filepath.FromSlash(allowlistRelPath)
	wd, err := os.Getwd()
	if err != nil {
		return rel
	}
	for dir := wd; ; dir = filepath.Dir(dir) {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return filepath.Join(dir, rel)
		}
		if filepath.Dir(dir) == dir {
			return rel
		}
	}
}

// LoadAllowlist reads the rules of entrypoint ("server" when empty) from the allowlist at path.
func LoadAllowlist(path, entrypoint string) ([]AllowlistRule, error) {
	if strings.TrimSpace(path) == "" {
		path = DefaultAllowlistPath()
	}
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(ErrAllowlistNotFound, path)
	}
	if err != nil {
		return nil, errors.Wrap(err, "read allowlist")
	}
	return parseAllowlist(raw, entrypoint)
}

func parseAllowlist(raw []byte, entrypoint string) ([]AllowlistRule, error) {
	var file allowlistFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, errors.Wrap(err, "decode allowlist")
	}
	if file.Version != allowlistVersion {
		return nil, errors.Errorf("unsupported allowlist version: %d", file.Version)
	}
	if strings.TrimSpace(entrypoint) == "" {
		entrypoint = defaultEntrypoint
	}
	rules, ok := file.Entrypoints[entrypoint]
	if !ok {
		return nil, errors.Errorf("entrypoint %q not found in allowlist", entrypoint)
	}
	for i := range rules {
		rules[i].Prefix = strings.TrimSpace(rules[i].Prefix)
		if !strings.HasPrefix(rules[i].Prefix, "/") {
			return nil, errors.Errorf("allowlist rule[%d]: prefix must start with '/': %q", i, rules[i].Prefix)
		}
		if !rules[i].Class.Valid() {
			return nil, errors.Errorf("allowlist rule[%d]: unknown class: %q", i, rules[i].Class)
		}
	}
	return rules, nil
}
