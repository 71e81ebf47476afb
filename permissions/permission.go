package permissions

import (
	_ "embed"
	"encoding/json"
	"slices"
	"strings"

	"github.com/rs/zerolog/log"
)

//go:embed permissions.json
var registryJSON []byte

// Rule guards one chi route pattern. Public routes serve customers and login without a token.
type Rule struct {
	Path   string   `json:"path"`
	Method string   `json:"method"`
	Roles  []string `json:"roles"`
	Public bool     `json:"public"`
}

// Allows reports whether role may call the route. No roles means any signed-in staff.
func (r Rule) Allows(role string) bool {
	return len(r.Roles) == 0 || slices.Contains(r.Roles, role)
}

// Registry indexes rules by method and route pattern. Open disables role checks entirely.
type Registry struct {
	Open  bool   `json:"open"`
	Rules []Rule `json:"rules"`

	byRoute map[string]Rule
}

func routeKey(method, path string) string {
	return strings.ToUpper(method) + " " + path
}

// Lookup returns the zero Rule for unknown routes, which admits any authenticated staff.
func (r *Registry) Lookup(path, method string) Rule {
	return r.byRoute[routeKey(method, path)]
}

func (r *Registry) index() {
	r.byRoute = make(map[string]Rule, len(r.Rules))

	for _, rule := range r.Rules {
		key := routeKey(rule.Method, rule.Path)
		if _, dup := r.byRoute[key]; dup {
			log.Warn().Str("route", key).Msg("duplicate permission rule, keeping the first")

			continue
		}

		r.byRoute[key] = rule
	}
}

// Get decodes the embedded registry. It returns nil when the file is malformed, which the
// auth middleware treats as deny-all.
func Get() *Registry {
	var registry Registry

	if err := json.Unmarshal(registryJSON, &registry); err != nil {
		log.Error().Err(err).Msg("failed to decode embedded permissions")

		return nil
	}

	registry.index()

	log.Info().Int("rules", len(registry.byRoute)).Bool("open", registry.Open).Msg("loaded route permissions")

	return &registry
}
